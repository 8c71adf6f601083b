package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/Tiliavir/daysketch/internal/calendar"
	"github.com/Tiliavir/daysketch/internal/config"
	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/persistence"
	"github.com/Tiliavir/daysketch/internal/session"
	"github.com/Tiliavir/daysketch/internal/storage"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		want    model.Point
		wantErr bool
	}{
		{input: "1,2", want: model.Point{X: 1, Y: 2}},
		{input: " 3.5 , -4 ", want: model.Point{X: 3.5, Y: -4}},
		{input: "1", wantErr: true},
		{input: "a,2", wantErr: true},
		{input: "1,", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) err = %v", tt.input, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parsePoint(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		pts  []model.Point
		want string
	}{
		{nil, ""},
		{[]model.Point{{X: 1, Y: 2}}, "1,2"},
		{[]model.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, "0,0 5,5"},
		{[]model.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2.5, Y: 3}}, "0,0 … 2.5,3 (3)"},
	}
	for _, tt := range tests {
		if got := formatPoints(tt.pts); got != tt.want {
			t.Errorf("formatPoints(%v) = %q, want %q", tt.pts, got, tt.want)
		}
	}
}

func TestExportDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name           string
		date, from, to string
		wantFirst      string
		wantLen        int
		wantErr        bool
	}{
		{name: "default today", wantFirst: "2024-03-10", wantLen: 1},
		{name: "single date", date: "2024-02-29", wantFirst: "2024-02-29", wantLen: 1},
		{name: "range", from: "2024-02-28", to: "2024-03-01", wantFirst: "2024-02-28", wantLen: 3},
		{name: "open range", from: "2024-03-08", wantFirst: "2024-03-08", wantLen: 3},
		{name: "to without from", to: "2024-03-01", wantErr: true},
		{name: "reversed", from: "2024-03-05", to: "2024-03-01", wantErr: true},
		{name: "bad date", date: "03/10/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := exportDays(tt.date, tt.from, tt.to, now)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(days) != tt.wantLen || days[0].ID != tt.wantFirst {
				t.Errorf("got %d days starting %s", len(days), days[0].ID)
			}
		})
	}
}

func TestMonthRows(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	days := calendar.Month(2026, time.February, now)
	drawn := map[string]bool{"2026-02-03": true, "2026-01-31": true}
	rows := monthRows(days, func(id string) bool { return drawn[id] })

	if len(rows) != 4 {
		t.Fatalf("%d rows, want 4", len(rows))
	}
	for i, r := range rows {
		if len(r) != 7 {
			t.Errorf("row %d has %d cells", i, len(r))
		}
	}
	// Feb 1 2026 is a Sunday.
	if rows[0][0] != "1" || rows[0][2] != "3*" {
		t.Errorf("first week = %v", rows[0])
	}
	if rows[1][6] != "[14]" {
		t.Errorf("today cell = %v", rows[1][6])
	}
}

func TestDayCellOutsideMonth(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	days := calendar.Month(2026, time.March, now)
	last := days[len(days)-1]
	if got := dayCell(last, true); got != "" {
		t.Errorf("outside day rendered as %q", got)
	}
}

func TestEraseAtPoint(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	p := persistence.New(storage.NewFileStore(memfs.New()))
	sess, err := session.Open(calendar.NewDay(now, now), p, session.Options{Drawing: config.Default().Drawing})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	_ = sess.Begin(model.Point{X: 0, Y: 0})
	_ = sess.Continue(model.Point{X: 10, Y: 0})
	if _, err := sess.End(); err != nil {
		t.Fatal(err)
	}

	removed, err := eraseAtPoint(sess, model.Point{X: 100, Y: 100})
	if err != nil || len(removed) != 0 {
		t.Fatalf("miss removed %v, %v", removed, err)
	}
	removed, err = eraseAtPoint(sess, model.Point{X: 5, Y: 1})
	if err != nil || len(removed) != 1 {
		t.Fatalf("hit removed %v, %v", removed, err)
	}
	if sess.Store.Len() != 0 {
		t.Error("element still on canvas")
	}
}

func TestPrintElements(t *testing.T) {
	var buf bytes.Buffer
	printElements(&buf, []model.Element{
		{ID: 1, Type: model.ElementPen, Points: []model.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, StrokeColor: "#100100", StrokeWidth: 2},
		{ID: 2, Type: model.ElementText, Points: []model.Point{{X: 1, Y: 1}}, Position: model.Point{X: 1, Y: 1}, StrokeColor: "#d58141", StrokeWidth: 1, Text: "gym", CrossedOut: true},
	})
	out := buf.String()
	for _, want := range []string{"#100100", "0,0 5,5", `"gym"`, "crossed out"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
}
