package model_test

import (
	"testing"

	"github.com/Tiliavir/daysketch/internal/model"
)

func TestBoundsOrigin(t *testing.T) {
	tests := []struct {
		name string
		pts  []model.Point
		want model.Point
	}{
		{"empty", nil, model.Point{}},
		{"single", []model.Point{{X: 3, Y: 4}}, model.Point{X: 3, Y: 4}},
		{"diagonal", []model.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, model.Point{X: 0, Y: 0}},
		{"mixed", []model.Point{{X: 10, Y: -2}, {X: -3, Y: 7}, {X: 4, Y: 1}}, model.Point{X: -3, Y: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.BoundsOrigin(tt.pts); got != tt.want {
				t.Errorf("BoundsOrigin = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#100100", true},
		{"#fff", true},
		{"#3f8d27ff", true},
		{"#ABCDEF", true},
		{"", false},
		{"100100", false},
		{"#12345", false},
		{"#ggg", false},
		{"black", false},
	}
	for _, tt := range tests {
		if got := model.ValidColor(tt.in); got != tt.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTool(t *testing.T) {
	for _, tl := range model.Tools {
		got, err := model.ParseTool(string(tl))
		if err != nil || got != tl {
			t.Errorf("ParseTool(%q) = %q, %v", tl, got, err)
		}
	}
	if _, err := model.ParseTool("lasso"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestToolElementType(t *testing.T) {
	if et, ok := model.ToolPen.ElementType(); !ok || et != model.ElementPen {
		t.Errorf("pen -> %q, %v", et, ok)
	}
	if et, ok := model.ToolText.ElementType(); !ok || et != model.ElementText {
		t.Errorf("text -> %q, %v", et, ok)
	}
	for _, tl := range []model.Tool{model.ToolEraser, model.ToolHand} {
		if _, ok := tl.ElementType(); ok {
			t.Errorf("%s creates elements", tl)
		}
	}
}

func TestCloneSharesNoPoints(t *testing.T) {
	e := model.Element{Points: []model.Point{{X: 1, Y: 1}}}
	c := e.Clone()
	c.Points[0].X = 9
	if e.Points[0].X != 1 {
		t.Error("clone aliases points")
	}
}
