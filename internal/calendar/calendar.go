// Package calendar produces the day descriptors of the visible calendar range.
package calendar

import (
	"fmt"
	"time"

	"github.com/Tiliavir/daysketch/internal/model"
)

// DayLayout is the format of day IDs.
const DayLayout = "2006-01-02"

// DayNames are the weekday labels in grid order, Sunday first.
var DayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthNames are the month labels, January first.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DayID returns the persistence key of the day containing t.
func DayID(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDayID parses a day ID in the given location.
func ParseDayID(id string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, id, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD", id)
	}
	return t, nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NewDay builds the descriptor of the day containing t. Days are enabled.
func NewDay(t, now time.Time) model.Day {
	d := model.Day{
		ID:      DayID(t),
		Date:    StartOfDay(t),
		Name:    DayNames[t.Weekday()],
		IsToday: SameDay(t, now),
		Enabled: true,
	}
	if d.IsToday {
		d.State = model.StateToday
	}
	return d
}

// Month returns the grid of a month: whole weeks from Sunday to Saturday.
// Leading and trailing days of neighbouring months are disabled.
func Month(year int, month time.Month, now time.Time) []model.Day {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []model.Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := NewDay(d, now)
		if d.Month() != month {
			day.Enabled = false
			day.State = model.StateOutside
		}
		days = append(days, day)
	}
	return days
}

// Range returns one enabled day per date in [from, to] inclusive.
func Range(from, to, now time.Time) []model.Day {
	var days []model.Day
	for d := StartOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, NewDay(d, now))
	}
	return days
}

// IDs returns the IDs of days in order.
func IDs(days []model.Day) []string {
	ids := make([]string, len(days))
	for i, d := range days {
		ids[i] = d.ID
	}
	return ids
}

// MonthLabel returns a heading like "February 2026".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", MonthNames[month-1], year)
}
