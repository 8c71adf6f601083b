package model

import "time"

// Day states used by the calendar grid.
const (
	StateToday   = "today"
	StateOutside = "outside"
)

// CanvasKey is the top-level key under which exported canvases are bundled.
const CanvasKey = "canvas"

// Palette is the default set of stroke colors offered by the tool options.
var Palette = []string{"#100100", "#d58141", "#d7c44c", "#4fa9cc", "#3f8d27"}

// Day describes one calendar day owning a single canvas.
type Day struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	IsToday bool      `json:"isToday"`
	Enabled bool      `json:"enabled"`
	State   string    `json:"state,omitempty"`
}

// CanvasData maps a day ID to the JSON-encoded element array of that day.
type CanvasData map[string]string
