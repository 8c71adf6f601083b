package model

import (
	"math"
	"regexp"
)

// Point is a 2-D coordinate in canvas-local units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return Finite(p.X) && Finite(p.Y)
}

// Finite reports whether f is neither NaN nor an infinity.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ElementType is the kind of geometry an element persists.
type ElementType string

const (
	ElementPen  ElementType = "pen"
	ElementText ElementType = "text"
)

// Valid reports whether t is one of the persisted element types.
func (t ElementType) Valid() bool {
	return t == ElementPen || t == ElementText
}

// Element is a single drawable object on a day's canvas.
type Element struct {
	ID          int         `json:"id"`
	Type        ElementType `json:"type"`
	Points      []Point     `json:"points"`
	StrokeColor string      `json:"strokeColor"`
	StrokeWidth float64     `json:"strokeWidth"`
	Position    Point       `json:"position"`
	// Selected is interaction state only and is never written out.
	Selected   bool   `json:"-"`
	CrossedOut bool   `json:"crossedOut"`
	Text       string `json:"text,omitempty"`
}

// Clone returns a copy of e that shares no memory with it.
func (e Element) Clone() Element {
	c := e
	c.Points = append([]Point(nil), e.Points...)
	return c
}

// BoundsOrigin returns the top-left corner of the bounding box of pts.
// An empty slice yields the zero Point.
func BoundsOrigin(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	min := pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
	}
	return min
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidColor reports whether s is a CSS hex color (#rgb, #rrggbb or #rrggbbaa).
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}
