package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Tiliavir/daysketch/internal/model"
)

// wireElement mirrors model.Element with pointers so that missing fields can
// be told apart from zero values.
type wireElement struct {
	ID          *int        `json:"id"`
	Type        *string     `json:"type"`
	Points      []wirePoint `json:"points"`
	StrokeColor *string     `json:"strokeColor"`
	StrokeWidth *float64    `json:"strokeWidth"`
	Position    *wirePoint  `json:"position"`
	CrossedOut  *bool       `json:"crossedOut"`
	Text        *string     `json:"text"`
}

type wirePoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (p *wirePoint) point() (model.Point, bool) {
	if p == nil || p.X == nil || p.Y == nil {
		return model.Point{}, false
	}
	return model.Point{X: *p.X, Y: *p.Y}, true
}

// Decode parses a stored element array, rejecting anything that does not
// match the schema. Decoded elements are never selected.
func Decode(raw []byte) ([]model.Element, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var wire []wireElement
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: not an element array", ErrMalformed)
	}

	elements := make([]model.Element, 0, len(wire))
	last := 0
	for i, w := range wire {
		e, err := w.element()
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		if e.ID <= last {
			return nil, fmt.Errorf("%w: element %d: id %d not after %d", ErrMalformed, i, e.ID, last)
		}
		last = e.ID
		elements = append(elements, e)
	}
	return elements, nil
}

func (w wireElement) element() (model.Element, error) {
	if w.ID == nil || w.Type == nil || w.Points == nil || w.StrokeColor == nil ||
		w.StrokeWidth == nil || w.Position == nil || w.CrossedOut == nil {
		return model.Element{}, errors.New("missing field")
	}
	typ := model.ElementType(*w.Type)
	if !typ.Valid() {
		return model.Element{}, fmt.Errorf("type %q", *w.Type)
	}
	if *w.ID <= 0 {
		return model.Element{}, fmt.Errorf("id %d", *w.ID)
	}
	if len(w.Points) == 0 || (typ == model.ElementText && len(w.Points) != 1) {
		return model.Element{}, fmt.Errorf("%d points for %s", len(w.Points), typ)
	}
	if !model.ValidColor(*w.StrokeColor) {
		return model.Element{}, fmt.Errorf("color %q", *w.StrokeColor)
	}
	if !(*w.StrokeWidth > 0) {
		return model.Element{}, fmt.Errorf("stroke width %v", *w.StrokeWidth)
	}
	pos, ok := w.Position.point()
	if !ok {
		return model.Element{}, errors.New("position incomplete")
	}
	points := make([]model.Point, len(w.Points))
	for i := range w.Points {
		p, ok := w.Points[i].point()
		if !ok {
			return model.Element{}, fmt.Errorf("point %d incomplete", i)
		}
		points[i] = p
	}
	e := model.Element{
		ID:          *w.ID,
		Type:        typ,
		Points:      points,
		StrokeColor: *w.StrokeColor,
		StrokeWidth: *w.StrokeWidth,
		Position:    pos,
		CrossedOut:  *w.CrossedOut,
	}
	if w.Text != nil {
		if typ != model.ElementText {
			return model.Element{}, fmt.Errorf("text payload on %s", typ)
		}
		e.Text = *w.Text
	}
	return e, nil
}
