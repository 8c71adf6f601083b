// Package replay drives a canvas session from a recorded gesture script.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/daysketch/internal/bus"
	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/session"
)

// ErrBadStep is returned for a step that sets no action, several actions,
// or a palette swatch that does not exist.
var ErrBadStep = errors.New("invalid script step")

// Step is one entry of a gesture script. Exactly one field is set.
// Swatch picks a color by its index in the palette.
type Step struct {
	Tool              string   `yaml:"tool,omitempty"`
	Color             string   `yaml:"color,omitempty"`
	Swatch            *int     `yaml:"swatch,omitempty"`
	StrokeWidthChange *float64 `yaml:"strokeWidthChange,omitempty"`
	Begin             *Point   `yaml:"begin,omitempty"`
	Move              *Point   `yaml:"move,omitempty"`
	End               bool     `yaml:"end,omitempty"`
	Text              *Text    `yaml:"text,omitempty"`
	Cancel            bool     `yaml:"cancel,omitempty"`
}

// Point is a canvas position in a script.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Text places a text element with Payload at X, Y.
type Text struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Payload string  `yaml:"payload"`
}

func (p Point) point() model.Point { return model.Point{X: p.X, Y: p.Y} }

// Parse reads a YAML list of steps.
func Parse(r io.Reader) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var steps []Step
	if err := dec.Decode(&steps); err != nil {
		return nil, fmt.Errorf("parsing gesture script: %w", err)
	}
	for i, s := range steps {
		if n := s.fields(); n != 1 {
			return nil, fmt.Errorf("%w %d: %d actions set, want 1", ErrBadStep, i+1, n)
		}
	}
	return steps, nil
}

func (s Step) fields() int {
	n := 0
	for _, set := range []bool{
		s.Tool != "", s.Color != "", s.Swatch != nil, s.StrokeWidthChange != nil,
		s.Begin != nil, s.Move != nil, s.End, s.Text != nil, s.Cancel,
	} {
		if set {
			n++
		}
	}
	return n
}

// Result summarizes a replay.
type Result struct {
	Steps   int
	Removed []model.Element
}

// Option configures Run.
type Option func(*player)

// WithPalette sets the colors swatch steps choose from. An empty palette
// keeps the default one.
func WithPalette(palette []string) Option {
	return func(p *player) {
		if len(palette) > 0 {
			p.palette = palette
		}
	}
}

type player struct {
	sess    *session.Session
	palette []string
}

// Run applies steps to sess in order and stops at the first failing step.
// A gesture left open at the end of the script is finalized.
func Run(sess *session.Session, steps []Step, opts ...Option) (Result, error) {
	pl := &player{sess: sess, palette: model.Palette}
	for _, o := range opts {
		o(pl)
	}
	var res Result
	for i, s := range steps {
		removed, err := pl.apply(s)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Removed = append(res.Removed, removed...)
		res.Steps++
	}
	if sess.Tools.InGesture() {
		removed, err := sess.End()
		if err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, removed...)
	}
	return res, nil
}

func (pl *player) apply(s Step) ([]model.Element, error) {
	sess := pl.sess
	switch {
	case s.Tool != "":
		t, err := model.ParseTool(s.Tool)
		if err != nil {
			return nil, err
		}
		return sess.SetTool(t)
	case s.Color != "":
		return nil, publish(sess, bus.EventColor, s.Color)
	case s.Swatch != nil:
		if *s.Swatch < 0 || *s.Swatch >= len(pl.palette) {
			return nil, fmt.Errorf("%w: swatch %d, palette has %d colors", ErrBadStep, *s.Swatch, len(pl.palette))
		}
		return nil, publish(sess, bus.EventColor, pl.palette[*s.Swatch])
	case s.StrokeWidthChange != nil:
		return nil, publish(sess, bus.EventStrokeWidth, strconv.FormatFloat(*s.StrokeWidthChange, 'g', -1, 64))
	case s.Begin != nil:
		return nil, sess.Begin(s.Begin.point())
	case s.Move != nil:
		return nil, sess.Continue(s.Move.point())
	case s.End:
		return sess.End()
	case s.Text != nil:
		_, err := sess.Text(model.Point{X: s.Text.X, Y: s.Text.Y}, s.Text.Payload)
		return nil, err
	case s.Cancel:
		sess.Cancel()
		return nil, nil
	}
	return nil, ErrBadStep
}

func publish(sess *session.Session, name, raw string) error {
	e, err := bus.Decode(name, raw)
	if err != nil {
		return err
	}
	return sess.Bus.Publish(e)
}
