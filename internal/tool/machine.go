// Package tool interprets pointer gestures according to the active tool and
// turns them into element mutations.
package tool

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/daysketch/internal/bus"
	"github.com/Tiliavir/daysketch/internal/canvas"
	"github.com/Tiliavir/daysketch/internal/model"
)

// ErrInvalidGestureState is returned when a gesture call violates
// the begin → continue* → end protocol.
var ErrInvalidGestureState = errors.New("invalid gesture state")

// Defaults for a fresh Machine.
const (
	DefaultStrokeWidth  = 2.0
	DefaultEraserRadius = 6.0
)

// Phase identifies the step of a gesture forwarded to a Viewport.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseContinue
	PhaseEnd
)

// Viewport receives pointer events while the hand tool is active.
type Viewport interface {
	Pointer(phase Phase, p model.Point)
}

// Machine holds the active tool and its parameters. It is owned by one canvas
// and is not safe for concurrent use.
type Machine struct {
	store    *canvas.Store
	viewport Viewport

	tool         model.Tool
	color        string
	width        float64
	eraserRadius float64

	active   bool
	current  int
	lastHand model.Point
	marked   []int
}

// Option configures a Machine.
type Option func(*Machine)

// WithColor sets the initial stroke color.
func WithColor(c string) Option {
	return func(m *Machine) {
		if model.ValidColor(c) {
			m.color = c
		}
	}
}

// WithStrokeWidth sets the initial stroke width.
func WithStrokeWidth(w float64) Option {
	return func(m *Machine) {
		if w > 0 && model.Finite(w) {
			m.width = w
		}
	}
}

// WithEraserRadius sets the hit-test radius of the eraser.
func WithEraserRadius(r float64) Option {
	return func(m *Machine) {
		if r >= 0 {
			m.eraserRadius = r
		}
	}
}

// WithViewport sets where hand-tool pointer events are forwarded.
func WithViewport(v Viewport) Option {
	return func(m *Machine) { m.viewport = v }
}

// NewMachine returns a Machine driving store, starting with the pen tool.
func NewMachine(store *canvas.Store, opts ...Option) *Machine {
	m := &Machine{
		store:        store,
		tool:         model.ToolPen,
		color:        model.Palette[0],
		width:        DefaultStrokeWidth,
		eraserRadius: DefaultEraserRadius,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Tool returns the active tool.
func (m *Machine) Tool() model.Tool { return m.tool }

// ActiveColor returns the stroke color new elements are created with.
func (m *Machine) ActiveColor() string { return m.color }

// ActiveWidth returns the stroke width new elements are created with.
func (m *Machine) ActiveWidth() float64 { return m.width }

// InGesture reports whether a gesture has begun and not yet ended.
func (m *Machine) InGesture() bool { return m.active }

// Current returns the element created by the gesture in progress, if any.
func (m *Machine) Current() (int, bool) {
	if !m.active || m.current == 0 {
		return 0, false
	}
	return m.current, true
}

// Handle applies customization events. Only subsequent elements are affected.
func (m *Machine) Handle(e bus.Event) {
	switch ev := e.(type) {
	case bus.ColorChanged:
		m.color = ev.Color
	case bus.StrokeWidthChanged:
		m.width = ev.Width
	}
}

// SetTool switches the active tool. A gesture in progress under the previous
// tool is finalized, never discarded: it ends exactly as if End had been
// called before the switch. The elements removed by a finalized eraser
// gesture are returned.
func (m *Machine) SetTool(t model.Tool) ([]model.Element, error) {
	if _, err := model.ParseTool(string(t)); err != nil {
		return nil, err
	}
	var removed []model.Element
	if m.active {
		var err error
		if removed, err = m.End(); err != nil {
			return nil, err
		}
	}
	m.tool = t
	return removed, nil
}

// Begin starts a gesture at p.
func (m *Machine) Begin(p model.Point) error {
	if m.active {
		m.abort()
		return fmt.Errorf("%w: begin while a %s gesture is in progress", ErrInvalidGestureState, m.tool)
	}
	switch m.tool {
	case model.ToolPen, model.ToolText:
		typ, _ := m.tool.ElementType()
		e, err := m.store.Create(typ, p, m.color, m.width)
		if err != nil {
			return err
		}
		m.current = e.ID
	case model.ToolEraser:
		m.marked = m.marked[:0]
		if err := m.erase(p); err != nil {
			return err
		}
	case model.ToolHand:
		m.lastHand = p
		m.forward(PhaseBegin, p)
	}
	m.active = true
	return nil
}

// Continue extends the gesture in progress with p.
func (m *Machine) Continue(p model.Point) error {
	if !m.active {
		return fmt.Errorf("%w: continue without begin", ErrInvalidGestureState)
	}
	switch m.tool {
	case model.ToolPen:
		return m.store.AppendPoint(m.current, p)
	case model.ToolText:
		m.abort()
		return fmt.Errorf("%w: text gestures have no continue", ErrInvalidGestureState)
	case model.ToolEraser:
		return m.erase(p)
	case model.ToolHand:
		m.lastHand = p
		m.forward(PhaseContinue, p)
	}
	return nil
}

// End finishes the gesture in progress. For the eraser it purges every
// crossed-out element and returns them.
func (m *Machine) End() ([]model.Element, error) {
	if !m.active {
		return nil, fmt.Errorf("%w: end without begin", ErrInvalidGestureState)
	}
	var removed []model.Element
	switch m.tool {
	case model.ToolEraser:
		removed = m.store.CommitErase()
	case model.ToolHand:
		m.forward(PhaseEnd, m.lastHand)
	}
	m.reset()
	return removed, nil
}

// Cancel abandons the gesture in progress. Elements crossed out by an eraser
// gesture are restored; pen and text elements stay as drawn so far.
func (m *Machine) Cancel() {
	if m.active {
		m.abort()
	}
}

func (m *Machine) erase(p model.Point) error {
	for _, id := range m.store.HitTest(p, m.eraserRadius) {
		if err := m.store.MarkSelected(id, true); err != nil {
			return err
		}
		if err := m.store.MarkCrossedOut(id, true); err != nil {
			return err
		}
		m.marked = append(m.marked, id)
	}
	return nil
}

func (m *Machine) abort() {
	if m.tool == model.ToolEraser {
		for _, id := range m.marked {
			// Elements purged elsewhere in the meantime are simply gone.
			_ = m.store.MarkCrossedOut(id, false)
		}
	}
	m.reset()
}

func (m *Machine) reset() {
	m.active = false
	m.current = 0
	m.marked = m.marked[:0]
}

func (m *Machine) forward(phase Phase, p model.Point) {
	if m.viewport != nil {
		m.viewport.Pointer(phase, p)
	}
}
