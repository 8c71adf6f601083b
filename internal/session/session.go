// Package session wires the drawing engine of one day together: the element
// store, the tool machine, the customization bus and persistence.
package session

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/daysketch/internal/bus"
	"github.com/Tiliavir/daysketch/internal/canvas"
	"github.com/Tiliavir/daysketch/internal/config"
	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/persistence"
	"github.com/Tiliavir/daysketch/internal/tool"
)

// ErrDayDisabled is returned for drawing input on a disabled day.
var ErrDayDisabled = errors.New("day is not enabled for drawing")

// Session is the canvas of one day. Like the engine parts it owns, it is
// driven from a single goroutine.
type Session struct {
	Day   model.Day
	Store *canvas.Store
	Tools *tool.Machine
	Bus   *bus.Bus

	persist *persistence.Persistence
	saver   *persistence.Saver
	unsub   func()
}

// Options configures a Session.
type Options struct {
	Drawing  config.DrawingConfig
	Viewport tool.Viewport
	// Saver, when set, receives a snapshot after every completed gesture.
	Saver *persistence.Saver
}

// Open loads the stored canvas of day and prepares it for input.
func Open(day model.Day, p *persistence.Persistence, opts Options) (*Session, error) {
	var storeOpts []canvas.Option
	if opts.Drawing.MinPointDistance != nil {
		storeOpts = append(storeOpts, canvas.WithMinPointDistance(*opts.Drawing.MinPointDistance))
	}
	store := canvas.NewStore(storeOpts...)
	if err := store.Restore(p.Load(day.ID)); err != nil {
		return nil, fmt.Errorf("open %s: %w", day.ID, err)
	}

	toolOpts := []tool.Option{
		tool.WithColor(opts.Drawing.DefaultColor),
		tool.WithStrokeWidth(opts.Drawing.DefaultStrokeWidth),
		tool.WithEraserRadius(opts.Drawing.EraserRadius),
	}
	if opts.Viewport != nil {
		toolOpts = append(toolOpts, tool.WithViewport(opts.Viewport))
	}
	machine := tool.NewMachine(store, toolOpts...)

	b := bus.New()
	s := &Session{
		Day:     day,
		Store:   store,
		Tools:   machine,
		Bus:     b,
		persist: p,
		saver:   opts.Saver,
	}
	s.unsub = b.Subscribe(machine)
	return s, nil
}

// SetTool switches the active tool, finalizing any gesture in progress.
func (s *Session) SetTool(t model.Tool) ([]model.Element, error) {
	wasActive := s.Tools.InGesture()
	removed, err := s.Tools.SetTool(t)
	if err == nil && wasActive {
		s.autosave()
	}
	return removed, err
}

// Begin starts a gesture. Only the hand tool works on a disabled day.
func (s *Session) Begin(p model.Point) error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	return s.Tools.Begin(p)
}

// Continue extends the gesture in progress.
func (s *Session) Continue(p model.Point) error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	return s.Tools.Continue(p)
}

// End completes the gesture in progress and hands a snapshot to the saver.
func (s *Session) End() ([]model.Element, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	removed, err := s.Tools.End()
	if err != nil {
		return nil, err
	}
	s.autosave()
	return removed, nil
}

// Cancel abandons the gesture in progress.
func (s *Session) Cancel() {
	s.Tools.Cancel()
}

// Text places a text element carrying payload at p.
func (s *Session) Text(p model.Point, payload string) (model.Element, error) {
	if s.Tools.Tool() != model.ToolText {
		return model.Element{}, fmt.Errorf("%w: text placement needs the text tool, not %s", tool.ErrInvalidGestureState, s.Tools.Tool())
	}
	if err := s.Begin(p); err != nil {
		return model.Element{}, err
	}
	id, _ := s.Tools.Current()
	if err := s.Store.AttachText(id, payload); err != nil {
		s.Tools.Cancel()
		return model.Element{}, err
	}
	if _, err := s.End(); err != nil {
		return model.Element{}, err
	}
	return s.Store.Get(id)
}

// Clear removes every element of the day.
func (s *Session) Clear() error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	s.Tools.Cancel()
	s.Store.Clear()
	s.autosave()
	return nil
}

// Save writes the canvas synchronously.
func (s *Session) Save() error {
	return s.persist.Save(s.Day.ID, s.Store.All())
}

// Close detaches the tool machine from the bus.
func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Session) checkEnabled() error {
	if s.Day.Enabled || s.Tools.Tool() == model.ToolHand {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDayDisabled, s.Day.ID)
}

func (s *Session) autosave() {
	if s.saver != nil {
		s.saver.Submit(s.Day.ID, s.Store.All())
	}
}
