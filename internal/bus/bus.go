// Package bus delivers tool customization changes (stroke color and width)
// from a tool-options UI to the drawing engine.
package bus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tiliavir/daysketch/internal/model"
)

// Wire names shared with tool-options UIs.
const (
	EventColor       = "color"
	EventStrokeWidth = "strokeWidthChange"
)

var (
	// ErrInvalidEvent is returned for a bad color or a non-positive or non-finite width.
	ErrInvalidEvent = errors.New("invalid customization event")
	// ErrUnknownEvent is returned by Decode for names other than the two wire names.
	ErrUnknownEvent = errors.New("unknown customization event")
)

// Event is either ColorChanged or StrokeWidthChanged.
type Event interface {
	Name() string
	validate() error
}

// ColorChanged carries a new stroke color.
type ColorChanged struct {
	Color string
}

// Name returns the wire name "color".
func (ColorChanged) Name() string { return EventColor }

func (e ColorChanged) validate() error {
	if !model.ValidColor(e.Color) {
		return fmt.Errorf("%w: color %q", ErrInvalidEvent, e.Color)
	}
	return nil
}

// StrokeWidthChanged carries a new stroke width.
type StrokeWidthChanged struct {
	Width float64
}

// Name returns the wire name "strokeWidthChange".
func (StrokeWidthChanged) Name() string { return EventStrokeWidth }

func (e StrokeWidthChanged) validate() error {
	if !(e.Width > 0) || !model.Finite(e.Width) {
		return fmt.Errorf("%w: stroke width %v", ErrInvalidEvent, e.Width)
	}
	return nil
}

// Subscriber receives events synchronously.
type Subscriber interface {
	Handle(Event)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(Event)

// Handle calls f(e).
func (f SubscriberFunc) Handle(e Event) { f(e) }

// Bus is an in-process, synchronous event channel. It is not safe for
// concurrent use; it lives on the canvas' event thread.
type Bus struct {
	subs   []*subscription
	nextID int
}

type subscription struct {
	id  int
	sub Subscriber
}

// New returns a Bus with no subscribers.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers s and returns a function that removes it again.
func (b *Bus) Subscribe(s Subscriber) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, &subscription{id: id, sub: s})
	return func() {
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish validates e and hands it to every subscriber in subscription order.
// Invalid events reach no one.
func (b *Bus) Publish(e Event) error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if err := e.validate(); err != nil {
		return err
	}
	for _, sub := range append([]*subscription(nil), b.subs...) {
		sub.sub.Handle(e)
	}
	return nil
}

// Decode builds a typed event from its wire name and raw value.
func Decode(name, raw string) (Event, error) {
	raw = strings.TrimSpace(raw)
	var e Event
	switch name {
	case EventColor:
		e = ColorChanged{Color: raw}
	case EventStrokeWidth:
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: stroke width %q: %v", ErrInvalidEvent, raw, err)
		}
		e = StrokeWidthChanged{Width: w}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}
