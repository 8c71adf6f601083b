// Package canvas holds the ordered collection of drawable elements of one
// day's canvas.
package canvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/Tiliavir/daysketch/internal/model"
)

var (
	// ErrNotFound is returned when an operation names an element ID the store does not hold.
	ErrNotFound = errors.New("element not found")
	// ErrInvalidElement is returned when element attributes are out of range.
	ErrInvalidElement = errors.New("invalid element")
)

// DefaultMinPointDistance is the de-jitter threshold in canvas units.
const DefaultMinPointDistance = 0.5

// Store owns the elements of a single canvas. It is not safe for concurrent use.
type Store struct {
	elements []*model.Element
	nextID   int
	minDist  float64
}

// Option configures a Store.
type Option func(*Store)

// WithMinPointDistance sets the de-jitter threshold used by AppendPoint.
// Zero disables filtering.
func WithMinPointDistance(d float64) Option {
	return func(s *Store) {
		if d >= 0 {
			s.minDist = d
		}
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{nextID: 1, minDist: DefaultMinPointDistance}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create allocates a new element with a fresh ID and appends it.
func (s *Store) Create(typ model.ElementType, p model.Point, color string, width float64) (model.Element, error) {
	if !typ.Valid() {
		return model.Element{}, fmt.Errorf("%w: type %q", ErrInvalidElement, typ)
	}
	if !(width > 0) || !model.Finite(width) {
		return model.Element{}, fmt.Errorf("%w: stroke width %v", ErrInvalidElement, width)
	}
	if !p.Finite() {
		return model.Element{}, fmt.Errorf("%w: point %v", ErrInvalidElement, p)
	}
	if !model.ValidColor(color) {
		return model.Element{}, fmt.Errorf("%w: color %q", ErrInvalidElement, color)
	}
	e := &model.Element{
		ID:          s.nextID,
		Type:        typ,
		Points:      []model.Point{p},
		StrokeColor: color,
		StrokeWidth: width,
		Position:    p,
	}
	s.nextID++
	s.elements = append(s.elements, e)
	return e.Clone(), nil
}

// AppendPoint adds p to the element's polyline. Points closer than the
// de-jitter threshold to the previous point are dropped.
func (s *Store) AppendPoint(id int, p model.Point) error {
	e, err := s.find(id)
	if err != nil {
		return err
	}
	if !p.Finite() {
		return fmt.Errorf("%w: point %v", ErrInvalidElement, p)
	}
	if last := e.Points[len(e.Points)-1]; Distance(last, p) < s.minDist {
		return nil
	}
	e.Points = append(e.Points, p)
	e.Position = model.BoundsOrigin(e.Points)
	return nil
}

// MarkSelected sets the selected flag. Crossed-out elements stay unselected.
func (s *Store) MarkSelected(id int, v bool) error {
	e, err := s.find(id)
	if err != nil {
		return err
	}
	if v && e.CrossedOut {
		return nil
	}
	e.Selected = v
	return nil
}

// MarkCrossedOut sets the crossed-out flag. Crossing out clears selection.
func (s *Store) MarkCrossedOut(id int, v bool) error {
	e, err := s.find(id)
	if err != nil {
		return err
	}
	e.CrossedOut = v
	if v {
		e.Selected = false
	}
	return nil
}

// AttachText sets the payload of a text element.
func (s *Store) AttachText(id int, payload string) error {
	e, err := s.find(id)
	if err != nil {
		return err
	}
	if e.Type != model.ElementText {
		return fmt.Errorf("%w: element %d is %s, not text", ErrInvalidElement, id, e.Type)
	}
	e.Text = payload
	return nil
}

// CommitErase removes every crossed-out element and returns the removed ones
// in creation order.
func (s *Store) CommitErase() []model.Element {
	var removed []model.Element
	kept := s.elements[:0]
	for _, e := range s.elements {
		if e.CrossedOut {
			removed = append(removed, e.Clone())
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.elements); i++ {
		s.elements[i] = nil
	}
	s.elements = kept
	return removed
}

// Get returns a copy of the element with the given ID.
func (s *Store) Get(id int) (model.Element, error) {
	e, err := s.find(id)
	if err != nil {
		return model.Element{}, err
	}
	return e.Clone(), nil
}

// All returns a snapshot of all elements in creation order.
func (s *Store) All() []model.Element {
	out := make([]model.Element, 0, len(s.elements))
	for _, e := range s.elements {
		out = append(out, e.Clone())
	}
	return out
}

// Len returns the number of elements held.
func (s *Store) Len() int {
	return len(s.elements)
}

// Clear removes all elements. IDs are not reused afterwards.
func (s *Store) Clear() {
	s.elements = nil
}

// Restore replaces the contents of the store with previously persisted
// elements. IDs must be strictly increasing.
func (s *Store) Restore(elements []model.Element) error {
	restored := make([]*model.Element, 0, len(elements))
	last := 0
	for _, e := range elements {
		if e.ID <= last {
			return fmt.Errorf("%w: id %d after %d", ErrInvalidElement, e.ID, last)
		}
		last = e.ID
		c := e.Clone()
		c.Selected = false
		restored = append(restored, &c)
	}
	s.elements = restored
	if last >= s.nextID {
		s.nextID = last + 1
	}
	return nil
}

// HitTest returns the IDs of live elements within radius of p, widened by half
// of each element's stroke width.
func (s *Store) HitTest(p model.Point, radius float64) []int {
	var ids []int
	for _, e := range s.elements {
		if e.CrossedOut {
			continue
		}
		if distanceToElement(e, p) <= radius+e.StrokeWidth/2 {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (s *Store) find(id int) (*model.Element, error) {
	for _, e := range s.elements {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func distanceToElement(e *model.Element, p model.Point) float64 {
	if e.Type == model.ElementText || len(e.Points) == 1 {
		return Distance(e.Points[0], p)
	}
	best := math.Inf(1)
	for i := 1; i < len(e.Points); i++ {
		if d := distanceToSegment(p, e.Points[i-1], e.Points[i]); d < best {
			best = d
		}
	}
	return best
}

func distanceToSegment(p, a, b model.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, model.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
