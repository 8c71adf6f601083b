package persistence

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Tiliavir/daysketch/internal/model"
)

// Saver writes canvases in the background. Each day has at most one write in
// flight; a canvas submitted while a write is running replaces any earlier
// submission still waiting, so the latest snapshot is always written last.
type Saver struct {
	p *Persistence

	mu    sync.Mutex
	slots map[string]*saveSlot
	errs  []error
	wg    sync.WaitGroup
}

type saveSlot struct {
	pending    []model.Element
	hasPending bool
}

// NewSaver returns a Saver writing through p.
func NewSaver(p *Persistence) *Saver {
	return &Saver{p: p, slots: make(map[string]*saveSlot)}
}

// Submit schedules elements to be written as the canvas of dayID. The slice is
// copied before Submit returns.
func (s *Saver) Submit(dayID string, elements []model.Element) {
	snapshot := make([]model.Element, len(elements))
	for i, e := range elements {
		snapshot[i] = e.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slot, busy := s.slots[dayID]; busy {
		if slot.hasPending {
			log.Printf("[SAVER] %s: superseding queued snapshot", dayID)
		}
		slot.pending = snapshot
		slot.hasPending = true
		return
	}
	s.slots[dayID] = &saveSlot{}
	s.wg.Add(1)
	go s.run(dayID, snapshot)
}

func (s *Saver) run(dayID string, elements []model.Element) {
	defer s.wg.Done()
	for {
		err := s.p.Save(dayID, elements)

		s.mu.Lock()
		if err != nil {
			log.Printf("[SAVER] %v", err)
			s.errs = append(s.errs, err)
		}
		slot := s.slots[dayID]
		if !slot.hasPending {
			delete(s.slots, dayID)
			s.mu.Unlock()
			return
		}
		elements = slot.pending
		slot.pending, slot.hasPending = nil, false
		s.mu.Unlock()
	}
}

// Flush blocks until every submitted canvas has been written or ctx is done.
// It returns the write errors seen since the previous Flush. Flush must not
// be called concurrently with Submit.
func (s *Saver) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := errors.Join(s.errs...)
	s.errs = nil
	return err
}
