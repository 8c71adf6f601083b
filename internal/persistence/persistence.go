// Package persistence saves and loads day canvases through a key-value
// backing store.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/storage"
)

// ErrMalformed describes a stored value that does not match the element
// array schema. Load recovers from it; it is exported for Decode callers.
var ErrMalformed = errors.New("malformed persisted canvas")

// Persistence reads and writes one element array per day ID.
type Persistence struct {
	kv storage.KeyValueStore
}

// New returns a Persistence writing into kv.
func New(kv storage.KeyValueStore) *Persistence {
	return &Persistence{kv: kv}
}

// Save replaces the stored canvas of dayID with elements.
func (p *Persistence) Save(dayID string, elements []model.Element) error {
	if elements == nil {
		elements = []model.Element{}
	}
	if err := storage.SetJSON(p.kv, dayID, elements); err != nil {
		return fmt.Errorf("save canvas %s: %w", dayID, err)
	}
	return nil
}

// Load returns the stored canvas of dayID. Missing, unreadable and malformed
// values all yield an empty canvas.
func (p *Persistence) Load(dayID string) []model.Element {
	raw, err := storage.GetJSON(p.kv, dayID)
	if err != nil {
		log.Printf("[PERSIST] reading %s: %v", dayID, err)
		return []model.Element{}
	}
	elements, err := Decode(raw)
	if err != nil {
		if !bytes.Equal(raw, storage.EmptyObject) {
			log.Printf("[PERSIST] ignoring stored canvas %s: %v", dayID, err)
		}
		return []model.Element{}
	}
	return elements
}

// Bundle collects the stored canvases of dayIDs into CanvasData. Days
// without elements are left out.
func (p *Persistence) Bundle(dayIDs []string) (model.CanvasData, error) {
	data := model.CanvasData{}
	for _, id := range dayIDs {
		elements := p.Load(id)
		if len(elements) == 0 {
			continue
		}
		blob, err := json.Marshal(elements)
		if err != nil {
			return nil, fmt.Errorf("encode canvas %s: %w", id, err)
		}
		data[id] = string(blob)
	}
	return data, nil
}

// Restore saves every canvas in data. Each blob is validated first; nothing is
// written if any of them is malformed.
func (p *Persistence) Restore(data model.CanvasData) error {
	decoded := make(map[string][]model.Element, len(data))
	for id, blob := range data {
		elements, err := Decode([]byte(blob))
		if err != nil {
			return fmt.Errorf("canvas %s: %w", id, err)
		}
		decoded[id] = elements
	}
	for id, elements := range decoded {
		if err := p.Save(id, elements); err != nil {
			return err
		}
	}
	return nil
}
