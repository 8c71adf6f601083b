// Package storage provides the key-value backing stores canvases are
// persisted into.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidKey is returned for keys a store cannot map to a location.
var ErrInvalidKey = errors.New("invalid storage key")

// EmptyObject is what GetJSON yields for a key that was never written.
var EmptyObject = json.RawMessage(`{}`)

// KeyValueStore is a durable mapping from string keys to opaque values.
// Set replaces the whole value.
type KeyValueStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// GetJSON returns the raw JSON stored under key, or EmptyObject when absent.
// The value is not validated.
func GetJSON(kv KeyValueStore, key string) (json.RawMessage, error) {
	data, ok, err := kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return EmptyObject, nil
	}
	return json.RawMessage(data), nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(kv KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON for %s: %w", key, err)
	}
	return kv.Set(key, data)
}
