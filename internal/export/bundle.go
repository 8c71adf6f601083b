package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Tiliavir/daysketch/internal/model"
)

// bundle is the on-disk export document: {"canvas": {"<dayId>": "<elements json>"}}.
type bundle struct {
	Canvas model.CanvasData `json:"canvas"`
}

// WriteBundle writes data as an indented export document.
func WriteBundle(w io.Writer, data model.CanvasData) error {
	if data == nil {
		data = model.CanvasData{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle{Canvas: data})
}

// ReadBundle parses an export document written by WriteBundle.
func ReadBundle(r io.Reader) (model.CanvasData, error) {
	var b bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	if b.Canvas == nil {
		return nil, fmt.Errorf("reading bundle: missing %q key", model.CanvasKey)
	}
	return b.Canvas, nil
}
