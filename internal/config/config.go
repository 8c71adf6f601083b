package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/daysketch/internal/model"
)

// Config is the root configuration for daysketch, stored in ~/.daysketch/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Drawing DrawingConfig `json:"drawing"`
}

// StorageConfig selects the backing store canvases are persisted into.
type StorageConfig struct {
	// Backend is "file" (one JSON file per day) or "sqlite".
	Backend string `json:"backend"`
	// Dir is the data directory. Empty = ~/.daysketch.
	Dir string `json:"dir"`
}

// DrawingConfig holds the initial tool parameters.
type DrawingConfig struct {
	DefaultColor       string   `json:"default_color"`
	DefaultStrokeWidth float64  `json:"default_stroke_width"`
	Palette            []string `json:"palette"`
	// MinPointDistance drops pen samples closer than this to the previous one. 0 keeps all.
	MinPointDistance *float64 `json:"min_point_distance"`
	EraserRadius     float64  `json:"eraser_radius"`
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultStrokeWidth      = 2.0
	DefaultMinPointDistance = 0.5
	DefaultEraserRadius     = 6.0

	// EnvPath overrides the config file location.
	EnvPath = "DAYSKETCH_CONFIG"
)

// Default returns a Config pre-filled with sensible defaults.
func Default() Config {
	minDist := DefaultMinPointDistance
	return Config{
		Storage: StorageConfig{Backend: BackendFile},
		Drawing: DrawingConfig{
			DefaultColor:       model.Palette[0],
			DefaultStrokeWidth: DefaultStrokeWidth,
			Palette:            append([]string(nil), model.Palette...),
			MinPointDistance:   &minDist,
			EraserRadius:       DefaultEraserRadius,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// daysketch configuration – ~/.daysketch/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise daysketch behaviour.
{
  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // Where canvases are kept.
    // • "file"   – one JSON file per day under <dir>/YYYY/MM/DD.json (default)
    // • "sqlite" – a single database file <dir>/daysketch.db
    "backend": "file",

    // Data directory. Leave empty to use ~/.daysketch.
    "dir": ""
  },

  // ── Drawing ──────────────────────────────────────────────────────────────
  "drawing": {
    // Stroke color and width a new session starts with.
    "default_color": "#100100",
    "default_stroke_width": 2,

    // Colors offered by the tool options. Gesture scripts pick one with
    // "swatch: <index>".
    "palette": ["#100100", "#d58141", "#d7c44c", "#4fa9cc", "#3f8d27"],

    // Pen samples closer than this (canvas units) to the previous sample are
    // dropped. 0 keeps every sample.
    "min_point_distance": 0.5,

    // How far around the pointer the eraser reaches.
    "eraser_radius": 6
  }
}
`

// Path returns the config file location: $DAYSKETCH_CONFIG or ~/.daysketch/config.json.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".daysketch", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file at Path, creating it with annotated defaults on
// first run.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is created from the
// annotated template.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := Default()
	switch cfg.Storage.Backend {
	case "":
		cfg.Storage.Backend = def.Storage.Backend
	case BackendFile, BackendSQLite:
	default:
		return def, fmt.Errorf("config file %s: unknown storage backend %q", path, cfg.Storage.Backend)
	}
	if !model.ValidColor(cfg.Drawing.DefaultColor) {
		cfg.Drawing.DefaultColor = def.Drawing.DefaultColor
	}
	if cfg.Drawing.DefaultStrokeWidth <= 0 {
		cfg.Drawing.DefaultStrokeWidth = def.Drawing.DefaultStrokeWidth
	}
	if len(cfg.Drawing.Palette) == 0 {
		cfg.Drawing.Palette = def.Drawing.Palette
	}
	for _, c := range cfg.Drawing.Palette {
		if !model.ValidColor(c) {
			return def, fmt.Errorf("config file %s: palette color %q is not a hex color", path, c)
		}
	}
	if cfg.Drawing.MinPointDistance == nil || *cfg.Drawing.MinPointDistance < 0 {
		cfg.Drawing.MinPointDistance = def.Drawing.MinPointDistance
	}
	if cfg.Drawing.EraserRadius <= 0 {
		cfg.Drawing.EraserRadius = def.Drawing.EraserRadius
	}

	return cfg, nil
}

// DataDir returns the configured data directory, defaulting to ~/.daysketch.
func (c Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".daysketch"), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
