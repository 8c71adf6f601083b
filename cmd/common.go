package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/daysketch/internal/calendar"
	"github.com/Tiliavir/daysketch/internal/config"
	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/persistence"
	"github.com/Tiliavir/daysketch/internal/session"
	"github.com/Tiliavir/daysketch/internal/storage"
)

// sqliteFile is the database name inside the data directory.
const sqliteFile = "daysketch.db"

// env bundles what every command needs: the config and an open persistence layer.
type env struct {
	cfg     config.Config
	persist *persistence.Persistence
	close   func()
}

// openEnv loads the config and opens the configured backend. Failures are
// storage errors and terminate the process with exit code 2.
func openEnv() *env {
	cfg, err := config.Load()
	if err != nil {
		exitStorage(err)
	}
	kv, closeFn, err := openStore(cfg)
	if err != nil {
		exitStorage(err)
	}
	return &env{cfg: cfg, persist: persistence.New(kv), close: closeFn}
}

func openStore(cfg config.Config) (storage.KeyValueStore, func(), error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, err
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(filepath.Join(dir, sqliteFile))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return storage.NewOSFileStore(dir), func() {}, nil
	}
}

// openSession opens the canvas of day with the configured drawing defaults.
func (e *env) openSession(day model.Day, saver *persistence.Saver) *session.Session {
	s, err := session.Open(day, e.persist, session.Options{Drawing: e.cfg.Drawing, Saver: saver})
	if err != nil {
		exitStorage(err)
	}
	return s
}

func exitStorage(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

// resolveDay returns the day named by a --date flag, or today when empty.
func resolveDay(date string, now time.Time) (model.Day, error) {
	if date == "" {
		return calendar.NewDay(now, now), nil
	}
	t, err := calendar.ParseDayID(date, now.Location())
	if err != nil {
		return model.Day{}, err
	}
	return calendar.NewDay(t, now), nil
}

// parsePoint parses "x,y" into a Point.
func parsePoint(s string) (model.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return model.Point{}, fmt.Errorf("invalid point %q, expected x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return model.Point{}, fmt.Errorf("invalid point %q, expected x,y", s)
	}
	return model.Point{X: x, Y: y}, nil
}

func formatPoint(p model.Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// formatPoints abbreviates long strokes to their first and last points.
func formatPoints(pts []model.Point) string {
	switch len(pts) {
	case 0:
		return ""
	case 1:
		return formatPoint(pts[0])
	case 2:
		return formatPoint(pts[0]) + " " + formatPoint(pts[1])
	}
	return fmt.Sprintf("%s … %s (%d)", formatPoint(pts[0]), formatPoint(pts[len(pts)-1]), len(pts))
}
