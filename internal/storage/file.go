package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

var plainKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileStore keeps one JSON file per key on a billy filesystem.
type FileStore struct {
	fs billy.Filesystem
}

// NewFileStore returns a FileStore rooted at the top of fs.
func NewFileStore(fs billy.Filesystem) *FileStore {
	return &FileStore{fs: fs}
}

// NewOSFileStore returns a FileStore on the local disk under dir.
func NewOSFileStore(dir string) *FileStore {
	return NewFileStore(osfs.New(dir))
}

// keyPath maps a key to its file. Day keys (2006-01-02) use the
// YYYY/MM/DD.json layout.
func keyPath(key string) (string, error) {
	if t, err := time.Parse("2006-01-02", key); err == nil {
		return path.Join(t.Format("2006"), t.Format("01"), t.Format("02")+".json"), nil
	}
	if !plainKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return key + ".json", nil
}

// Get reads the value stored under key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	p, err := keyPath(key)
	if err != nil {
		return nil, false, err
	}
	data, err := util.ReadFile(s.fs, p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage error reading %s: %w", p, err)
	}
	return data, true, nil
}

// Set atomically replaces the value stored under key.
func (s *FileStore) Set(key string, value []byte) error {
	p, err := keyPath(key)
	if err != nil {
		return err
	}
	if dir := path.Dir(p); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("storage error creating directories: %w", err)
		}
	}

	// Atomic write: write to a uniquely named temp file then rename, so
	// overlapping writers never share a temp file.
	tmpPath := p + "." + uuid.NewString() + ".tmp"
	if err := util.WriteFile(s.fs, tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, p); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
