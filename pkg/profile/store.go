package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ErrNoSnapshot is returned by Load when the profile was never saved
var ErrNoSnapshot = errors.New("no profile snapshot")

// FileStore keeps profile snapshot as a json document on disk
type FileStore struct {
	path string
}

// NewFileStore makes a store for the given snapshot path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns snapshot location
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot, ErrNoSnapshot if the file doesn't exist
func (s *FileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read profile snapshot: %w", err)
	}

	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode profile snapshot %s: %w", s.path, err)
	}
	p.ensureMaps()
	return p, nil
}

// Save writes the snapshot atomically, readers never see a partial file
func (s *FileStore) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp profile: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp profile: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename profile snapshot: %w", err)
	}
	return nil
}
