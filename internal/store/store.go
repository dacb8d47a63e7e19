// Package store persists the best score between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Key is the name the best score is stored under.
const Key = "sticky-orbit-best"

// ErrCorrupt is wrapped when the best-score file cannot be decoded.
var ErrCorrupt = errors.New("corrupt best-score file")

// BestStore loads and saves the single best-score scalar, in meters.
type BestStore interface {
	Load() (int, error)
	Save(best int) error
}

// FileStore keeps the best score in a small JSON document:
//
//	{"sticky-orbit-best": 1234}
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file and its directory
// are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the stored best, or 0 if nothing has been saved yet.
func (f *FileStore) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read best score: %w", err)
	}
	var doc map[string]int
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.Path, err)
	}
	best := doc[Key]
	if best < 0 {
		return 0, fmt.Errorf("%w: %s: negative best %d", ErrCorrupt, f.Path, best)
	}
	return best, nil
}

// Save replaces the file via a temp file and rename.
func (f *FileStore) Save(best int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(map[string]int{Key: best})
	if err != nil {
		return fmt.Errorf("encode best score: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".best-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace best score: %w", err)
	}
	return nil
}

// MemStore is an in-memory BestStore for tests and runs without a
// writable config directory.
type MemStore struct {
	mu    sync.Mutex
	best  int
	saves int
}

// Load returns the last saved value.
func (m *MemStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// Save records best.
func (m *MemStore) Save(best int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = best
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Record saves score if it beats the stored best and returns the best
// afterwards. Last writer wins; there is no cross-process locking.
func Record(s BestStore, score int) (int, error) {
	best, err := s.Load()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return 0, err
	}
	if score <= best {
		return best, nil
	}
	if err := s.Save(score); err != nil {
		return best, err
	}
	return score, nil
}
