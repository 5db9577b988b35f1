// Package score persists the single high-score value.
package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrMalformed is returned when the stored record cannot be decoded.
var ErrMalformed = errors.New("malformed score record")

// Store reads and conditionally raises the high score.
type Store interface {
	// LoadAndMaybeUpdate returns the stored high score, first replacing it
	// with current when current is higher.
	LoadAndMaybeUpdate(current int) (int, error)
	// HighScore returns the stored high score without modifying it.
	HighScore() (int, error)
}

// record is the on-disk shape of the score file.
type record struct {
	Score int `json:"score"`
}

// FileStore keeps the high score in a small JSON file.
// The whole record is read, and on improvement rewritten, on each call.
// Safe for concurrent use within one process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// OpenFile validates the score file at path, creating it with a zero score if
// it does not exist. A file that cannot be decoded is rejected.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	_, err := s.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.write(0); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return s, nil
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadAndMaybeUpdate implements Store.
func (s *FileStore) LoadAndMaybeUpdate(current int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.read()
	if err != nil {
		return 0, err
	}
	if current <= stored {
		return stored, nil
	}
	if err := s.write(current); err != nil {
		return stored, err
	}
	return current, nil
}

// HighScore implements Store.
func (s *FileStore) HighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read score file %s: %w", s.path, err)
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("score file %s: %w: %v", s.path, ErrMalformed, err)
	}
	return r.Score, nil
}

// write replaces the file atomically so a crash never leaves a partial record.
func (s *FileStore) write(v int) error {
	data, err := json.Marshal(record{Score: v})
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".score-*.json")
	if err != nil {
		return fmt.Errorf("write score file %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write score file %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write score file %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write score file %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the high score in memory.
type MemoryStore struct {
	mu     sync.Mutex
	score  int
	writes int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding initial.
func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

// LoadAndMaybeUpdate implements Store.
func (m *MemoryStore) LoadAndMaybeUpdate(current int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current > m.score {
		m.score = current
		m.writes++
	}
	return m.score, nil
}

// HighScore implements Store.
func (m *MemoryStore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Writes returns how many times the stored value was replaced.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
