// Package selection persists the user's list of selected paths.
package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Store is the capability the manifest engine uses to read and replace the
// active selection.
type Store interface {
	Get() ([]string, error)
	Set(paths []string) error
}

// MemoryStore keeps the selection in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	paths []string
}

// NewMemoryStore returns a store seeded with paths.
func NewMemoryStore(paths ...string) *MemoryStore {
	return &MemoryStore{paths: clone(paths)}
}

// Get returns a copy of the current selection.
func (s *MemoryStore) Get() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.paths), nil
}

// Set replaces the selection.
func (s *MemoryStore) Set(paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = clone(paths)
	return nil
}

// ErrLocked is returned when another process holds the selection lock past
// the timeout.
var ErrLocked = errors.New("selection is locked by another process")

// FileStore persists the selection as a JSON array. Writers take an exclusive
// file lock on <path>.lock so concurrent sfd invocations do not interleave.
type FileStore struct {
	path        string
	lockTimeout time.Duration
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lockTimeout: 5 * time.Second}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Get reads the selection. A missing file is an empty selection.
func (s *FileStore) Get() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("cannot read selection %s: %w", s.path, err)
	}
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("invalid selection JSON %s: %w", s.path, err)
	}
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

// Set replaces the selection on disk.
func (s *FileStore) Set(paths []string) error {
	return s.Update(func([]string) []string { return paths })
}

// Update applies fn to the stored selection under the file lock and writes
// the result back.
func (s *FileStore) Update(fn func(current []string) []string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.Get()
	if err != nil {
		return err
	}
	return s.write(fn(current))
}

func (s *FileStore) write(paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal selection: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write selection %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cannot replace selection %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", filepath.Dir(s.path), err)
	}
	l := flock.New(s.path + ".lock")
	deadline := time.Now().Add(s.lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire selection lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, l.Path())
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func clone(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}
