package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is a small durable key/value store: one JSON document per key, kept
// as a file in a local directory. Writes go through a temp file and rename so
// a crash never leaves a half-written value behind.
//
// If the directory cannot be created or written, the store degrades to an
// in-memory map for the life of the process. Values survive only as long as
// the process in that mode, which keeps the tracker usable on read-only
// filesystems.
type Store struct {
	mu      sync.Mutex
	dir     string
	memOnly bool
	mem     map[string][]byte
	warned  bool
}

// New opens a store rooted at dir, creating it if needed.
func New(dir string) *Store {
	s := &Store{dir: dir, mem: make(map[string][]byte)}
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.memOnly = true
		s.warnDegraded(err)
	}
	return s
}

// Get returns the stored value for key, or ok=false if the key is absent.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memOnly {
		v, ok := s.mem[key]
		return v, ok
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memOnly {
		s.mem[key] = append([]byte(nil), value...)
		return nil
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		// Fall back to memory so the session is not lost mid-flight.
		s.memOnly = true
		s.warnDegraded(err)
		s.mem[key] = append([]byte(nil), value...)
		return nil
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memOnly {
		delete(s.mem, key)
		return
	}
	os.Remove(s.path(key))
}

// MemoryOnly reports whether the store has degraded to in-memory operation.
func (s *Store) MemoryOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memOnly
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) warnDegraded(err error) {
	if s.warned {
		return
	}
	s.warned = true
	logrus.WithError(err).Warn("local storage unavailable, tracking state will not survive this process")
}
