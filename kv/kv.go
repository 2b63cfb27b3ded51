// Package kv provides best-effort key/value storage for user preferences.
//
// A Store writes through to a durable Backend when one is usable and
// silently degrades to an in-memory map when it is not. Callers never see
// storage errors.
package kv

import (
	"sync"

	"github.com/google/uuid"
)

// Backend is a durable key/value store.
type Backend interface {
	Set(key, value string) error
	Get(key string) (value string, ok bool, err error)
	Delete(key string) error
}

// Store is a key/value store with an in-memory fallback.
type Store struct {
	mu      sync.Mutex
	backend Backend
	durable bool

	// memory mirrors every write made through this store, so reads of
	// keys written this session never depend on the backend.
	memory map[string]string
}

// New creates a store over the given backend. The backend is probed by
// writing and deleting a sentinel key; if that fails (or backend is nil)
// the store lives in memory for the rest of the process.
func New(backend Backend) *Store {
	s := &Store{
		backend: backend,
		memory:  make(map[string]string),
	}
	s.durable = backend != nil && probe(backend)
	return s
}

// Memory returns a store that never touches disk.
func Memory() *Store {
	return New(nil)
}

func probe(b Backend) bool {
	key := "__mainframe_probe_" + uuid.NewString()
	if err := b.Set(key, "probe"); err != nil {
		return false
	}
	return b.Delete(key) == nil
}

// Durable reports whether the store passed its startup probe.
func (s *Store) Durable() bool {
	return s.durable
}

// Set stores value under key.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.durable {
		// A refused write still lands in memory below.
		_ = s.backend.Set(key, value)
	}
	s.memory[key] = value
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.memory[key]; ok {
		return v, true
	}
	if !s.durable {
		return "", false
	}
	v, ok, err := s.backend.Get(key)
	if err != nil {
		return "", false
	}
	return v, ok
}
