// Package memory provides an in-memory key/value store for sessions that do not outlive the
// process, and for tests.
package memory

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
)

// Store is a concurrency safe map of byte values.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailPut, when set, is returned by every Put. It simulates a storage outage.
	FailPut error
}

// New returns an empty store.
func New() *Store { return &Store{values: make(map[string][]byte)} }

// Get returns a copy of the value at 'key', or an error matching fs.ErrNotExist.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return slices.Clone(v), nil
}

// Put stores a copy of 'value' at 'key'.
func (s *Store) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.values[key] = slices.Clone(value)
	return nil
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}
