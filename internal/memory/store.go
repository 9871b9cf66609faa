// Package memory implements an in-process types.Store. Values vanish on
// Detach; it backs tests and throwaway sessions.
package memory

import (
	"sort"
	"sync"

	"github.com/mesh-intelligence/folio/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store keeps values in a map.
type Store struct {
	mu       sync.RWMutex
	attached bool
	values   map[string][]byte
}

// New returns an attached, empty store.
func New() *Store {
	return &Store{attached: true, values: make(map[string][]byte)}
}

// NewDetached returns a store that must be attached before use.
func NewDetached() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Attach marks the store attached. DataDir is ignored.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	s.attached = true
	return nil
}

// Detach drops all values. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	s.values = make(map[string][]byte)
	return nil
}

// Get returns a copy of the value for key.
func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	v, ok := s.values[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (s *Store) Put(key string, value []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.ErrStoreDetached
	}
	s.values[key] = append([]byte{}, value...)
	return nil
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
