package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"wordtrainer/internal/domain"
)

// Store implements repository.Store in process memory
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Close is a no-op; the records live as long as the process
func (s *Store) Close() error {
	return nil
}

// Get returns a copy of the value stored at key
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value at key
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Keys returns stored keys starting with prefix in sorted order
func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
