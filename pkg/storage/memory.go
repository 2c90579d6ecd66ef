package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store, mostly useful as a fixture.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates a store seeded with the given text contents.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	s := &MemoryStore{items: make(map[string][]byte, len(seed))}
	for key, value := range seed {
		s.items[key] = []byte(value)
	}
	return s
}

// Put stores a copy of data under key.
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), data...)
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Read returns a copy of the data stored under key.
func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		observeRead(BackendMemory, err)
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		err := fmt.Errorf("%w: %q", ErrNotExist, key)
		observeRead(BackendMemory, err)
		return nil, err
	}

	observeRead(BackendMemory, nil)
	return append([]byte(nil), data...), nil
}
