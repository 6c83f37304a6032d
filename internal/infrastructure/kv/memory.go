// Package kv provides the key-value backends the draft store can persist to.
package kv

import (
	"context"
	"sync"

	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/internal/domain/repository"
)

// Ensure MemoryStore implements repository.KVStore
var _ repository.KVStore = (*MemoryStore)(nil)

// MemoryStore is a mutex-guarded in-memory map. Default backend; also the one
// the tests inject.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
