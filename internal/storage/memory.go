// ABOUTME: In-process storage for tests and ephemeral sessions
// ABOUTME: Nothing survives process exit

package storage

import (
	"context"
	"sync"
)

// MemoryStorage is a mutex-guarded map
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty MemoryStorage
func NewMemory() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}
