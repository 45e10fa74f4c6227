package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/serroba/shortipy/internal/domain"
)

// MemoryStore is an in-memory implementation of KeyStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a new in-memory key store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("get %s: %w", key, domain.ErrNotFound)
	}

	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

func (m *MemoryStore) SetNX(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; ok {
		return false, nil
	}

	m.values[key] = value

	return true, nil
}

func (m *MemoryStore) SetXX(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; !ok {
		return false, nil
	}

	m.values[key] = value

	return true, nil
}

func (m *MemoryStore) Del(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; !ok {
		return false, nil
	}

	delete(m.values, key)

	return true, nil
}

// Scan returns matching entries sorted by key.
func (m *MemoryStore) Scan(_ context.Context, prefix string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0)

	for key, value := range m.values {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: value})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	return entries, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ KeyStore = (*MemoryStore)(nil)
