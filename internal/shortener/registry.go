package shortener

import (
	"context"
	"fmt"
	"strings"

	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/store"
)

// Registry is the only writer of the url:<key> namespace.
type Registry struct {
	store     store.KeyStore
	allocator *Allocator
}

// NewRegistry creates a new URL registry.
func NewRegistry(s store.KeyStore, allocator *Allocator) *Registry {
	return &Registry{
		store:     s,
		allocator: allocator,
	}
}

// List returns every stored mapping. An empty collection is reported as
// domain.ErrNotFound.
func (r *Registry) List(ctx context.Context) ([]URLMapping, error) {
	entries, err := r.store.Scan(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("list urls: %w", domain.ErrNotFound)
	}

	mappings := make([]URLMapping, 0, len(entries))
	for _, e := range entries {
		mappings = append(mappings, URLMapping{
			Key:   Key(strings.TrimPrefix(e.Key, keyPrefix)),
			Value: e.Value,
		})
	}

	return mappings, nil
}

// Get returns the mapping stored under key.
func (r *Registry) Get(ctx context.Context, key Key) (*URLMapping, error) {
	value, err := r.store.Get(ctx, storeKey(key))
	if err != nil {
		return nil, fmt.Errorf("get url %s: %w", key, err)
	}

	return &URLMapping{Key: key, Value: value}, nil
}

// Create stores value under a freshly allocated key.
func (r *Registry) Create(ctx context.Context, value string) (*URLMapping, error) {
	if err := validateValue(value); err != nil {
		return nil, err
	}

	key, err := r.allocator.Allocate(ctx, value)
	if err != nil {
		return nil, err
	}

	return &URLMapping{Key: key, Value: value}, nil
}

// Update replaces the value of an existing key. The key never changes.
func (r *Registry) Update(ctx context.Context, key Key, value string) (*URLMapping, error) {
	if err := validateValue(value); err != nil {
		return nil, err
	}

	replaced, err := r.store.SetXX(ctx, storeKey(key), value)
	if err != nil {
		return nil, fmt.Errorf("update url %s: %w", key, err)
	}

	if !replaced {
		return nil, fmt.Errorf("update url %s: %w", key, domain.ErrNotFound)
	}

	return &URLMapping{Key: key, Value: value}, nil
}

// Put writes value under an explicit key, creating or replacing it.
// Only the admin CLI uses it.
func (r *Registry) Put(ctx context.Context, key Key, value string) (*URLMapping, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("key %q must be %d lowercase letters: %w", key, KeyLength, domain.ErrInvalidInput)
	}

	if err := validateValue(value); err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, storeKey(key), value); err != nil {
		return nil, fmt.Errorf("put url %s: %w", key, err)
	}

	return &URLMapping{Key: key, Value: value}, nil
}

// Delete removes key. Deleting an absent key fails with domain.ErrNotFound.
func (r *Registry) Delete(ctx context.Context, key Key) error {
	removed, err := r.store.Del(ctx, storeKey(key))
	if err != nil {
		return fmt.Errorf("delete url %s: %w", key, err)
	}

	if !removed {
		return fmt.Errorf("delete url %s: %w", key, domain.ErrNotFound)
	}

	return nil
}

func validateValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("url value is required: %w", domain.ErrInvalidInput)
	}

	return nil
}
