package shortener

import (
	"context"
	"fmt"

	"github.com/jaevor/go-nanoid"
	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/metrics"
	"github.com/serroba/shortipy/internal/store"
)

// DefaultMaxAttempts bounds the allocation loop. With a sparse keyspace the
// expected number of draws is close to one.
const DefaultMaxAttempts = 32

// CodeGenerator returns a fresh candidate key on every call.
type CodeGenerator func() string

// NewKeyGenerator returns a generator drawing KeyLength characters uniformly
// from Alphabet using crypto/rand.
func NewKeyGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, KeyLength)
	if err != nil {
		return nil, fmt.Errorf("key generator: %w", err)
	}

	return CodeGenerator(gen), nil
}

// Allocator turns candidate keys into stored keys, resolving collisions
// against the key store's set-if-absent primitive.
type Allocator struct {
	store       store.KeyStore
	generate    CodeGenerator
	maxAttempts int
}

// NewAllocator creates a new key allocator. A non-positive maxAttempts
// selects DefaultMaxAttempts.
func NewAllocator(s store.KeyStore, generator CodeGenerator, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		store:       s,
		generate:    generator,
		maxAttempts: maxAttempts,
	}
}

// Generate draws a candidate key without touching the store.
func (a *Allocator) Generate() Key {
	return Key(a.generate())
}

// Allocate stores value under a newly drawn key and returns that key.
//
// A taken candidate is discarded and another one drawn. Store failures end the
// loop at once; they are never retried here.
func (a *Allocator) Allocate(ctx context.Context, value string) (Key, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			metrics.KeyAllocationAttempts.Observe(float64(attempt - 1))

			return "", err
		}

		key := a.Generate()

		stored, err := a.store.SetNX(ctx, storeKey(key), value)
		if err != nil {
			metrics.KeyAllocationAttempts.Observe(float64(attempt))

			return "", fmt.Errorf("allocate key: %w", err)
		}

		if stored {
			metrics.KeyAllocationAttempts.Observe(float64(attempt))

			return key, nil
		}

		metrics.KeyCollisionsTotal.Inc()
	}

	metrics.KeyAllocationAttempts.Observe(float64(a.maxAttempts))

	return "", fmt.Errorf("allocate key after %d attempts: %w", a.maxAttempts, domain.ErrKeySpaceExhausted)
}
