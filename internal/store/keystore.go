package store

import "context"

// Entry is a single key/value pair returned by an enumeration.
type Entry struct {
	Key   string
	Value string
}

// KeyStore is the key-value service the registry and credential store sit on.
//
// Absent keys are reported with domain.ErrNotFound. Any failure of the service
// itself is wrapped with domain.ErrStoreUnavailable so callers never retry it.
type KeyStore interface {
	Get(ctx context.Context, key string) (string, error)

	// Set stores value unconditionally.
	Set(ctx context.Context, key, value string) error

	// SetNX stores value only if key is absent. It reports whether the write happened.
	SetNX(ctx context.Context, key, value string) (bool, error)

	// SetXX replaces value only if key is present. It reports whether the write happened.
	SetXX(ctx context.Context, key, value string) (bool, error)

	// Del removes key and reports whether it existed.
	Del(ctx context.Context, key string) (bool, error)

	// Scan enumerates every entry whose key starts with prefix, in store order.
	Scan(ctx context.Context, prefix string) ([]Entry, error)

	Ping(ctx context.Context) error
}
