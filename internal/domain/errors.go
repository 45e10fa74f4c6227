// Package domain holds the error taxonomy shared by the registry, the credential
// store and the authenticator. Handlers translate these 1:1 into HTTP statuses.
package domain

import "errors"

var (
	// ErrInvalidInput reports a malformed or empty caller-supplied field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound reports that the referenced key or username is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a duplicate username on create.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized reports missing or invalid credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMethodVersionNotFound reports an API version no operation revision serves.
	ErrMethodVersionNotFound = errors.New("method version not found")

	// ErrStoreUnavailable wraps any failure of the key-value service itself.
	ErrStoreUnavailable = errors.New("key store unavailable")

	// ErrKeySpaceExhausted is returned when key allocation hits its attempt cap.
	ErrKeySpaceExhausted = errors.New("key space exhausted")
)
