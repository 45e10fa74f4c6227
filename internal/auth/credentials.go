package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/store"
)

const userPrefix = "user:"

// Credential is a username and the hash of its password.
type Credential struct {
	Username     string
	PasswordHash string
}

// CredentialStore manages the user:<name> namespace. Credentials are never
// changed in place; delete and recreate to change a password.
type CredentialStore struct {
	store  store.KeyStore
	hasher Hasher
}

// NewCredentialStore creates a new credential store.
func NewCredentialStore(s store.KeyStore, hasher Hasher) *CredentialStore {
	return &CredentialStore{
		store:  s,
		hasher: hasher,
	}
}

// Create hashes password and stores it for username.
func (c *CredentialStore) Create(ctx context.Context, username, password string) (*Credential, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	stored, err := c.store.SetNX(ctx, userPrefix+username, hash)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}

	if !stored {
		return nil, fmt.Errorf("create user %s: %w", username, domain.ErrConflict)
	}

	return &Credential{Username: username, PasswordHash: hash}, nil
}

// Delete removes username.
func (c *CredentialStore) Delete(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}

	removed, err := c.store.Del(ctx, userPrefix+username)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}

	if !removed {
		return fmt.Errorf("delete user %s: %w", username, domain.ErrNotFound)
	}

	return nil
}

// Find returns the password hash stored for username. ok is false when the
// user does not exist.
func (c *CredentialStore) Find(ctx context.Context, username string) (hash string, ok bool, err error) {
	hash, err = c.store.Get(ctx, userPrefix+username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("find user %s: %w", username, err)
	}

	return hash, true, nil
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}

	if password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrInvalidInput)
	}

	return nil
}
