package auth

import (
	"errors"
	"fmt"

	"github.com/serroba/shortipy/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into storable hashes and checks candidates against them.
type Hasher interface {
	Hash(password string) (string, error)

	// Verify returns domain.ErrUnauthorized when password does not match hash.
	Verify(hash, password string) error
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher. A zero cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrUnauthorized
	}

	return fmt.Errorf("verify password: %w", err)
}
