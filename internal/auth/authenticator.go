package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/metrics"
)

// Issuer is written to and required in every token.
const Issuer = "shortipy"

// DefaultTokenTTL is used when no TTL is configured.
const DefaultTokenTTL = time.Hour

var errEmptySecret = errors.New("token signing secret must not be empty")

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// AccessToken is a signed bearer credential. It is never persisted.
type AccessToken struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}

// CredentialFinder looks up stored password hashes.
type CredentialFinder interface {
	Find(ctx context.Context, username string) (hash string, ok bool, err error)
}

// Authenticator verifies credentials and issues and validates bearer tokens.
// Validation is stateless, so a token stays valid until it expires.
type Authenticator struct {
	credentials CredentialFinder
	hasher      Hasher
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

// NewAuthenticator creates a new authenticator signing tokens with secret.
func NewAuthenticator(credentials CredentialFinder, hasher Hasher, secret []byte, ttl time.Duration) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Authenticator{
		credentials: credentials,
		hasher:      hasher,
		secret:      secret,
		ttl:         ttl,
		now:         time.Now,
	}, nil
}

// WithClock replaces the time source. Intended for tests.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now

	return a
}

// Login checks username and password and mints a token for username.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, ok, err := a.credentials.Find(ctx, username)
	if err != nil {
		return nil, err
	}

	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "unknown_user").Inc()

		return nil, fmt.Errorf("login %s: %w", username, domain.ErrUnauthorized)
	}

	if err := a.hasher.Verify(hash, password); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "bad_password").Inc()

		return nil, fmt.Errorf("login %s: %w", username, err)
	}

	token, err := a.issue(username)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()

	return token, nil
}

func (a *Authenticator) issue(subject string) (*AccessToken, error) {
	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AccessToken{
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Token:     signed,
	}, nil
}

// Authorize validates a raw token and returns its subject.
func (a *Authenticator) Authorize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "missing").Inc()

		return "", fmt.Errorf("missing token: %w", domain.ErrUnauthorized)
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(_ *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "invalid").Inc()

		return "", fmt.Errorf("invalid token: %w: %w", domain.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "invalid").Inc()

		return "", fmt.Errorf("token has no subject: %w", domain.ErrUnauthorized)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("token", "ok").Inc()

	return claims.Subject, nil
}
