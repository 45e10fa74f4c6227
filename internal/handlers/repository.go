package handlers

import (
	"context"

	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/shortener"
)

// URLRegistry defines the URL operations the handlers depend on.
type URLRegistry interface {
	List(ctx context.Context) ([]shortener.URLMapping, error)
	Get(ctx context.Context, key shortener.Key) (*shortener.URLMapping, error)
	Create(ctx context.Context, value string) (*shortener.URLMapping, error)
	Update(ctx context.Context, key shortener.Key, value string) (*shortener.URLMapping, error)
	Delete(ctx context.Context, key shortener.Key) error
}

// LoginService exchanges credentials for an access token.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*auth.AccessToken, error)
}
