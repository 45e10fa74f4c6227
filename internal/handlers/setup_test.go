package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/shortipy/internal/analytics"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/handlers"
	"github.com/serroba/shortipy/internal/middleware"
	"github.com/serroba/shortipy/internal/shortener"
	"github.com/serroba/shortipy/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const baseURL = "http://localhost:8888"

// recorder captures published analytics events.
type recorder struct {
	mu       sync.Mutex
	changed  []analytics.URLChangedEvent
	accessed []analytics.URLAccessedEvent
}

func (r *recorder) publishers() analytics.Publishers {
	return analytics.Publishers{
		URLChanged: func(_ context.Context, e *analytics.URLChangedEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.changed = append(r.changed, *e)

			return nil
		},
		URLAccessed: func(_ context.Context, e *analytics.URLAccessedEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.accessed = append(r.accessed, *e)

			return nil
		},
	}
}

type server struct {
	api      humatest.TestAPI
	store    *store.MemoryStore
	registry *shortener.Registry
	events   *recorder
	token    string
}

// newServer wires the real registry, credential store and authenticator on a
// memory store, with user "test" / "test" already created and logged in.
func newServer(t *testing.T) *server {
	t.Helper()

	ctx := context.Background()
	s := store.NewMemoryStore()

	gen, err := shortener.NewKeyGenerator()
	require.NoError(t, err)

	registry := shortener.NewRegistry(s, shortener.NewAllocator(s, gen, 0))

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	credentials := auth.NewCredentialStore(s, hasher)
	_, err = credentials.Create(ctx, "test", "test")
	require.NoError(t, err)

	authenticator, err := auth.NewAuthenticator(credentials, hasher, []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	token, err := authenticator.Login(ctx, "test", "test")
	require.NoError(t, err)

	events := &recorder{}
	logger := zap.NewNop()

	_, api := humatest.New(t, handlers.APIConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))
	api.UseMiddleware(middleware.Version(api, logger))
	api.UseMiddleware(middleware.Authenticate(api, authenticator, logger))

	handlers.RegisterRoutes(
		api,
		handlers.NewURLHandler(registry, baseURL, events.publishers(), logger),
		handlers.NewAuthHandler(authenticator, logger),
	)

	return &server{
		api:      api,
		store:    s,
		registry: registry,
		events:   events,
		token:    token.Token,
	}
}

func (s *server) bearer() string {
	return "Authorization: Bearer " + s.token
}
