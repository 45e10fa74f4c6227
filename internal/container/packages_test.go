package container_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortipy/internal/analytics"
	"github.com/serroba/shortipy/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInjector(t *testing.T, configure func(*container.Options)) *do.Injector {
	t.Helper()

	mr := miniredis.RunT(t)

	opts := validOptions()
	opts.RedisAddr = mr.Addr()
	opts.Analytics = false
	opts.RateLimit = false

	if configure != nil {
		configure(opts)
	}

	injector := do.New()
	do.ProvideValue(injector, opts)

	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.KeyStorePackage(injector)
	container.ShortenerPackage(injector)
	container.AuthPackage(injector)
	container.RateLimitPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)

	t.Cleanup(func() { _ = injector.Shutdown() })

	return injector
}

func serve(t *testing.T, injector *do.Injector, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	_, err := do.Invoke[huma.API](injector)
	require.NoError(t, err)

	router := do.MustInvoke[*chi.Mux](injector)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestHTTPPackage(t *testing.T) {
	t.Run("serves health", func(t *testing.T) {
		rec := serve(t, newInjector(t, nil), http.MethodGet, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"keystore"`)
	})

	t.Run("serves metrics", func(t *testing.T) {
		rec := serve(t, newInjector(t, nil), http.MethodGet, "/metrics")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("an empty registry lists as not found", func(t *testing.T) {
		rec := serve(t, newInjector(t, nil), http.MethodGet, "/api/urls/")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		rec := serve(t, newInjector(t, nil), http.MethodPost, "/api/urls/")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rate limited api still serves", func(t *testing.T) {
		injector := newInjector(t, func(o *container.Options) { o.RateLimit = true })

		rec := serve(t, injector, http.MethodGet, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPublisherGroupPackage(t *testing.T) {
	t.Run("disabled analytics never opens a publisher", func(t *testing.T) {
		injector := newInjector(t, nil)

		publishers, err := do.Invoke[analytics.Publishers](injector)

		require.NoError(t, err)
		require.NoError(t, publishers.URLAccessed(t.Context(), &analytics.URLAccessedEvent{Key: "abcdef"}))
	})
}

func TestAuthPackage(t *testing.T) {
	t.Run("invalid lifetime fails the provider", func(t *testing.T) {
		injector := newInjector(t, func(o *container.Options) { o.TokenTTL = "never" })

		_, err := do.Invoke[huma.API](injector)

		require.Error(t, err)
	})
}
