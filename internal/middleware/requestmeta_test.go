package middleware_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestMetaAPI(t *testing.T) func(path string, args ...any) map[string]string {
	t.Helper()

	api := newTestAPI(t, func(api huma.API) []func(huma.Context, func(huma.Context)) {
		return []func(huma.Context, func(huma.Context)){middleware.RequestMeta(api)}
	})

	return func(path string, args ...any) map[string]string {
		resp := api.Get(path, args...)
		require.Equal(t, http.StatusOK, resp.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

		return body
	}
}

func TestRequestMeta(t *testing.T) {
	get := requestMetaAPI(t)

	t.Run("extracts user-agent and referrer", func(t *testing.T) {
		body := get("/echo", "User-Agent: TestAgent/1.0", "Referer: https://ref.example")

		assert.Equal(t, "TestAgent/1.0", body["user_agent"])
		assert.Equal(t, "https://ref.example", body["referrer"])
	})

	t.Run("uses the first X-Forwarded-For entry", func(t *testing.T) {
		body := get("/echo", "X-Forwarded-For: 10.0.0.1, 10.0.0.2", "X-Real-IP: 10.9.9.9")

		assert.Equal(t, "10.0.0.1", body["client_ip"])
	})

	t.Run("uses X-Real-IP when X-Forwarded-For is absent", func(t *testing.T) {
		body := get("/echo", "X-Real-IP: 10.9.9.9")

		assert.Equal(t, "10.9.9.9", body["client_ip"])
	})

	t.Run("falls back to the remote address without port", func(t *testing.T) {
		body := get("/echo")

		assert.NotEmpty(t, body["client_ip"])
		assert.NotContains(t, body["client_ip"], ":")
	})
}
