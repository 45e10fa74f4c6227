package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/ratelimit"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	keystore Checker
}

// NewHandler creates a new health handler reporting on the key store.
func NewHandler(keystore Checker) *Handler {
	return &Handler{keystore: keystore}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status   string `doc:"ok or degraded"       json:"status"`
		KeyStore string `doc:"healthy or unhealthy" json:"keystore"`
	}
}

// Check reports whether the key store answers. The endpoint itself always
// responds 200 so a degraded store does not take the process out of rotation.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.keystore.Ping(ctx); err != nil {
		resp.Body.KeyStore = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.KeyStore = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
