package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/serroba/shortipy/internal/analytics"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/metrics"
	"github.com/serroba/shortipy/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles the /api/urls/ resource and short key redirects.
type URLHandler struct {
	registry URLRegistry
	baseURL  string
	events   analytics.Publishers
	logger   *zap.Logger
}

// NewURLHandler creates a new URL handler. baseURL prefixes the self links
// and may be empty to produce relative links.
func NewURLHandler(
	registry URLRegistry,
	baseURL string,
	events analytics.Publishers,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		registry: registry,
		baseURL:  baseURL,
		events:   events,
		logger:   logger,
	}
}

func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	mappings, err := h.registry.List(ctx)
	if err != nil {
		return nil, lookupError(h.logger, err, "no urls found")
	}

	resp := &ListURLsResponse{Body: make([]URLBody, 0, len(mappings))}
	for _, m := range mappings {
		resp.Body = append(resp.Body, h.body(m))
	}

	return resp, nil
}

func (h *URLHandler) GetURL(ctx context.Context, req *URLKeyRequest) (*URLResponse, error) {
	mapping, err := h.registry.Get(ctx, shortener.Key(req.Key))
	if err != nil {
		return nil, lookupError(h.logger, err, "url not found")
	}

	return &URLResponse{Body: h.body(*mapping)}, nil
}

func (h *URLHandler) CreateURL(ctx context.Context, req *CreateURLRequest) (*CreateURLResponse, error) {
	if req.Body == nil {
		return nil, apiError(h.logger, errMissingBody)
	}

	mapping, err := h.registry.Create(ctx, req.Body.Value)
	if err != nil {
		return nil, apiError(h.logger, err)
	}

	h.publishChange(ctx, analytics.ActionCreated, mapping.Key, mapping.Value)

	resp := &CreateURLResponse{Body: h.body(*mapping)}
	resp.Location = resp.Body.Links.Self

	return resp, nil
}

func (h *URLHandler) UpdateURL(ctx context.Context, req *UpdateURLRequest) (*URLResponse, error) {
	if req.Body == nil {
		return nil, apiError(h.logger, errMissingBody)
	}

	mapping, err := h.registry.Update(ctx, shortener.Key(req.Key), req.Body.Value)
	if err != nil {
		return nil, lookupError(h.logger, err, "url not found")
	}

	h.publishChange(ctx, analytics.ActionUpdated, mapping.Key, mapping.Value)

	return &URLResponse{Body: h.body(*mapping)}, nil
}

func (h *URLHandler) DeleteURL(ctx context.Context, req *URLKeyRequest) (*struct{}, error) {
	key := shortener.Key(req.Key)

	if err := h.registry.Delete(ctx, key); err != nil {
		return nil, lookupError(h.logger, err, "url not found")
	}

	h.publishChange(ctx, analytics.ActionDeleted, key, "")

	return nil, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	mapping, err := h.registry.Get(ctx, shortener.Key(req.Key))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.RedirectsTotal.WithLabelValues("error").Inc()
		}

		return nil, lookupError(h.logger, err, "short url not found")
	}

	metrics.RedirectsTotal.WithLabelValues("found").Inc()

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLAccessedEvent{
		Key:        req.Key,
		AccessedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.events.URLAccessed(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: mapping.Value,
	}, nil
}

func (h *URLHandler) publishChange(ctx context.Context, action analytics.Action, key shortener.Key, value string) {
	username, _ := auth.SubjectFromContext(ctx)
	meta := RequestMetaFromContext(ctx)

	event := &analytics.URLChangedEvent{
		Action:    action,
		Key:       string(key),
		Value:     value,
		Username:  username,
		ChangedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.events.URLChanged(ctx, event); err != nil {
		h.logger.Error("failed to publish change event",
			zap.String("action", string(action)),
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}
}

func (h *URLHandler) body(m shortener.URLMapping) URLBody {
	return URLBody{
		Key:   string(m.Key),
		Value: m.Value,
		Links: URLLinks{Self: h.baseURL + URLsPath + string(m.Key)},
	}
}
