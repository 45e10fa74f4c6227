package handlers

import (
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/version"
	"go.uber.org/zap"
)

var errMissingBody = fmt.Errorf("request body is required: %w", domain.ErrInvalidInput)

// lookupError is apiError for operations addressing a key that may be absent.
// A miss becomes a 404 carrying msg.
func lookupError(logger *zap.Logger, err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound(msg)
	}

	return apiError(logger, err)
}

// apiError translates a domain error into its HTTP problem. Failures that are
// not caller mistakes are logged and hidden behind a generic 5xx message.
func apiError(logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.Error401Unauthorized("invalid credentials")
	case errors.Is(err, domain.ErrMethodVersionNotFound):
		return huma.NewError(version.Status, "method version not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("key store unavailable", zap.Error(err))

		return huma.Error503ServiceUnavailable("key store unavailable")
	default:
		logger.Error("request failed", zap.Error(err))

		return huma.Error500InternalServerError("internal server error")
	}
}
