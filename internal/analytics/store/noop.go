package store

import (
	"context"

	"github.com/serroba/shortipy/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveURLChanged(_ context.Context, event *analytics.URLChangedEvent) error {
	n.logger.Info("url changed event received",
		zap.String("action", string(event.Action)),
		zap.String("key", event.Key),
		zap.String("username", event.Username),
		zap.Time("changedAt", event.ChangedAt),
	)

	return nil
}

func (n *Noop) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	n.logger.Info("url accessed event received",
		zap.String("key", event.Key),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}
