package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveURLChanged(ctx context.Context, event *URLChangedEvent) error
	SaveURLAccessed(ctx context.Context, event *URLAccessedEvent) error
}
