package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortipy/internal/messaging"
)

// Publishers bundles the typed publish functions used by the HTTP handlers.
type Publishers struct {
	URLChanged  messaging.Publish[URLChangedEvent]
	URLAccessed messaging.Publish[URLAccessedEvent]
}

// NewPublishers binds one publish function per topic to publisher.
func NewPublishers(publisher message.Publisher) Publishers {
	return Publishers{
		URLChanged:  messaging.NewPublishFunc[URLChangedEvent](publisher, TopicURLChanged),
		URLAccessed: messaging.NewPublishFunc[URLAccessedEvent](publisher, TopicURLAccessed),
	}
}

// NoopPublishers drops every event. Used when analytics is disabled.
func NoopPublishers() Publishers {
	return Publishers{
		URLChanged:  messaging.NoopPublish[URLChangedEvent](),
		URLAccessed: messaging.NoopPublish[URLAccessedEvent](),
	}
}
