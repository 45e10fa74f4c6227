package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortipy/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumers returns one consumer per analytics topic, each persisting into store.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[URLChangedEvent](subscriber, TopicURLChanged, store.SaveURLChanged, logger),
		messaging.NewConsumer[URLAccessedEvent](subscriber, TopicURLAccessed, store.SaveURLAccessed, logger),
	}
}
