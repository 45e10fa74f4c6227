package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/serroba/shortipy/internal/analytics"
	"github.com/serroba/shortipy/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	mu       sync.Mutex
	changed  []analytics.URLChangedEvent
	accessed []analytics.URLAccessedEvent
	saved    chan struct{}
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(chan struct{}, 10)}
}

func (m *mockStore) SaveURLChanged(_ context.Context, event *analytics.URLChangedEvent) error {
	defer func() { m.saved <- struct{}{} }()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.changed = append(m.changed, *event)

	return nil
}

func (m *mockStore) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	defer func() { m.saved <- struct{}{} }()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessed = append(m.accessed, *event)

	return nil
}

func (m *mockStore) wait(t *testing.T) {
	t.Helper()

	select {
	case <-m.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

// newBus returns an in-process pub/sub and a started consumer group feeding store.
func newBus(t *testing.T, store analytics.Store) analytics.Publishers {
	t.Helper()

	logger := zap.NewNop()
	bus := gochannel.NewGoChannel(gochannel.Config{}, messaging.NewZapLogger(logger))

	group := messaging.NewConsumerGroup(bus, logger)
	group.Add(analytics.NewConsumers(bus, store, logger)...)

	require.NoError(t, group.Start(context.Background()))
	t.Cleanup(func() { _ = group.Shutdown() })

	return analytics.NewPublishers(bus)
}

func TestConsumers(t *testing.T) {
	ctx := context.Background()

	t.Run("persists url changes", func(t *testing.T) {
		store := newMockStore()
		publishers := newBus(t, store)

		err := publishers.URLChanged(ctx, &analytics.URLChangedEvent{
			Action:    analytics.ActionCreated,
			Key:       "abcdef",
			Value:     "https://example.com",
			Username:  "test",
			ChangedAt: time.Now(),
		})
		require.NoError(t, err)

		store.wait(t)

		store.mu.Lock()
		defer store.mu.Unlock()

		require.Len(t, store.changed, 1)
		assert.Equal(t, analytics.ActionCreated, store.changed[0].Action)
		assert.Equal(t, "abcdef", store.changed[0].Key)
		assert.Equal(t, "test", store.changed[0].Username)
	})

	t.Run("persists url accesses", func(t *testing.T) {
		store := newMockStore()
		publishers := newBus(t, store)

		err := publishers.URLAccessed(ctx, &analytics.URLAccessedEvent{
			Key:        "abcdef",
			AccessedAt: time.Now(),
			Referrer:   "https://ref.example",
		})
		require.NoError(t, err)

		store.wait(t)

		store.mu.Lock()
		defer store.mu.Unlock()

		require.Len(t, store.accessed, 1)
		assert.Equal(t, "https://ref.example", store.accessed[0].Referrer)
		assert.Empty(t, store.changed)
	})
}

func TestNoopPublishers(t *testing.T) {
	publishers := analytics.NoopPublishers()

	require.NoError(t, publishers.URLChanged(context.Background(), &analytics.URLChangedEvent{Key: "abcdef"}))
	require.NoError(t, publishers.URLAccessed(context.Background(), &analytics.URLAccessedEvent{Key: "abcdef"}))
}
