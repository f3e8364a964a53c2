package messaging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func syncBus() *InMemoryEventBus {
	return NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:     false,
		EnableMetrics: true,
	})
}

func TestInMemoryEventBus_PublishToTypedHandler(t *testing.T) {
	bus := syncBus()

	var received []shared.Event
	err := bus.Subscribe(shared.EventApplicationSubmitted, func(event shared.Event) error {
		received = append(received, event)
		return nil
	})
	require.NoError(t, err)

	// A handler on another type stays silent.
	var wrongType int
	err = bus.Subscribe(shared.EventReviewSubmitted, func(shared.Event) error {
		wrongType++
		return nil
	})
	require.NoError(t, err)

	event := shared.NewApplicationSubmittedEvent("app-1", "proj-1", "student-1", "company-1", 1000)
	require.NoError(t, bus.Publish(event))

	require.Len(t, received, 1)
	assert.Equal(t, "app-1", received[0].AggregateID())
	assert.Zero(t, wrongType)
}

func TestInMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := syncBus()

	var all int
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		all++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewApplicationSubmittedEvent("a", "p", "s", "c", 0)))
	require.NoError(t, bus.Publish(shared.NewReviewSubmittedEvent("r", "a", "s", "c", 5, false)))

	assert.Equal(t, 2, all)
}

func TestInMemoryEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := syncBus()

	var second int
	require.NoError(t, bus.Subscribe(shared.EventPaymentRecorded, func(shared.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.Subscribe(shared.EventPaymentRecorded, func(shared.Event) error {
		second++
		return nil
	}))

	// A failing handler is logged, not propagated, and does not starve
	// the remaining handlers.
	require.NoError(t, bus.Publish(shared.NewPaymentRecordedEvent("app-1", "student-1", 500)))
	assert.Equal(t, 1, second)

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(2), snap.TotalHandlerExecs)
	assert.Equal(t, int64(1), snap.HandlerFailures)
}

func TestInMemoryEventBus_AsyncDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 4,
	})

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		received int
	)
	wg.Add(10)
	require.NoError(t, bus.Subscribe(shared.EventApplicationSubmitted, func(shared.Event) error {
		mu.Lock()
		received++
		mu.Unlock()
		wg.Done()
		return nil
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(shared.NewApplicationSubmittedEvent("a", "p", "s", "c", 0)))
	}

	wg.Wait()
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, received)
}

func TestInMemoryEventBus_Closed(t *testing.T) {
	bus := syncBus()
	require.NoError(t, bus.Close())

	err := bus.Publish(shared.NewApplicationSubmittedEvent("a", "p", "s", "c", 0))
	require.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventApplicationSubmitted, func(shared.Event) error { return nil })
	require.ErrorIs(t, err, ErrEventBusClosed)

	// Closing twice is harmless.
	require.NoError(t, bus.Close())
}

func TestInMemoryEventBus_NilArguments(t *testing.T) {
	bus := syncBus()

	require.Error(t, bus.Subscribe(shared.EventApplicationSubmitted, nil))
	require.Error(t, bus.SubscribeAll(nil))
	require.Error(t, bus.Publish(nil))
}
