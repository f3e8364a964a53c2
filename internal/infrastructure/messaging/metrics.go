package messaging

import (
	"sync"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// EventBusMetrics tracks publish and handler counters for the bus.
type EventBusMetrics struct {
	mu sync.RWMutex

	publishedByType  map[shared.EventType]int64
	handlerExecs     int64
	handlerSuccesses int64
	handlerFailures  int64
	handlerDuration  time.Duration
}

// NewEventBusMetrics creates a new metrics tracker.
func NewEventBusMetrics() *EventBusMetrics {
	return &EventBusMetrics{
		publishedByType: make(map[shared.EventType]int64),
	}
}

// RecordPublish records a published event.
func (m *EventBusMetrics) RecordPublish(eventType shared.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.publishedByType[eventType]++
}

// RecordHandlerExecution records a handler execution.
func (m *EventBusMetrics) RecordHandlerExecution(eventType shared.EventType, duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlerExecs++
	m.handlerDuration += duration
	if success {
		m.handlerSuccesses++
	} else {
		m.handlerFailures++
	}
}

// Snapshot returns a point-in-time copy of the counters.
func (m *EventBusMetrics) Snapshot() EventBusMetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var totalPublished int64
	for _, v := range m.publishedByType {
		totalPublished += v
	}

	avgDuration := time.Duration(0)
	successRate := 1.0
	if m.handlerExecs > 0 {
		avgDuration = m.handlerDuration / time.Duration(m.handlerExecs)
		successRate = float64(m.handlerSuccesses) / float64(m.handlerExecs)
	}

	return EventBusMetricsSnapshot{
		TotalPublished:         totalPublished,
		TotalHandlerExecs:      m.handlerExecs,
		HandlerFailures:        m.handlerFailures,
		HandlerSuccessRate:     successRate,
		AverageHandlerDuration: avgDuration,
	}
}

// EventBusMetricsSnapshot is a point-in-time snapshot of bus metrics.
type EventBusMetricsSnapshot struct {
	TotalPublished         int64
	TotalHandlerExecs      int64
	HandlerFailures        int64
	HandlerSuccessRate     float64
	AverageHandlerDuration time.Duration
}
