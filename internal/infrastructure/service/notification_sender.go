package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/pkg/circuitbreaker"
	"github.com/worklink-hub/worklink-platform/pkg/retry"
)

// LogSender implements notification.Sender by writing structured log
// entries. It stands in for an external channel (email, push) and is the
// default sender in development and tests.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the notification.
func (s *LogSender) Send(_ context.Context, n *notification.Notification) error {
	s.logger.Info().
		Str("notification_id", n.ID).
		Str("recipient_id", n.RecipientID).
		Str("type", string(n.Type)).
		Str("title", n.Title).
		Msg("notification delivered")
	return nil
}

// ResilientSender wraps another sender with retry and a circuit breaker.
// Delivery stays best-effort: the caller still treats errors as
// non-fatal, but transient channel hiccups are absorbed here and a dead
// channel stops being hammered.
type ResilientSender struct {
	inner   notification.Sender
	breaker *circuitbreaker.CircuitBreaker
	logger  zerolog.Logger
}

// NewResilientSender wraps the inner sender.
func NewResilientSender(inner notification.Sender, logger zerolog.Logger) *ResilientSender {
	breaker := circuitbreaker.New("notification-sender",
		circuitbreaker.WithOnStateChange(func(name string, from, to circuitbreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		}),
	)

	return &ResilientSender{
		inner:   inner,
		breaker: breaker,
		logger:  logger,
	}
}

// Send delivers the notification through the breaker, retrying transient
// failures with backoff.
func (s *ResilientSender) Send(ctx context.Context, n *notification.Notification) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, func(ctx context.Context) error {
			return s.inner.Send(ctx, n)
		}, retry.WithOnRetry(func(attempt int, err error) {
			s.logger.Warn().
				Str("notification_id", n.ID).
				Int("attempt", attempt).
				Err(err).
				Msg("notification delivery retry")
		}))
	})
}
