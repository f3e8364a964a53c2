// Package eventhandler contains the domain event subscribers: notification
// fan-out on observable lifecycle transitions and rating cache
// invalidation. Handlers run after the triggering transaction committed;
// their failures are logged and never propagate back to the operation
// that produced the event.
package eventhandler

import (
	"context"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
)

// IDGenerator generates unique identifiers for notifications.
type IDGenerator interface {
	GenerateID() string
}

// RatingInvalidator drops cached rating statistics when the eligible
// review set of a reviewee changes. Implemented by the Redis rating cache.
type RatingInvalidator interface {
	Invalidate(ctx context.Context, revieweeID string, kind review.Kind) error
}
