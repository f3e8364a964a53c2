package notification

import (
	"context"
)

// Sender is the delivery contract consumed by the notification fan-out.
// Implementations live in infrastructure/service; delivery is best-effort
// and may be retried by the implementation, but errors never propagate to
// the lifecycle operation that produced the notification.
type Sender interface {
	// Send delivers one notification to its recipient.
	Send(ctx context.Context, n *Notification) error
}
