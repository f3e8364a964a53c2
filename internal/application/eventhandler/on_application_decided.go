package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON APPLICATION DECIDED HANDLER
// Tells the applicant whether the company accepted or rejected the
// application. One handler serves both branches of the decision.
// ═══════════════════════════════════════════════════════════════════════════

// OnApplicationDecidedHandler notifies the student about the decision.
type OnApplicationDecidedHandler struct {
	sender notification.Sender
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewOnApplicationDecidedHandler creates a new OnApplicationDecidedHandler.
func NewOnApplicationDecidedHandler(sender notification.Sender, idGen IDGenerator, logger zerolog.Logger) *OnApplicationDecidedHandler {
	return &OnApplicationDecidedHandler{
		sender: sender,
		idGen:  idGen,
		logger: logger.With().Str("handler", "on_application_decided").Logger(),
	}
}

// Handle processes the application decided event.
func (h *OnApplicationDecidedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.ApplicationDecidedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	n := notification.ApplicationDecided(h.idGen.GenerateID(), e.StudentID, e.ProjectTitle, e.Accepted, e.ApplicationID)
	if err := h.sender.Send(context.Background(), n); err != nil {
		h.logger.Error().Err(err).Str("application_id", e.ApplicationID).Msg("notification delivery failed")
		return fmt.Errorf("send application decided notification: %w", err)
	}
	return nil
}

// EventTypes returns the event types this handler subscribes to.
func (h *OnApplicationDecidedHandler) EventTypes() []shared.EventType {
	return []shared.EventType{shared.EventApplicationAccepted, shared.EventApplicationRejected}
}
