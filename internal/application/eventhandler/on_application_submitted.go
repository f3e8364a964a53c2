package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON APPLICATION SUBMITTED HANDLER
// Tells the project owner that a new application arrived.
// ═══════════════════════════════════════════════════════════════════════════

// OnApplicationSubmittedHandler notifies the company about a new application.
type OnApplicationSubmittedHandler struct {
	sender notification.Sender
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewOnApplicationSubmittedHandler creates a new OnApplicationSubmittedHandler.
func NewOnApplicationSubmittedHandler(sender notification.Sender, idGen IDGenerator, logger zerolog.Logger) *OnApplicationSubmittedHandler {
	return &OnApplicationSubmittedHandler{
		sender: sender,
		idGen:  idGen,
		logger: logger.With().Str("handler", "on_application_submitted").Logger(),
	}
}

// Handle processes the application submitted event.
func (h *OnApplicationSubmittedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.ApplicationSubmittedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	n := notification.ApplicationSubmitted(h.idGen.GenerateID(), e.CompanyID, e.ApplicationID, e.BidAmount)
	if err := h.sender.Send(context.Background(), n); err != nil {
		h.logger.Error().Err(err).Str("application_id", e.ApplicationID).Msg("notification delivery failed")
		return fmt.Errorf("send application submitted notification: %w", err)
	}
	return nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnApplicationSubmittedHandler) EventType() shared.EventType {
	return shared.EventApplicationSubmitted
}
