package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON PAYMENT RECORDED HANDLER
// Tells the student that payment for the completed work was recorded.
// ═══════════════════════════════════════════════════════════════════════════

// OnPaymentRecordedHandler notifies the student about the payment.
type OnPaymentRecordedHandler struct {
	sender notification.Sender
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewOnPaymentRecordedHandler creates a new OnPaymentRecordedHandler.
func NewOnPaymentRecordedHandler(sender notification.Sender, idGen IDGenerator, logger zerolog.Logger) *OnPaymentRecordedHandler {
	return &OnPaymentRecordedHandler{
		sender: sender,
		idGen:  idGen,
		logger: logger.With().Str("handler", "on_payment_recorded").Logger(),
	}
}

// Handle processes the payment recorded event.
func (h *OnPaymentRecordedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.PaymentRecordedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	n := notification.PaymentReceived(h.idGen.GenerateID(), e.StudentID, e.Amount, e.ApplicationID)
	if err := h.sender.Send(context.Background(), n); err != nil {
		h.logger.Error().Err(err).Str("application_id", e.ApplicationID).Msg("notification delivery failed")
		return fmt.Errorf("send payment notification: %w", err)
	}
	return nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnPaymentRecordedHandler) EventType() shared.EventType {
	return shared.EventPaymentRecorded
}
