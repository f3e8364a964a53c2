package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON REVIEW RESPONSE HANDLER
// Tells the review's author that the reviewee responded.
// ═══════════════════════════════════════════════════════════════════════════

// OnReviewResponseHandler notifies the author about the response.
type OnReviewResponseHandler struct {
	sender notification.Sender
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewOnReviewResponseHandler creates a new OnReviewResponseHandler.
func NewOnReviewResponseHandler(sender notification.Sender, idGen IDGenerator, logger zerolog.Logger) *OnReviewResponseHandler {
	return &OnReviewResponseHandler{
		sender: sender,
		idGen:  idGen,
		logger: logger.With().Str("handler", "on_review_response").Logger(),
	}
}

// Handle processes the review response added event.
func (h *OnReviewResponseHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.ReviewResponseAddedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	n := notification.ReviewResponse(h.idGen.GenerateID(), e.AuthorID, e.ReviewID)
	if err := h.sender.Send(context.Background(), n); err != nil {
		h.logger.Error().Err(err).Str("review_id", e.ReviewID).Msg("notification delivery failed")
		return fmt.Errorf("send review response notification: %w", err)
	}
	return nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnReviewResponseHandler) EventType() shared.EventType {
	return shared.EventReviewResponseAdded
}
