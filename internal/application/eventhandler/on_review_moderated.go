package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON REVIEW MODERATED HANDLER
// Every moderation action may change the reviewee's eligible set, so the
// cached statistics are always dropped. An approval additionally tells
// the author the review went live and tells the reviewee it arrived.
// ═══════════════════════════════════════════════════════════════════════════

// OnReviewModeratedHandler reacts to moderation decisions.
type OnReviewModeratedHandler struct {
	reviewRepo  review.Repository
	sender      notification.Sender
	idGen       IDGenerator
	invalidator RatingInvalidator
	logger      zerolog.Logger
}

// NewOnReviewModeratedHandler creates a new OnReviewModeratedHandler.
// The invalidator is optional; pass nil when no cache is configured.
func NewOnReviewModeratedHandler(
	reviewRepo review.Repository,
	sender notification.Sender,
	idGen IDGenerator,
	invalidator RatingInvalidator,
	logger zerolog.Logger,
) *OnReviewModeratedHandler {
	return &OnReviewModeratedHandler{
		reviewRepo:  reviewRepo,
		sender:      sender,
		idGen:       idGen,
		invalidator: invalidator,
		logger:      logger.With().Str("handler", "on_review_moderated").Logger(),
	}
}

// Handle processes the review moderated event.
func (h *OnReviewModeratedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.ReviewModeratedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	ctx := context.Background()

	if h.invalidator != nil {
		rv, err := h.reviewRepo.GetByID(ctx, e.ReviewID)
		if err != nil {
			h.logger.Warn().Err(err).Str("review_id", e.ReviewID).Msg("review lookup failed")
		} else if err := h.invalidator.Invalidate(ctx, rv.RevieweeID, rv.Kind); err != nil {
			h.logger.Warn().Err(err).Str("reviewee_id", rv.RevieweeID).Msg("rating cache invalidation failed")
		}
	}

	if e.Action != string(review.ActionApprove) {
		return nil
	}

	live := notification.ReviewLive(h.idGen.GenerateID(), e.AuthorID, e.ReviewID)
	if err := h.sender.Send(ctx, live); err != nil {
		h.logger.Error().Err(err).Str("review_id", e.ReviewID).Msg("notification delivery failed")
		return fmt.Errorf("send review live notification: %w", err)
	}

	received := notification.ReviewReceived(h.idGen.GenerateID(), e.RevieweeID, e.AuthorName, e.Anonymous, e.ReviewID)
	if err := h.sender.Send(ctx, received); err != nil {
		h.logger.Error().Err(err).Str("review_id", e.ReviewID).Msg("notification delivery failed")
		return fmt.Errorf("send review received notification: %w", err)
	}
	return nil
}

// EventTypes returns the event types this handler subscribes to.
func (h *OnReviewModeratedHandler) EventTypes() []shared.EventType {
	return []shared.EventType{shared.EventReviewApproved, shared.EventReviewRejected, shared.EventReviewFlagged}
}
