package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON REVIEW SUBMITTED HANDLER
// Tells the reviewee a new review arrived and, when the review is live on
// arrival, drops the reviewee's cached rating statistics.
// ═══════════════════════════════════════════════════════════════════════════

// OnReviewSubmittedHandler notifies the reviewee and invalidates the cache.
type OnReviewSubmittedHandler struct {
	reviewRepo  review.Repository
	companyRepo account.CompanyRepository
	studentRepo account.StudentRepository
	sender      notification.Sender
	idGen       IDGenerator
	invalidator RatingInvalidator
	logger      zerolog.Logger
}

// NewOnReviewSubmittedHandler creates a new OnReviewSubmittedHandler.
// The invalidator is optional; pass nil when no cache is configured.
func NewOnReviewSubmittedHandler(
	reviewRepo review.Repository,
	companyRepo account.CompanyRepository,
	studentRepo account.StudentRepository,
	sender notification.Sender,
	idGen IDGenerator,
	invalidator RatingInvalidator,
	logger zerolog.Logger,
) *OnReviewSubmittedHandler {
	return &OnReviewSubmittedHandler{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
		studentRepo: studentRepo,
		sender:      sender,
		idGen:       idGen,
		invalidator: invalidator,
		logger:      logger.With().Str("handler", "on_review_submitted").Logger(),
	}
}

// Handle processes the review submitted event.
func (h *OnReviewSubmittedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.ReviewSubmittedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	ctx := context.Background()

	rv, err := h.reviewRepo.GetByID(ctx, e.ReviewID)
	if err != nil {
		h.logger.Error().Err(err).Str("review_id", e.ReviewID).Msg("review lookup failed")
		return fmt.Errorf("get review: %w", err)
	}

	if rv.IsEligible() && h.invalidator != nil {
		if err := h.invalidator.Invalidate(ctx, rv.RevieweeID, rv.Kind); err != nil {
			h.logger.Warn().Err(err).Str("reviewee_id", rv.RevieweeID).Msg("rating cache invalidation failed")
		}
	}

	authorName, err := h.authorName(ctx, rv)
	if err != nil {
		h.logger.Warn().Err(err).Str("review_id", rv.ID).Msg("author lookup failed")
		authorName = ""
	}

	n := notification.ReviewReceived(h.idGen.GenerateID(), rv.RevieweeID, authorName, rv.Anonymous || authorName == "", rv.ID)
	if err := h.sender.Send(ctx, n); err != nil {
		h.logger.Error().Err(err).Str("review_id", rv.ID).Msg("notification delivery failed")
		return fmt.Errorf("send review received notification: %w", err)
	}
	return nil
}

// authorName resolves the author's display name. Anonymous reviews never
// expose the author.
func (h *OnReviewSubmittedHandler) authorName(ctx context.Context, rv *review.Review) (string, error) {
	if rv.Anonymous {
		return "", nil
	}
	if rv.Kind == review.KindCompany {
		student, err := h.studentRepo.GetByID(ctx, rv.AuthorID)
		if err != nil {
			return "", err
		}
		return student.Name, nil
	}
	company, err := h.companyRepo.GetByID(ctx, rv.AuthorID)
	if err != nil {
		return "", err
	}
	return company.Name, nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnReviewSubmittedHandler) EventType() shared.EventType {
	return shared.EventReviewSubmitted
}
