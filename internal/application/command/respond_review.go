package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESPOND TO REVIEW COMMAND
// The reviewee attaches a single public response to an approved review.
// ══════════════════════════════════════════════════════════════════════════════

// RespondToReviewCommand contains the response data.
type RespondToReviewCommand struct {
	// ReviewID is the review being responded to.
	ReviewID string

	// RevieweeID is the caller; it must match the review's reviewee.
	RevieweeID string

	// Text is the response body.
	Text string
}

// Validate validates the command.
func (c RespondToReviewCommand) Validate() error {
	if c.ReviewID == "" {
		return errors.New("respond_review: review_id is required")
	}
	if c.RevieweeID == "" {
		return errors.New("respond_review: reviewee_id is required")
	}
	if c.Text == "" {
		return errors.New("respond_review: text is required")
	}
	return nil
}

// RespondToReviewHandler handles the RespondToReviewCommand.
type RespondToReviewHandler struct {
	uow            UnitOfWork
	eventPublisher shared.EventPublisher
}

// NewRespondToReviewHandler creates a new RespondToReviewHandler.
func NewRespondToReviewHandler(uow UnitOfWork, eventPublisher shared.EventPublisher) *RespondToReviewHandler {
	return &RespondToReviewHandler{
		uow:            uow,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the respond to review command.
func (h *RespondToReviewHandler) Handle(ctx context.Context, cmd RespondToReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("review", "Respond", shared.ErrValidation, err.Error())
	}

	var event shared.ReviewResponseAddedEvent

	err := h.uow.Do(ctx, func(r TxRepos) error {
		rv, err := r.Reviews.GetByID(ctx, cmd.ReviewID)
		if err != nil {
			return err
		}
		if rv.RevieweeID != cmd.RevieweeID {
			return shared.NewDomainError("review", "Respond", shared.ErrUnauthorized,
				"only the reviewee can respond to a review")
		}
		if err := rv.AddResponse(cmd.Text); err != nil {
			return err
		}
		if err := r.Reviews.Update(ctx, rv); err != nil {
			return err
		}

		event = shared.NewReviewResponseAddedEvent(rv.ID, rv.AuthorID, rv.RevieweeID)
		return nil
	})
	if err != nil {
		return err
	}

	_ = h.eventPublisher.Publish(event)
	return nil
}
