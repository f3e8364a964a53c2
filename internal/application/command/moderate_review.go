package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MODERATE REVIEW COMMAND
// An admin approves, rejects, or flags a review. Every decision lands in
// the moderation log, and any decision that changes the review's
// eligibility triggers a full recomputation of the reviewee's aggregate
// rating from the surviving eligible set.
// ══════════════════════════════════════════════════════════════════════════════

// ModerateReviewCommand contains the moderation decision.
type ModerateReviewCommand struct {
	// ReviewID is the review being moderated.
	ReviewID string

	// AdminID identifies the moderator.
	AdminID string

	// Action is one of approve, reject, or flag.
	Action review.ModerationAction
}

// Validate validates the command.
func (c ModerateReviewCommand) Validate() error {
	if c.ReviewID == "" {
		return errors.New("moderate_review: review_id is required")
	}
	if c.AdminID == "" {
		return errors.New("moderate_review: admin_id is required")
	}
	if !c.Action.IsValid() {
		return errors.New("moderate_review: action must be approve, reject, or flag")
	}
	return nil
}

// ModerateReviewResult contains the result of the moderation decision.
type ModerateReviewResult struct {
	ReviewID string
	Status   review.ModerationStatus
}

// ModerateReviewHandler handles the ModerateReviewCommand.
type ModerateReviewHandler struct {
	uow            UnitOfWork
	idGen          IDGenerator
	eventPublisher shared.EventPublisher
}

// NewModerateReviewHandler creates a new ModerateReviewHandler.
func NewModerateReviewHandler(uow UnitOfWork, idGen IDGenerator, eventPublisher shared.EventPublisher) *ModerateReviewHandler {
	return &ModerateReviewHandler{
		uow:            uow,
		idGen:          idGen,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the moderate review command.
func (h *ModerateReviewHandler) Handle(ctx context.Context, cmd ModerateReviewCommand) (*ModerateReviewResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("review", "Moderate", shared.ErrValidation, err.Error())
	}

	var (
		result ModerateReviewResult
		event  shared.ReviewModeratedEvent
	)

	err := h.uow.Do(ctx, func(r TxRepos) error {
		rv, err := r.Reviews.GetByID(ctx, cmd.ReviewID)
		if err != nil {
			return err
		}

		wasEligible := rv.IsEligible()

		if err := rv.Moderate(cmd.Action, cmd.AdminID); err != nil {
			return err
		}
		if err := r.Reviews.Update(ctx, rv); err != nil {
			return err
		}

		entry := review.NewModerationEntry(h.idGen.GenerateID(), rv.ID, cmd.AdminID, cmd.Action)
		if err := r.ModerationLog.Append(ctx, entry); err != nil {
			return err
		}

		// Only eligibility flips move the aggregate.
		if rv.IsEligible() != wasEligible {
			if err := recomputeReviewee(ctx, r, rv.RevieweeID, rv.Kind); err != nil {
				return err
			}
		}

		authorName, err := authorDisplayName(ctx, r, rv)
		if err != nil {
			return err
		}

		result = ModerateReviewResult{ReviewID: rv.ID, Status: rv.Status}
		event = shared.NewReviewModeratedEvent(rv.ID, rv.AuthorID, authorName, rv.RevieweeID,
			string(cmd.Action), cmd.AdminID, rv.Anonymous)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = h.eventPublisher.Publish(event)
	return &result, nil
}

// authorDisplayName resolves the review author's name for notifications.
// Anonymous student reviews keep the author hidden.
func authorDisplayName(ctx context.Context, r TxRepos, rv *review.Review) (string, error) {
	if rv.Anonymous {
		return "Anonymous", nil
	}
	switch rv.Kind {
	case review.KindCompany:
		student, err := r.Students.GetByID(ctx, rv.AuthorID)
		if err != nil {
			return "", err
		}
		return student.Name, nil
	default:
		company, err := r.Companies.GetByID(ctx, rv.AuthorID)
		if err != nil {
			return "", err
		}
		return company.Name, nil
	}
}
