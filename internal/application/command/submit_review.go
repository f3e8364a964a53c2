package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT REVIEW COMMAND
// Either party of a completed application reviews its counterpart. The
// review's kind is derived from which side the author is on: a student
// reviews the company (moderated before it counts), a company reviews
// the student (live immediately). When the new review is already
// eligible, the reviewee's aggregate is recomputed from the full
// eligible set in the same transaction, under the reviewee's row lock.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitReviewCommand contains the review data.
type SubmitReviewCommand struct {
	// ApplicationID is the completed application being reviewed.
	ApplicationID string

	// AuthorID is the reviewer: the application's student or the
	// project's company.
	AuthorID string

	// Rating is the overall rating (1-5).
	Rating float64

	// Communication, Quality, and Timeliness are optional per-dimension
	// ratings (0 = not rated).
	Communication float64
	Quality       float64
	Timeliness    float64

	// Text is the free-text commentary.
	Text string

	// Recommend reports whether the author recommends the reviewee.
	Recommend bool

	// Anonymous withholds the author's name (student-authored only).
	Anonymous bool

	// Public opts the review into the student's public reputation
	// (company-authored only).
	Public bool
}

// Validate validates the command.
func (c SubmitReviewCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("submit_review: application_id is required")
	}
	if c.AuthorID == "" {
		return errors.New("submit_review: author_id is required")
	}
	return nil
}

// SubmitReviewResult contains the result of submitting a review.
type SubmitReviewResult struct {
	ReviewID string
	Kind     review.Kind
	Status   review.ModerationStatus
}

// SubmitReviewHandler handles the SubmitReviewCommand.
type SubmitReviewHandler struct {
	uow            UnitOfWork
	idGen          IDGenerator
	eventPublisher shared.EventPublisher
}

// NewSubmitReviewHandler creates a new SubmitReviewHandler.
func NewSubmitReviewHandler(uow UnitOfWork, idGen IDGenerator, eventPublisher shared.EventPublisher) *SubmitReviewHandler {
	return &SubmitReviewHandler{
		uow:            uow,
		idGen:          idGen,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the submit review command.
func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*SubmitReviewResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("review", "Submit", shared.ErrValidation, err.Error())
	}

	rating, err := shared.NewRating(cmd.Rating)
	if err != nil {
		return nil, err
	}

	var (
		result SubmitReviewResult
		event  shared.ReviewSubmittedEvent
	)

	err = h.uow.Do(ctx, func(r TxRepos) error {
		app, err := r.Applications.GetByID(ctx, cmd.ApplicationID)
		if err != nil {
			return err
		}
		if app.Status != application.StatusCompleted {
			return shared.ErrApplicationNotCompleted
		}

		p, err := r.Projects.GetByID(ctx, app.ProjectID)
		if err != nil {
			return err
		}

		// Derive the review kind from which side the author is on.
		var (
			kind       review.Kind
			revieweeID string
		)
		switch cmd.AuthorID {
		case app.StudentID:
			kind = review.KindCompany
			revieweeID = p.CompanyID
		case p.CompanyID:
			kind = review.KindStudent
			revieweeID = app.StudentID
		default:
			return shared.NewDomainError("review", "Submit", shared.ErrUnauthorized,
				"author is not a party of the application")
		}

		// Duplicate prevention per (author, reviewee, application);
		// the unique constraint backs this against concurrent inserts.
		if _, err := r.Reviews.GetByTriple(ctx, cmd.AuthorID, revieweeID, app.ID); err == nil {
			return shared.ErrDuplicateReview
		} else if !shared.IsNotFound(err) {
			return err
		}

		rv, err := review.NewReview(review.NewReviewParams{
			ID:            h.idGen.GenerateID(),
			Kind:          kind,
			ApplicationID: app.ID,
			AuthorID:      cmd.AuthorID,
			RevieweeID:    revieweeID,
			Rating:        rating,
			SubRatings: review.SubRatings{
				Communication: shared.Rating(cmd.Communication),
				Quality:       shared.Rating(cmd.Quality),
				Timeliness:    shared.Rating(cmd.Timeliness),
			},
			Text:      cmd.Text,
			Recommend: cmd.Recommend,
			Anonymous: cmd.Anonymous,
			Public:    cmd.Public,
		})
		if err != nil {
			return err
		}

		if err := r.Reviews.Create(ctx, rv); err != nil {
			return err
		}

		// A review that is live on arrival changes the reviewee's
		// aggregate immediately.
		if rv.IsEligible() {
			if err := recomputeReviewee(ctx, r, revieweeID, kind); err != nil {
				return err
			}
		}

		result = SubmitReviewResult{ReviewID: rv.ID, Kind: rv.Kind, Status: rv.Status}
		event = shared.NewReviewSubmittedEvent(rv.ID, app.ID, rv.AuthorID, rv.RevieweeID,
			rv.Rating.Float64(), rv.Anonymous)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = h.eventPublisher.Publish(event)
	return &result, nil
}

// recomputeReviewee replaces the reviewee's aggregate rating from the
// full eligible review set. The reviewee row is locked first so that
// concurrent recomputations serialize and the last write always reflects
// a complete set.
func recomputeReviewee(ctx context.Context, r TxRepos, revieweeID string, kind review.Kind) error {
	switch kind {
	case review.KindCompany:
		company, err := r.Companies.LockForRating(ctx, revieweeID)
		if err != nil {
			return err
		}
		eligible, err := r.Reviews.ListEligibleByReviewee(ctx, revieweeID, kind)
		if err != nil {
			return err
		}
		company.ApplyRating(review.Ratings(eligible))
		return r.Companies.Update(ctx, company)
	case review.KindStudent:
		student, err := r.Students.LockForRating(ctx, revieweeID)
		if err != nil {
			return err
		}
		eligible, err := r.Reviews.ListEligibleByReviewee(ctx, revieweeID, kind)
		if err != nil {
			return err
		}
		student.ApplyRating(review.Ratings(eligible))
		return r.Students.Update(ctx, student)
	default:
		return shared.NewDomainError("review", "Recompute", shared.ErrInvalidInput, "unknown review kind")
	}
}
