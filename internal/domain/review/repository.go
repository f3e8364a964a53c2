package review

import (
	"context"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ═══════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for reviews.
type Repository interface {
	// Create stores a new review.
	Create(ctx context.Context, r *Review) error

	// GetByID returns a review by ID.
	// Returns shared.ErrReviewNotFound if absent.
	GetByID(ctx context.Context, id string) (*Review, error)

	// GetByTriple returns the unique review for the
	// (author, reviewee, application) triple, used for duplicate
	// prevention. Returns shared.ErrReviewNotFound if absent.
	GetByTriple(ctx context.Context, authorID, revieweeID, applicationID string) (*Review, error)

	// ListEligibleByReviewee returns the reviewee's full eligible review
	// set (Approved; and Public for student reviews). This is the input
	// of every aggregate recomputation and of the statistics projection.
	ListEligibleByReviewee(ctx context.Context, revieweeID string, kind Kind) ([]*Review, error)

	// ListByReviewee returns eligible reviews of a reviewee, paginated,
	// newest first, for the public query surface.
	ListByReviewee(ctx context.Context, revieweeID string, kind Kind, page shared.Pagination) ([]*Review, int, error)

	// Update persists changes to a review.
	Update(ctx context.Context, r *Review) error
}

// ModerationLog defines storage for the moderation audit trail.
type ModerationLog interface {
	// Append records a moderation action.
	Append(ctx context.Context, entry ModerationEntry) error

	// ListByReview returns all audit entries of a review, oldest first.
	ListByReview(ctx context.Context, reviewID string) ([]ModerationEntry, error)
}
