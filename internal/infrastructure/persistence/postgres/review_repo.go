package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ReviewRepository implements review.Repository for PostgreSQL.
type ReviewRepository struct {
	db Querier
}

// NewReviewRepository creates a new ReviewRepository on the pool.
func NewReviewRepository(conn *Connection) *ReviewRepository {
	return &ReviewRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReviewRepository) WithTx(tx pgx.Tx) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

const reviewColumns = `id, kind, application_id, author_id, reviewee_id,
	rating, rating_communication, rating_quality, rating_timeliness, text,
	recommend, status, anonymous, public, response_text, response_at,
	moderated_by, moderated_at, created_at, updated_at`

// eligibleCondition filters reviews that count toward the reviewee's
// aggregate: Approved, and additionally Public for reviews of students.
const eligibleCondition = `status = 'approved' AND (kind = 'company' OR public)`

// Create creates a new review. The (author, reviewee, application)
// uniqueness constraint backs the duplicate-review rule.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		rv.ID,
		string(rv.Kind),
		rv.ApplicationID,
		rv.AuthorID,
		rv.RevieweeID,
		rv.Rating.Float64(),
		rv.SubRatings.Communication.Float64(),
		rv.SubRatings.Quality.Float64(),
		rv.SubRatings.Timeliness.Float64(),
		rv.Text,
		rv.Recommend,
		string(rv.Status),
		rv.Anonymous,
		rv.Public,
		rv.ResponseText,
		rv.ResponseAt,
		nullableString(rv.ModeratedBy),
		rv.ModeratedAt,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID returns a review by ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return r.scanReview(r.db.QueryRow(ctx, query, id))
}

// GetByTriple returns the unique review for the (author, reviewee,
// application) triple.
func (r *ReviewRepository) GetByTriple(ctx context.Context, authorID, revieweeID, applicationID string) (*review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews
		WHERE author_id = $1 AND reviewee_id = $2 AND application_id = $3`
	return r.scanReview(r.db.QueryRow(ctx, query, authorID, revieweeID, applicationID))
}

// ListEligibleByReviewee returns the reviewee's full eligible review set,
// the input of every aggregate recomputation.
func (r *ReviewRepository) ListEligibleByReviewee(ctx context.Context, revieweeID string, kind review.Kind) ([]*review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews
		WHERE reviewee_id = $1 AND kind = $2 AND ` + eligibleCondition + `
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, revieweeID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible reviews: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByReviewee returns eligible reviews of a reviewee, paginated, newest
// first, together with the total eligible count.
func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID string, kind review.Kind, page shared.Pagination) ([]*review.Review, int, error) {
	countQuery := `SELECT COUNT(*) FROM reviews
		WHERE reviewee_id = $1 AND kind = $2 AND ` + eligibleCondition

	var total int
	if err := r.db.QueryRow(ctx, countQuery, revieweeID, string(kind)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews
		WHERE reviewee_id = $1 AND kind = $2 AND ` + eligibleCondition + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, revieweeID, string(kind), page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Update updates a review.
func (r *ReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	query := `
		UPDATE reviews SET
			status = $1,
			anonymous = $2,
			public = $3,
			response_text = $4,
			response_at = $5,
			moderated_by = $6,
			moderated_at = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		string(rv.Status),
		rv.Anonymous,
		rv.Public,
		rv.ResponseText,
		rv.ResponseAt,
		nullableString(rv.ModeratedBy),
		rv.ModeratedAt,
		rv.UpdatedAt,
		rv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepository) collect(rows pgx.Rows) ([]*review.Review, error) {
	reviews := make([]*review.Review, 0)
	for rows.Next() {
		rv, err := r.scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) scanReview(row pgx.Row) (*review.Review, error) {
	var rv review.Review
	var kind, status string
	var rating, comm, quality, timeliness float64
	var moderatedBy *string

	err := row.Scan(
		&rv.ID,
		&kind,
		&rv.ApplicationID,
		&rv.AuthorID,
		&rv.RevieweeID,
		&rating,
		&comm,
		&quality,
		&timeliness,
		&rv.Text,
		&rv.Recommend,
		&status,
		&rv.Anonymous,
		&rv.Public,
		&rv.ResponseText,
		&rv.ResponseAt,
		&moderatedBy,
		&rv.ModeratedAt,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}

	rv.Kind = review.Kind(kind)
	rv.Status = review.ModerationStatus(status)
	rv.Rating = shared.Rating(rating)
	rv.SubRatings = review.SubRatings{
		Communication: shared.Rating(comm),
		Quality:       shared.Rating(quality),
		Timeliness:    shared.Rating(timeliness),
	}
	if moderatedBy != nil {
		rv.ModeratedBy = *moderatedBy
	}
	return &rv, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MODERATION LOG
// ══════════════════════════════════════════════════════════════════════════════

// ModerationLogRepository implements review.ModerationLog for PostgreSQL.
type ModerationLogRepository struct {
	db Querier
}

// NewModerationLogRepository creates a new ModerationLogRepository.
func NewModerationLogRepository(conn *Connection) *ModerationLogRepository {
	return &ModerationLogRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ModerationLogRepository) WithTx(tx pgx.Tx) *ModerationLogRepository {
	return &ModerationLogRepository{db: tx}
}

// Append records a moderation action.
func (r *ModerationLogRepository) Append(ctx context.Context, entry review.ModerationEntry) error {
	query := `
		INSERT INTO moderation_log (id, review_id, admin_id, action, acted_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ReviewID,
		entry.AdminID,
		string(entry.Action),
		entry.ActedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append moderation entry: %w", err)
	}

	return nil
}

// ListByReview returns all audit entries of a review, oldest first.
func (r *ModerationLogRepository) ListByReview(ctx context.Context, reviewID string) ([]review.ModerationEntry, error) {
	query := `SELECT id, review_id, admin_id, action, acted_at
		FROM moderation_log WHERE review_id = $1 ORDER BY acted_at`

	rows, err := r.db.Query(ctx, query, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation entries: %w", err)
	}
	defer rows.Close()

	entries := make([]review.ModerationEntry, 0)
	for rows.Next() {
		var e review.ModerationEntry
		var action string
		if err := rows.Scan(&e.ID, &e.ReviewID, &e.AdminID, &action, &e.ActedAt); err != nil {
			return nil, fmt.Errorf("failed to scan moderation entry: %w", err)
		}
		e.Action = review.ModerationAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
