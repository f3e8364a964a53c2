// Package review contains the mutual review aggregate: rating + commentary
// authored by one party about its counterpart on a completed application,
// the admin moderation state machine gating visibility, and the statistics
// projection over eligible reviews.
package review

import (
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// KIND (tagged variant instead of a string discriminator)
// ═══════════════════════════════════════════════════════════════════════════

// Kind identifies which party is being reviewed. It selects the eligibility
// criteria, the aggregate being recomputed, and the notification template.
type Kind string

const (
	// KindCompany - a student reviews the company it worked for.
	// Eligible for aggregation when Approved. May be anonymous.
	KindCompany Kind = "company"

	// KindStudent - a company reviews the student it hired.
	// Eligible for aggregation when Approved and Public.
	KindStudent Kind = "student"
)

// IsValid checks that the kind is one of the known values.
func (k Kind) IsValid() bool {
	return k == KindCompany || k == KindStudent
}

// ═══════════════════════════════════════════════════════════════════════════
// MODERATION STATE MACHINE
// ═══════════════════════════════════════════════════════════════════════════

// ModerationStatus defines the moderation state of a review.
//
//	Pending ──► Approved ──► Flagged
//	   └──────► Rejected
//
// Flagged and Rejected are terminal.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
	StatusFlagged  ModerationStatus = "flagged"
)

// IsValid checks that the status is one of the known values.
func (s ModerationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return true
	default:
		return false
	}
}

// ModerationAction is an admin decision on a review.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
	ActionFlag    ModerationAction = "flag"
)

// IsValid checks that the action is one of the known values.
func (a ModerationAction) IsValid() bool {
	return a == ActionApprove || a == ActionReject || a == ActionFlag
}

// ═══════════════════════════════════════════════════════════════════════════
// REVIEW ENTITY
// ═══════════════════════════════════════════════════════════════════════════

// SubRatings is the per-dimension rating breakdown accompanying the overall
// rating. Zero values mean "not rated on this dimension".
type SubRatings struct {
	Communication shared.Rating
	Quality       shared.Rating
	Timeliness    shared.Rating
}

// Validate checks that every provided sub-rating is in range.
func (sr SubRatings) Validate() error {
	for _, r := range []shared.Rating{sr.Communication, sr.Quality, sr.Timeliness} {
		if r != 0 && !r.IsValid() {
			return shared.ErrInvalidRating
		}
	}
	return nil
}

// Review is one party's review of its counterpart on a specific completed
// application. At most one review exists per (author, reviewee, application)
// triple.
type Review struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// Kind selects who is being reviewed.
	Kind Kind

	// ApplicationID links the review to the completed application.
	ApplicationID string

	// AuthorID is the reviewer: the student for KindCompany, the company
	// for KindStudent.
	AuthorID string

	// RevieweeID is the reviewed party.
	RevieweeID string

	// Rating is the overall rating (1-5).
	Rating shared.Rating

	// SubRatings is the per-dimension breakdown.
	SubRatings SubRatings

	// Text is the free-text commentary.
	Text string

	// Recommend reports whether the author recommends the reviewee.
	Recommend bool

	// Status is the moderation state.
	Status ModerationStatus

	// Anonymous (KindCompany only) withholds the author's name when the
	// review is displayed or announced.
	Anonymous bool

	// Public (KindStudent only) controls whether the review counts toward
	// the student's public reputation.
	Public bool

	// ResponseText is the reviewee's one-shot response.
	ResponseText string

	// ResponseAt is when the response was added.
	ResponseAt *time.Time

	// ModeratedBy is the admin who last acted on the review.
	ModeratedBy string

	// ModeratedAt is when the last moderation action was recorded.
	ModeratedAt *time.Time

	// CreatedAt is when the review was submitted.
	CreatedAt time.Time

	// UpdatedAt is when the review was last modified.
	UpdatedAt time.Time
}

// NewReviewParams contains parameters for submitting a review.
type NewReviewParams struct {
	ID            string
	Kind          Kind
	ApplicationID string
	AuthorID      string
	RevieweeID    string
	Rating        shared.Rating
	SubRatings    SubRatings
	Text          string
	Recommend     bool
	Anonymous     bool
	Public        bool
}

// NewReview creates a review with validation. Reviews of students enter
// Approved directly (the self-certified mutual path); reviews of companies
// enter Pending and await moderation before counting toward the company's
// public reputation.
func NewReview(params NewReviewParams) (*Review, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("review", "NewReview", shared.ErrEmptyValue, "review id is required")
	}
	if !params.Kind.IsValid() {
		return nil, shared.NewDomainError("review", "NewReview", shared.ErrInvalidInput, "invalid review kind")
	}
	if params.ApplicationID == "" {
		return nil, shared.NewDomainError("review", "NewReview", shared.ErrEmptyValue, "application id is required")
	}
	if params.AuthorID == "" || params.RevieweeID == "" {
		return nil, shared.NewDomainError("review", "NewReview", shared.ErrEmptyValue, "author and reviewee ids are required")
	}
	if !params.Rating.IsValid() {
		return nil, shared.ErrInvalidRating
	}
	if err := params.SubRatings.Validate(); err != nil {
		return nil, err
	}

	status := StatusPending
	if params.Kind == KindStudent {
		status = StatusApproved
	}

	now := time.Now().UTC()
	return &Review{
		ID:            params.ID,
		Kind:          params.Kind,
		ApplicationID: params.ApplicationID,
		AuthorID:      params.AuthorID,
		RevieweeID:    params.RevieweeID,
		Rating:        params.Rating,
		SubRatings:    params.SubRatings,
		Text:          strings.TrimSpace(params.Text),
		Recommend:     params.Recommend,
		Status:        status,
		Anonymous:     params.Kind == KindCompany && params.Anonymous,
		Public:        params.Kind == KindStudent && params.Public,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsEligible reports whether the review counts toward its reviewee's
// aggregate rating: Approved for company reviews, Approved and Public for
// student reviews.
func (r *Review) IsEligible() bool {
	if r.Status != StatusApproved {
		return false
	}
	if r.Kind == KindStudent {
		return r.Public
	}
	return true
}

// Moderate applies an admin action. Approve and Reject are legal only from
// Pending; Flag is legal only from Approved. There is no return from
// Flagged or Rejected.
func (r *Review) Moderate(action ModerationAction, adminID string) error {
	if !action.IsValid() {
		return shared.NewDomainError("review", "Moderate", shared.ErrInvalidInput, "unknown moderation action")
	}

	switch action {
	case ActionApprove, ActionReject:
		if r.Status != StatusPending {
			return shared.NewDomainError("review", "Moderate", shared.ErrStateTransition,
				"only pending reviews can be approved or rejected")
		}
	case ActionFlag:
		if r.Status != StatusApproved {
			return shared.NewDomainError("review", "Moderate", shared.ErrStateTransition,
				"only approved reviews can be flagged")
		}
	}

	now := time.Now().UTC()
	switch action {
	case ActionApprove:
		r.Status = StatusApproved
	case ActionReject:
		r.Status = StatusRejected
	case ActionFlag:
		r.Status = StatusFlagged
	}
	r.ModeratedBy = adminID
	r.ModeratedAt = &now
	r.UpdatedAt = now
	return nil
}

// AddResponse sets the reviewee's one-shot response. Legal only on an
// approved review that has no response yet.
func (r *Review) AddResponse(text string) error {
	if r.Status != StatusApproved {
		return shared.ErrReviewNotApproved
	}
	if r.ResponseText != "" {
		return shared.ErrAlreadyResponded
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("review", "Respond", shared.ErrEmptyValue, "response text is required")
	}
	now := time.Now().UTC()
	r.ResponseText = text
	r.ResponseAt = &now
	r.UpdatedAt = now
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// MODERATION AUDIT LOG
// ═══════════════════════════════════════════════════════════════════════════

// ModerationEntry is one audit log record of an admin action on a review.
type ModerationEntry struct {
	ID       string
	ReviewID string
	AdminID  string
	Action   ModerationAction
	ActedAt  time.Time
}

// NewModerationEntry creates an audit entry for a moderation action.
func NewModerationEntry(id, reviewID, adminID string, action ModerationAction) ModerationEntry {
	return ModerationEntry{
		ID:       id,
		ReviewID: reviewID,
		AdminID:  adminID,
		Action:   action,
		ActedAt:  time.Now().UTC(),
	}
}
