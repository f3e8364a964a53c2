// Package application contains the application aggregate: a student's bid
// on a project, its lifecycle state machine, and the per-module progress
// records that drive the weighted completion computation.
package application

import (
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// STATUS STATE MACHINE
// ═══════════════════════════════════════════════════════════════════════════

// Status defines the lifecycle status of an application.
//
//	Pending ──► Accepted ──► UnderReview ──► Completed
//	   │            │
//	   ├──► Rejected└─(UnderReview reached via full curriculum completion)
//	   └──► Withdrawn (also legal from UnderReview)
type Status string

const (
	// StatusPending - submitted, awaiting the company's decision.
	StatusPending Status = "pending"
	// StatusAccepted - company accepted; student executes the curriculum.
	StatusAccepted Status = "accepted"
	// StatusUnderReview - all modules completed; awaiting final sign-off.
	StatusUnderReview Status = "under_review"
	// StatusCompleted - terminal; work concluded, reviews and payment unlock.
	StatusCompleted Status = "completed"
	// StatusRejected - terminal; company declined the application.
	StatusRejected Status = "rejected"
	// StatusWithdrawn - terminal; student withdrew the application.
	StatusWithdrawn Status = "withdrawn"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusUnderReview,
		StatusCompleted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusWithdrawn
}

// IsExecutable reports whether the student may record module progress.
func (s Status) IsExecutable() bool {
	return s == StatusAccepted || s == StatusUnderReview
}

// CanWithdraw reports whether the student may withdraw from this status.
func (s Status) CanWithdraw() bool {
	return s == StatusPending || s == StatusUnderReview
}

// ═══════════════════════════════════════════════════════════════════════════
// APPLICATION ENTITY
// ═══════════════════════════════════════════════════════════════════════════

// Application represents one student's bid on one project. At most one
// application exists per (project, student) pair.
type Application struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// ProjectID references the project applied to.
	ProjectID string

	// StudentID references the applying student.
	StudentID string

	// Status is the current lifecycle status.
	Status Status

	// BidAmount is the student's proposed price.
	BidAmount shared.Money

	// Proposal is the student's pitch text.
	Proposal string

	// DurationDays is the student's proposed duration.
	DurationDays int

	// AppliedAt is when the application was submitted.
	AppliedAt time.Time

	// ReviewedBy is the company user who decided accept/reject.
	ReviewedBy string

	// ReviewedAt is when the accept/reject decision was recorded.
	ReviewedAt *time.Time

	// ReviewNote is the company's optional note on the decision.
	ReviewNote string

	// Paid is set once, by the payment gate, after completion.
	Paid bool

	// PaidAt is when the payment was recorded.
	PaidAt *time.Time

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last modified.
	UpdatedAt time.Time
}

// NewApplicationParams contains parameters for creating an application.
type NewApplicationParams struct {
	ID           string
	ProjectID    string
	StudentID    string
	BidAmount    shared.Money
	Proposal     string
	DurationDays int
}

// NewApplication creates an application in Pending status with validation.
func NewApplication(params NewApplicationParams) (*Application, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrEmptyValue, "application id is required")
	}
	if params.ProjectID == "" {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrEmptyValue, "project id is required")
	}
	if params.StudentID == "" {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrEmptyValue, "student id is required")
	}
	if !params.BidAmount.IsValid() {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrValueOutOfRange, "bid amount cannot be negative")
	}
	proposal := strings.TrimSpace(params.Proposal)
	if proposal == "" {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrEmptyValue, "proposal text is required")
	}
	if params.DurationDays < 0 {
		return nil, shared.NewDomainError("application", "NewApplication", shared.ErrValueOutOfRange, "duration cannot be negative")
	}

	now := time.Now().UTC()
	return &Application{
		ID:           params.ID,
		ProjectID:    params.ProjectID,
		StudentID:    params.StudentID,
		Status:       StatusPending,
		BidAmount:    params.BidAmount,
		Proposal:     proposal,
		DurationDays: params.DurationDays,
		AppliedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsOwnedBy reports whether the given student owns this application.
func (a *Application) IsOwnedBy(studentID string) bool {
	return a.StudentID == studentID
}

// Accept records the company's positive decision. Legal only from Pending.
func (a *Application) Accept(reviewerID, note string) error {
	return a.decide(StatusAccepted, reviewerID, note)
}

// Reject records the company's negative decision. Legal only from Pending.
func (a *Application) Reject(reviewerID, note string) error {
	return a.decide(StatusRejected, reviewerID, note)
}

func (a *Application) decide(target Status, reviewerID, note string) error {
	if a.Status != StatusPending {
		return shared.NewDomainError("application", "Review", shared.ErrStateTransition,
			"only pending applications can be accepted or rejected")
	}
	now := time.Now().UTC()
	a.Status = target
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	a.ReviewNote = strings.TrimSpace(note)
	a.UpdatedAt = now
	return nil
}

// MarkUnderReview transitions the application once the full curriculum is
// complete. Returns transitioned=false without error when the application
// is already UnderReview or beyond, making the auto-completion check
// idempotent.
func (a *Application) MarkUnderReview() (transitioned bool, err error) {
	switch a.Status {
	case StatusAccepted:
		a.Status = StatusUnderReview
		a.UpdatedAt = time.Now().UTC()
		return true, nil
	case StatusUnderReview, StatusCompleted:
		return false, nil
	default:
		return false, shared.NewDomainError("application", "MarkUnderReview", shared.ErrStateTransition,
			"only accepted applications reach under-review")
	}
}

// Withdraw is the student-initiated exit. Legal only from Pending or
// UnderReview; state is left unchanged on failure.
func (a *Application) Withdraw() error {
	if !a.Status.CanWithdraw() {
		return shared.NewDomainError("application", "Withdraw", shared.ErrValidation,
			"application can only be withdrawn while pending or under review")
	}
	a.Status = StatusWithdrawn
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete is the operator/workflow sign-off. Legal only from UnderReview.
func (a *Application) Complete() error {
	if a.Status != StatusUnderReview {
		return shared.NewDomainError("application", "Complete", shared.ErrStateTransition,
			"only under-review applications can be completed")
	}
	a.Status = StatusCompleted
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordPayment sets the one-way paid flag. Legal only when the
// application is Completed and not yet paid; a second payment attempt
// fails with a validation error.
func (a *Application) RecordPayment() error {
	if a.Status != StatusCompleted {
		return shared.ErrApplicationNotCompleted
	}
	if a.Paid {
		return shared.ErrAlreadyPaid
	}
	now := time.Now().UTC()
	a.Paid = true
	a.PaidAt = &now
	a.UpdatedAt = now
	return nil
}
