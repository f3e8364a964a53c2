// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Infrastructure errors
	ErrInternal           = errors.New("internal error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "application", "project", "review"
	Op      string // Operation that failed, e.g., "Apply", "Moderate"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Account domain errors
var (
	ErrCompanyNotFound      = NewDomainError("account", "Find", ErrNotFound, "company not found")
	ErrStudentNotFound      = NewDomainError("account", "Find", ErrNotFound, "student not found")
	ErrAccountAlreadyExists = NewDomainError("account", "Register", ErrAlreadyExists, "account already exists")
	ErrSkillNotFound        = NewDomainError("account", "FindSkill", ErrNotFound, "skill not found")
)

// Project domain errors
var (
	ErrProjectNotFound     = NewDomainError("project", "Find", ErrNotFound, "project not found")
	ErrModuleNotFound      = NewDomainError("project", "FindModule", ErrNotFound, "project module not found")
	ErrProjectNotActive    = NewDomainError("project", "CheckStatus", ErrInvalidState, "project is not active")
	ErrProjectDeadlinePast = NewDomainError("project", "CheckDeadline", ErrValidation, "project deadline has passed")
	ErrApplicantCapReached = NewDomainError("project", "CheckCap", ErrValidation, "project applicant cap reached")
	ErrModuleInUse         = NewDomainError("project", "DeleteModule", ErrValidation, "module has recorded progress and cannot be removed")
	ErrModuleNotInProject  = NewDomainError("project", "CheckModule", ErrValidation, "module does not belong to this project")
	ErrNotProjectOwner     = NewDomainError("project", "Authorize", ErrUnauthorized, "caller does not own the project")
)

// Application domain errors
var (
	ErrApplicationNotFound = NewDomainError("application", "Find", ErrNotFound, "application not found")
	ErrDuplicateApplication = NewDomainError("application", "Apply", ErrValidation,
		"student has already applied to this project")
	ErrNotApplicationOwner = NewDomainError("application", "Authorize", ErrUnauthorized,
		"caller does not own the application")
	ErrApplicationNotExecutable = NewDomainError("application", "CheckStatus", ErrValidation,
		"application is not in an executable status")
	ErrApplicationNotCompleted = NewDomainError("application", "CheckStatus", ErrValidation,
		"application is not completed")
	ErrAlreadyPaid = NewDomainError("application", "RecordPayment", ErrValidation,
		"application payment has already been recorded")
)

// Review domain errors
var (
	ErrReviewNotFound  = NewDomainError("review", "Find", ErrNotFound, "review not found")
	ErrDuplicateReview = NewDomainError("review", "Submit", ErrValidation,
		"a review for this application already exists")
	ErrInvalidRating = NewDomainError("review", "Validate", ErrValueOutOfRange,
		"rating must be between 1 and 5")
	ErrAlreadyResponded = NewDomainError("review", "Respond", ErrValidation,
		"review already has a response")
	ErrReviewNotApproved = NewDomainError("review", "CheckStatus", ErrValidation,
		"review is not approved")
)

// Notification domain errors
var (
	ErrNotificationFailed = NewDomainError("notification", "Send", ErrServiceUnavailable,
		"failed to deliver notification")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation (business-rule) error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateTransition)
}

// IsUnauthorized checks if the error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsInternal checks if the error is an infrastructure-level failure.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
