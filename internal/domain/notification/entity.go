// Package notification contains the notification model delivered to users
// on observable lifecycle transitions. Delivery is fire-and-forget: it runs
// after the triggering state change is durably committed and its failure
// never fails the triggering operation.
package notification

import (
	"fmt"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// NOTIFICATION TYPE
// ═══════════════════════════════════════════════════════════════════════════

// Type defines the kind of notification.
type Type string

const (
	// TypeApplicationSubmitted - a student applied to the company's project.
	TypeApplicationSubmitted Type = "application_submitted"

	// TypeApplicationAccepted - the company accepted the student's application.
	TypeApplicationAccepted Type = "application_accepted"

	// TypeApplicationRejected - the company rejected the student's application.
	TypeApplicationRejected Type = "application_rejected"

	// TypeCurriculumCompleted - every module reached 100%; the application
	// moved to under-review.
	TypeCurriculumCompleted Type = "curriculum_completed"

	// TypeReviewReceived - the reviewee received a new review.
	TypeReviewReceived Type = "review_received"

	// TypeReviewLive - the author's review passed moderation and is public.
	TypeReviewLive Type = "review_live"

	// TypeReviewResponse - the reviewee responded to the author's review.
	TypeReviewResponse Type = "review_response"

	// TypePaymentReceived - payment was recorded for the completed work.
	TypePaymentReceived Type = "payment_received"
)

// IsValid checks that the type is one of the known values.
func (t Type) IsValid() bool {
	switch t {
	case TypeApplicationSubmitted, TypeApplicationAccepted, TypeApplicationRejected,
		TypeCurriculumCompleted, TypeReviewReceived, TypeReviewLive,
		TypeReviewResponse, TypePaymentReceived:
		return true
	default:
		return false
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// NOTIFICATION ENTITY
// ═══════════════════════════════════════════════════════════════════════════

// Notification is one message destined for one user.
type Notification struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// RecipientID is the user (company or student) the message targets.
	RecipientID string

	// Type is the notification kind.
	Type Type

	// Title is the short headline.
	Title string

	// Body is the rendered message text.
	Body string

	// Metadata carries structured references (application id, review id).
	Metadata map[string]string

	// CreatedAt is when the notification was produced.
	CreatedAt time.Time
}

// New creates a notification.
func New(id, recipientID string, t Type, title, body string, metadata map[string]string) *Notification {
	return &Notification{
		ID:          id,
		RecipientID: recipientID,
		Type:        t,
		Title:       title,
		Body:        body,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// MESSAGE TEMPLATES
// One constructor per observable lifecycle transition.
// ═══════════════════════════════════════════════════════════════════════════

// ApplicationSubmitted builds the company-facing message for a new
// application on one of its projects.
func ApplicationSubmitted(id, companyID, applicationID string, bid float64) *Notification {
	return New(id, companyID, TypeApplicationSubmitted,
		"New application",
		fmt.Sprintf("A student applied to your project with a bid of %.2f.", bid),
		map[string]string{"application_id": applicationID})
}

// ApplicationDecided builds the student-facing message for an accept or
// reject decision.
func ApplicationDecided(id, studentID, projectTitle string, accepted bool, applicationID string) *Notification {
	t := TypeApplicationRejected
	title := "Application not selected"
	body := fmt.Sprintf("Your application for %q was not selected this time.", projectTitle)
	if accepted {
		t = TypeApplicationAccepted
		title = "Application accepted"
		body = fmt.Sprintf("Congratulations! Your application for %q was accepted. You can start working on the curriculum.", projectTitle)
	}
	return New(id, studentID, t, title, body, map[string]string{"application_id": applicationID})
}

// CurriculumCompleted builds the company-facing message when an applicant
// finishes every module.
func CurriculumCompleted(id, companyID, projectTitle, applicationID string) *Notification {
	return New(id, companyID, TypeCurriculumCompleted,
		"Curriculum completed",
		fmt.Sprintf("An applicant completed all modules of %q. The application is now under review.", projectTitle),
		map[string]string{"application_id": applicationID})
}

// ReviewReceived builds the reviewee-facing message for a new review. The
// author's name is withheld when the review is anonymous.
func ReviewReceived(id, revieweeID, authorName string, anonymous bool, reviewID string) *Notification {
	body := fmt.Sprintf("You received a new review from %s.", authorName)
	if anonymous {
		body = "You received a new review."
	}
	return New(id, revieweeID, TypeReviewReceived, "New review", body,
		map[string]string{"review_id": reviewID})
}

// ReviewLive builds the author-facing message when a review passes
// moderation.
func ReviewLive(id, authorID, reviewID string) *Notification {
	return New(id, authorID, TypeReviewLive,
		"Your review is live",
		"Your review passed moderation and is now publicly visible.",
		map[string]string{"review_id": reviewID})
}

// ReviewResponse builds the author-facing message when the reviewee responds.
func ReviewResponse(id, authorID, reviewID string) *Notification {
	return New(id, authorID, TypeReviewResponse,
		"Response to your review",
		"The reviewed party responded to your review.",
		map[string]string{"review_id": reviewID})
}

// PaymentReceived builds the student-facing message when payment lands.
func PaymentReceived(id, studentID string, amount float64, applicationID string) *Notification {
	return New(id, studentID, TypePaymentReceived,
		"Payment received",
		fmt.Sprintf("A payment of %.2f was recorded for your completed work.", amount),
		map[string]string{"application_id": applicationID})
}
