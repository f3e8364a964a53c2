// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents one observable lifecycle
// transition; notification fan-out subscribes to these after commit.
const (
	// Application lifecycle events
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationAccepted  EventType = "application.accepted"
	EventApplicationRejected  EventType = "application.rejected"
	EventApplicationWithdrawn EventType = "application.withdrawn"
	EventApplicationCompleted EventType = "application.completed"
	EventPaymentRecorded      EventType = "application.payment_recorded"

	// Curriculum progress events
	EventProgressUpdated     EventType = "progress.updated"
	EventCurriculumCompleted EventType = "progress.curriculum_completed"

	// Review events
	EventReviewSubmitted     EventType = "review.submitted"
	EventReviewApproved      EventType = "review.approved"
	EventReviewRejected      EventType = "review.rejected"
	EventReviewFlagged       EventType = "review.flagged"
	EventReviewResponseAdded EventType = "review.response_added"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Application Lifecycle Events
// ═══════════════════════════════════════════════════════════════════════════

// ApplicationSubmittedEvent is emitted when a student applies to a project.
type ApplicationSubmittedEvent struct {
	BaseEvent
	ApplicationID string  `json:"application_id"`
	ProjectID     string  `json:"project_id"`
	StudentID     string  `json:"student_id"`
	CompanyID     string  `json:"company_id"`
	BidAmount     float64 `json:"bid_amount"`
}

// Payload implements Event interface.
func (e ApplicationSubmittedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"application_id": e.ApplicationID,
		"project_id":     e.ProjectID,
		"student_id":     e.StudentID,
		"company_id":     e.CompanyID,
		"bid_amount":     e.BidAmount,
	}
}

// NewApplicationSubmittedEvent creates a new ApplicationSubmittedEvent.
func NewApplicationSubmittedEvent(applicationID, projectID, studentID, companyID string, bid float64) ApplicationSubmittedEvent {
	return ApplicationSubmittedEvent{
		BaseEvent:     NewBaseEvent(EventApplicationSubmitted, applicationID),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		StudentID:     studentID,
		CompanyID:     companyID,
		BidAmount:     bid,
	}
}

// ApplicationDecidedEvent is emitted when a company accepts or rejects an
// application. Accepted reports which branch was taken.
type ApplicationDecidedEvent struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	ProjectID     string `json:"project_id"`
	ProjectTitle  string `json:"project_title"`
	StudentID     string `json:"student_id"`
	Accepted      bool   `json:"accepted"`
	ReviewNote    string `json:"review_note,omitempty"`
}

// Payload implements Event interface.
func (e ApplicationDecidedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"application_id": e.ApplicationID,
		"project_id":     e.ProjectID,
		"project_title":  e.ProjectTitle,
		"student_id":     e.StudentID,
		"accepted":       e.Accepted,
		"review_note":    e.ReviewNote,
	}
}

// NewApplicationDecidedEvent creates a new ApplicationDecidedEvent.
func NewApplicationDecidedEvent(applicationID, projectID, projectTitle, studentID string, accepted bool, note string) ApplicationDecidedEvent {
	eventType := EventApplicationRejected
	if accepted {
		eventType = EventApplicationAccepted
	}
	return ApplicationDecidedEvent{
		BaseEvent:     NewBaseEvent(eventType, applicationID),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		ProjectTitle:  projectTitle,
		StudentID:     studentID,
		Accepted:      accepted,
		ReviewNote:    note,
	}
}

// ApplicationWithdrawnEvent is emitted when a student withdraws an application.
type ApplicationWithdrawnEvent struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	ProjectID     string `json:"project_id"`
	StudentID     string `json:"student_id"`
	CompanyID     string `json:"company_id"`
}

// Payload implements Event interface.
func (e ApplicationWithdrawnEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"application_id": e.ApplicationID,
		"project_id":     e.ProjectID,
		"student_id":     e.StudentID,
		"company_id":     e.CompanyID,
	}
}

// NewApplicationWithdrawnEvent creates a new ApplicationWithdrawnEvent.
func NewApplicationWithdrawnEvent(applicationID, projectID, studentID, companyID string) ApplicationWithdrawnEvent {
	return ApplicationWithdrawnEvent{
		BaseEvent:     NewBaseEvent(EventApplicationWithdrawn, applicationID),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		StudentID:     studentID,
		CompanyID:     companyID,
	}
}

// PaymentRecordedEvent is emitted when payment is recorded for a completed
// application.
type PaymentRecordedEvent struct {
	BaseEvent
	ApplicationID string  `json:"application_id"`
	StudentID     string  `json:"student_id"`
	Amount        float64 `json:"amount"`
}

// Payload implements Event interface.
func (e PaymentRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"application_id": e.ApplicationID,
		"student_id":     e.StudentID,
		"amount":         e.Amount,
	}
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent.
func NewPaymentRecordedEvent(applicationID, studentID string, amount float64) PaymentRecordedEvent {
	return PaymentRecordedEvent{
		BaseEvent:     NewBaseEvent(EventPaymentRecorded, applicationID),
		ApplicationID: applicationID,
		StudentID:     studentID,
		Amount:        amount,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Curriculum Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// CurriculumCompletedEvent is emitted exactly once when every module of an
// application's project reaches 100% and the application auto-transitions
// to UnderReview.
type CurriculumCompletedEvent struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	ProjectID     string `json:"project_id"`
	ProjectTitle  string `json:"project_title"`
	StudentID     string `json:"student_id"`
	CompanyID     string `json:"company_id"`
	ModuleCount   int    `json:"module_count"`
}

// Payload implements Event interface.
func (e CurriculumCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"application_id": e.ApplicationID,
		"project_id":     e.ProjectID,
		"project_title":  e.ProjectTitle,
		"student_id":     e.StudentID,
		"company_id":     e.CompanyID,
		"module_count":   e.ModuleCount,
	}
}

// NewCurriculumCompletedEvent creates a new CurriculumCompletedEvent.
func NewCurriculumCompletedEvent(applicationID, projectID, projectTitle, studentID, companyID string, moduleCount int) CurriculumCompletedEvent {
	return CurriculumCompletedEvent{
		BaseEvent:     NewBaseEvent(EventCurriculumCompleted, applicationID),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		ProjectTitle:  projectTitle,
		StudentID:     studentID,
		CompanyID:     companyID,
		ModuleCount:   moduleCount,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Review Events
// ═══════════════════════════════════════════════════════════════════════════

// ReviewSubmittedEvent is emitted when a party submits a review of its
// counterpart on a completed application.
type ReviewSubmittedEvent struct {
	BaseEvent
	ReviewID      string  `json:"review_id"`
	ApplicationID string  `json:"application_id"`
	AuthorID      string  `json:"author_id"`
	RevieweeID    string  `json:"reviewee_id"`
	Rating        float64 `json:"rating"`
	Anonymous     bool    `json:"anonymous"`
}

// Payload implements Event interface.
func (e ReviewSubmittedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"review_id":      e.ReviewID,
		"application_id": e.ApplicationID,
		"author_id":      e.AuthorID,
		"reviewee_id":    e.RevieweeID,
		"rating":         e.Rating,
		"anonymous":      e.Anonymous,
	}
}

// NewReviewSubmittedEvent creates a new ReviewSubmittedEvent.
func NewReviewSubmittedEvent(reviewID, applicationID, authorID, revieweeID string, rating float64, anonymous bool) ReviewSubmittedEvent {
	return ReviewSubmittedEvent{
		BaseEvent:     NewBaseEvent(EventReviewSubmitted, reviewID),
		ReviewID:      reviewID,
		ApplicationID: applicationID,
		AuthorID:      authorID,
		RevieweeID:    revieweeID,
		Rating:        rating,
		Anonymous:     anonymous,
	}
}

// ReviewModeratedEvent is emitted on every moderation action.
type ReviewModeratedEvent struct {
	BaseEvent
	ReviewID   string `json:"review_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	RevieweeID string `json:"reviewee_id"`
	Action     string `json:"action"` // approve, reject, flag
	AdminID    string `json:"admin_id"`
	Anonymous  bool   `json:"anonymous"`
}

// Payload implements Event interface.
func (e ReviewModeratedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"review_id":   e.ReviewID,
		"author_id":   e.AuthorID,
		"author_name": e.AuthorName,
		"reviewee_id": e.RevieweeID,
		"action":      e.Action,
		"admin_id":    e.AdminID,
		"anonymous":   e.Anonymous,
	}
}

// NewReviewModeratedEvent creates a new ReviewModeratedEvent.
func NewReviewModeratedEvent(reviewID, authorID, authorName, revieweeID, action, adminID string, anonymous bool) ReviewModeratedEvent {
	var eventType EventType
	switch action {
	case "approve":
		eventType = EventReviewApproved
	case "reject":
		eventType = EventReviewRejected
	default:
		eventType = EventReviewFlagged
	}
	return ReviewModeratedEvent{
		BaseEvent:  NewBaseEvent(eventType, reviewID),
		ReviewID:   reviewID,
		AuthorID:   authorID,
		AuthorName: authorName,
		RevieweeID: revieweeID,
		Action:     action,
		AdminID:    adminID,
		Anonymous:  anonymous,
	}
}

// ReviewResponseAddedEvent is emitted when a reviewee adds its one-shot
// response to an approved review.
type ReviewResponseAddedEvent struct {
	BaseEvent
	ReviewID   string `json:"review_id"`
	AuthorID   string `json:"author_id"`
	RevieweeID string `json:"reviewee_id"`
}

// Payload implements Event interface.
func (e ReviewResponseAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"review_id":   e.ReviewID,
		"author_id":   e.AuthorID,
		"reviewee_id": e.RevieweeID,
	}
}

// NewReviewResponseAddedEvent creates a new ReviewResponseAddedEvent.
func NewReviewResponseAddedEvent(reviewID, authorID, revieweeID string) ReviewResponseAddedEvent {
	return ReviewResponseAddedEvent{
		BaseEvent:  NewBaseEvent(EventReviewResponseAdded, reviewID),
		ReviewID:   reviewID,
		AuthorID:   authorID,
		RevieweeID: revieweeID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Bus Contracts
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
