package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD PAYMENT COMMAND
// Sets the one-way paid flag on a completed application. A second
// payment attempt fails; the flag never unwinds.
// ══════════════════════════════════════════════════════════════════════════════

// RecordPaymentCommand contains the payment data.
type RecordPaymentCommand struct {
	// ApplicationID is the completed application being paid.
	ApplicationID string

	// CompanyID is the caller; must own the application's project.
	CompanyID string
}

// Validate validates the command.
func (c RecordPaymentCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("record_payment: application_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("record_payment: company_id is required")
	}
	return nil
}

// RecordPaymentHandler handles the RecordPaymentCommand.
type RecordPaymentHandler struct {
	uow            UnitOfWork
	eventPublisher shared.EventPublisher
}

// NewRecordPaymentHandler creates a new RecordPaymentHandler.
func NewRecordPaymentHandler(uow UnitOfWork, eventPublisher shared.EventPublisher) *RecordPaymentHandler {
	return &RecordPaymentHandler{uow: uow, eventPublisher: eventPublisher}
}

// Handle executes the record payment command.
func (h *RecordPaymentHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("application", "RecordPayment", shared.ErrValidation, err.Error())
	}

	var event shared.PaymentRecordedEvent

	err := h.uow.Do(ctx, func(r TxRepos) error {
		app, err := r.Applications.GetByID(ctx, cmd.ApplicationID)
		if err != nil {
			return err
		}

		p, err := r.Projects.GetByID(ctx, app.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(cmd.CompanyID) {
			return shared.ErrNotProjectOwner
		}

		if err := app.RecordPayment(); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, app); err != nil {
			return err
		}

		event = shared.NewPaymentRecordedEvent(app.ID, app.StudentID, app.BidAmount.Float64())
		return nil
	})
	if err != nil {
		return err
	}

	_ = h.eventPublisher.Publish(event)
	return nil
}
