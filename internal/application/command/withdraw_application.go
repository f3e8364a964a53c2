package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// WITHDRAW APPLICATION COMMAND
// Student-initiated exit, legal while pending or under review. The
// project counter is decremented under the same row lock that guarded
// the increment, so cap accounting stays exact.
// ══════════════════════════════════════════════════════════════════════════════

// WithdrawApplicationCommand contains the data to withdraw an application.
type WithdrawApplicationCommand struct {
	// ApplicationID is the application to withdraw.
	ApplicationID string

	// StudentID is the caller; must own the application.
	StudentID string
}

// Validate validates the command.
func (c WithdrawApplicationCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("withdraw_application: application_id is required")
	}
	if c.StudentID == "" {
		return errors.New("withdraw_application: student_id is required")
	}
	return nil
}

// WithdrawApplicationHandler handles the WithdrawApplicationCommand.
type WithdrawApplicationHandler struct {
	uow            UnitOfWork
	eventPublisher shared.EventPublisher
}

// NewWithdrawApplicationHandler creates a new WithdrawApplicationHandler.
func NewWithdrawApplicationHandler(uow UnitOfWork, eventPublisher shared.EventPublisher) *WithdrawApplicationHandler {
	return &WithdrawApplicationHandler{uow: uow, eventPublisher: eventPublisher}
}

// Handle executes the withdraw application command.
func (h *WithdrawApplicationHandler) Handle(ctx context.Context, cmd WithdrawApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("application", "Withdraw", shared.ErrValidation, err.Error())
	}

	var event shared.ApplicationWithdrawnEvent

	err := h.uow.Do(ctx, func(r TxRepos) error {
		app, err := r.Applications.GetByID(ctx, cmd.ApplicationID)
		if err != nil {
			return err
		}
		if !app.IsOwnedBy(cmd.StudentID) {
			return shared.ErrNotApplicationOwner
		}

		p, err := r.Projects.GetByIDForUpdate(ctx, app.ProjectID)
		if err != nil {
			return err
		}

		if err := app.Withdraw(); err != nil {
			return err
		}
		if err := r.Applications.Update(ctx, app); err != nil {
			return err
		}

		p.DecrementApplications()
		if err := r.Projects.Update(ctx, p); err != nil {
			return err
		}

		event = shared.NewApplicationWithdrawnEvent(app.ID, p.ID, app.StudentID, p.CompanyID)
		return nil
	})
	if err != nil {
		return err
	}

	_ = h.eventPublisher.Publish(event)
	return nil
}
