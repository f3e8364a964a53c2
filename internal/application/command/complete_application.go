package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE APPLICATION COMMAND
// The company's final sign-off on an under-review application. Completion
// is the gate that unlocks mutual reviews and payment.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteApplicationCommand contains the sign-off data.
type CompleteApplicationCommand struct {
	// ApplicationID is the application to complete.
	ApplicationID string

	// CompanyID is the caller; must own the application's project.
	CompanyID string
}

// Validate validates the command.
func (c CompleteApplicationCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("complete_application: application_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("complete_application: company_id is required")
	}
	return nil
}

// CompleteApplicationHandler handles the CompleteApplicationCommand.
type CompleteApplicationHandler struct {
	uow UnitOfWork
}

// NewCompleteApplicationHandler creates a new CompleteApplicationHandler.
func NewCompleteApplicationHandler(uow UnitOfWork) *CompleteApplicationHandler {
	return &CompleteApplicationHandler{uow: uow}
}

// Handle executes the complete application command.
func (h *CompleteApplicationHandler) Handle(ctx context.Context, cmd CompleteApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("application", "Complete", shared.ErrValidation, err.Error())
	}

	return h.uow.Do(ctx, func(r TxRepos) error {
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

		if err := app.Complete(); err != nil {
			return err
		}
		return r.Applications.Update(ctx, app)
	})
}
