package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW APPLICATION COMMAND
// The company's accept/reject decision on a pending application.
// ══════════════════════════════════════════════════════════════════════════════

// ReviewApplicationCommand contains the company's decision.
type ReviewApplicationCommand struct {
	// ApplicationID is the application being decided.
	ApplicationID string

	// CompanyID is the caller; must own the application's project.
	CompanyID string

	// Accept records acceptance when true, rejection when false.
	Accept bool

	// Note is the company's optional note on the decision.
	Note string
}

// Validate validates the command.
func (c ReviewApplicationCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("review_application: application_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("review_application: company_id is required")
	}
	return nil
}

// ReviewApplicationHandler handles the ReviewApplicationCommand.
type ReviewApplicationHandler struct {
	uow            UnitOfWork
	eventPublisher shared.EventPublisher
}

// NewReviewApplicationHandler creates a new ReviewApplicationHandler.
func NewReviewApplicationHandler(uow UnitOfWork, eventPublisher shared.EventPublisher) *ReviewApplicationHandler {
	return &ReviewApplicationHandler{uow: uow, eventPublisher: eventPublisher}
}

// Handle executes the review application command.
func (h *ReviewApplicationHandler) Handle(ctx context.Context, cmd ReviewApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("application", "Review", shared.ErrValidation, err.Error())
	}

	var event shared.ApplicationDecidedEvent

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

		if cmd.Accept {
			err = app.Accept(cmd.CompanyID, cmd.Note)
		} else {
			err = app.Reject(cmd.CompanyID, cmd.Note)
		}
		if err != nil {
			return err
		}

		if err := r.Applications.Update(ctx, app); err != nil {
			return err
		}

		event = shared.NewApplicationDecidedEvent(app.ID, p.ID, p.Title, app.StudentID, cmd.Accept, cmd.Note)
		return nil
	})
	if err != nil {
		return err
	}

	_ = h.eventPublisher.Publish(event)
	return nil
}
