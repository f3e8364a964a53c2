package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLY COMMAND
// Submits a student's application to a project. The project row lock
// serializes cap accounting: two concurrent applications against the last
// remaining slot cannot both pass the gate.
// ══════════════════════════════════════════════════════════════════════════════

// ApplyCommand contains the data to apply to a project.
type ApplyCommand struct {
	// ProjectID is the project applied to.
	ProjectID string

	// StudentID is the applying student.
	StudentID string

	// BidAmount is the student's proposed price.
	BidAmount float64

	// Proposal is the student's pitch text.
	Proposal string

	// DurationDays is the student's proposed duration.
	DurationDays int
}

// Validate validates the command.
func (c ApplyCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("apply: project_id is required")
	}
	if c.StudentID == "" {
		return errors.New("apply: student_id is required")
	}
	if strings.TrimSpace(c.Proposal) == "" {
		return errors.New("apply: proposal is required")
	}
	return nil
}

// ApplyResult contains the result of applying.
type ApplyResult struct {
	ApplicationID string
	Status        application.Status
	AppliedAt     time.Time
}

// ApplyHandler handles the ApplyCommand.
type ApplyHandler struct {
	uow            UnitOfWork
	idGen          IDGenerator
	eventPublisher shared.EventPublisher
}

// NewApplyHandler creates a new ApplyHandler.
func NewApplyHandler(uow UnitOfWork, idGen IDGenerator, eventPublisher shared.EventPublisher) *ApplyHandler {
	return &ApplyHandler{
		uow:            uow,
		idGen:          idGen,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the apply command.
func (h *ApplyHandler) Handle(ctx context.Context, cmd ApplyCommand) (*ApplyResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("application", "Apply", shared.ErrValidation, err.Error())
	}

	var (
		result ApplyResult
		event  shared.ApplicationSubmittedEvent
	)

	err := h.uow.Do(ctx, func(r TxRepos) error {
		// Lock the project row first: the applicant cap and the counter
		// are checked and mutated under this lock.
		p, err := r.Projects.GetByIDForUpdate(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}

		student, err := r.Students.GetByID(ctx, cmd.StudentID)
		if err != nil {
			return err
		}

		// Skill gate: the student must cover every required skill.
		if missing := student.MissingSkills(p.RequiredSkills); len(missing) > 0 {
			names := make([]string, len(missing))
			for i, s := range missing {
				names[i] = s.String()
			}
			return shared.NewDomainError("application", "Apply", shared.ErrValidation,
				fmt.Sprintf("missing required skills: %s", strings.Join(names, ", ")))
		}

		// Project gates: visibility, status, deadline, cap.
		if err := p.AcceptsApplicationAt(time.Now().UTC()); err != nil {
			return err
		}

		app, err := application.NewApplication(application.NewApplicationParams{
			ID:           h.idGen.GenerateID(),
			ProjectID:    cmd.ProjectID,
			StudentID:    cmd.StudentID,
			BidAmount:    shared.Money(cmd.BidAmount),
			Proposal:     cmd.Proposal,
			DurationDays: cmd.DurationDays,
		})
		if err != nil {
			return err
		}

		// The unique (project, student) constraint backs this check
		// against rows committed between read and write.
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}

		p.IncrementApplications()
		if err := r.Projects.Update(ctx, p); err != nil {
			return err
		}

		result = ApplyResult{
			ApplicationID: app.ID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
		}
		event = shared.NewApplicationSubmittedEvent(app.ID, p.ID, student.ID, p.CompanyID, cmd.BidAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Publish only after commit so observers never see a rolled-back
	// application.
	_ = h.eventPublisher.Publish(event)

	return &result, nil
}
