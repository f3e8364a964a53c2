package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROGRESS COMMAND
// Records a student's completion percentage on one curriculum module and
// re-derives the application's overall completion. When every module of
// the curriculum reaches 100%, the application auto-transitions to
// under-review in the same transaction as the progress write.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProgressCommand contains a progress update.
type UpdateProgressCommand struct {
	// ApplicationID is the application being worked.
	ApplicationID string

	// StudentID is the caller; must own the application.
	StudentID string

	// ModuleID is the curriculum module being updated.
	ModuleID string

	// Percentage is the new completion percentage in [0, 100].
	Percentage float64

	// Note is the student's free-text note on the update.
	Note string
}

// Validate validates the command.
func (c UpdateProgressCommand) Validate() error {
	if c.ApplicationID == "" {
		return errors.New("update_progress: application_id is required")
	}
	if c.StudentID == "" {
		return errors.New("update_progress: student_id is required")
	}
	if c.ModuleID == "" {
		return errors.New("update_progress: module_id is required")
	}
	return nil
}

// UpdateProgressResult contains the result of a progress update.
type UpdateProgressResult struct {
	// OverallCompletion is the weight-proportional completion of the
	// whole curriculum after the update, rounded to two decimals.
	OverallCompletion float64

	// CompletedModules and TotalModules summarize module coverage.
	CompletedModules int
	TotalModules     int

	// Transitioned is true when this update completed the curriculum
	// and moved the application to under-review.
	Transitioned bool

	// Status is the application status after the update.
	Status application.Status
}

// UpdateProgressHandler handles the UpdateProgressCommand.
type UpdateProgressHandler struct {
	uow            UnitOfWork
	idGen          IDGenerator
	eventPublisher shared.EventPublisher
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler.
func NewUpdateProgressHandler(uow UnitOfWork, idGen IDGenerator, eventPublisher shared.EventPublisher) *UpdateProgressHandler {
	return &UpdateProgressHandler{
		uow:            uow,
		idGen:          idGen,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the update progress command.
func (h *UpdateProgressHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) (*UpdateProgressResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("application", "UpdateProgress", shared.ErrValidation, err.Error())
	}

	pct, err := shared.NewPercent(cmd.Percentage)
	if err != nil {
		return nil, err
	}

	var (
		result    UpdateProgressResult
		completed *shared.CurriculumCompletedEvent
	)

	err = h.uow.Do(ctx, func(r TxRepos) error {
		app, err := r.Applications.GetByID(ctx, cmd.ApplicationID)
		if err != nil {
			return err
		}
		if !app.IsOwnedBy(cmd.StudentID) {
			return shared.ErrNotApplicationOwner
		}
		if !app.Status.IsExecutable() {
			return shared.ErrApplicationNotExecutable
		}

		module, err := r.Modules.GetByID(ctx, cmd.ModuleID)
		if err != nil {
			return err
		}
		if module.ProjectID != app.ProjectID {
			return shared.ErrModuleNotInProject
		}

		// Lazily create the record on first touch.
		record, err := r.Progress.Get(ctx, app.ID, module.ID)
		if err != nil {
			if !shared.IsNotFound(err) {
				return err
			}
			record = application.NewModuleProgress(h.idGen.GenerateID(), app.ID, module.ID)
		}

		if err := record.SetPercentage(pct, cmd.Note); err != nil {
			return err
		}
		if err := r.Progress.Upsert(ctx, record); err != nil {
			return err
		}

		// First recorded progress marks the module active.
		if module.Status == project.ModuleStatusPlanned {
			module.Status = project.ModuleStatusActive
			if err := r.Modules.Update(ctx, module); err != nil {
				return err
			}
		}

		modules, err := r.Modules.ListByProject(ctx, app.ProjectID)
		if err != nil {
			return err
		}
		records, err := r.Progress.ListByApplication(ctx, app.ID)
		if err != nil {
			return err
		}
		sheet := application.NewProgressSheet(app.ID, modules, records)

		result = UpdateProgressResult{
			OverallCompletion: sheet.OverallCompletion(),
			CompletedModules:  sheet.CompletedCount(),
			TotalModules:      sheet.TotalCount(),
			Status:            app.Status,
		}

		// Auto-transition on total coverage. MarkUnderReview is
		// idempotent: a repeated 100% write on an already under-review
		// application is a no-op rather than an error.
		if sheet.IsFullyCompleted() {
			transitioned, err := app.MarkUnderReview()
			if err != nil {
				return err
			}
			if transitioned {
				if err := r.Applications.Update(ctx, app); err != nil {
					return err
				}
				p, err := r.Projects.GetByID(ctx, app.ProjectID)
				if err != nil {
					return err
				}
				ev := shared.NewCurriculumCompletedEvent(
					app.ID, p.ID, p.Title, app.StudentID, p.CompanyID, sheet.TotalCount())
				completed = &ev
				result.Transitioned = true
			}
			result.Status = app.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed != nil {
		_ = h.eventPublisher.Publish(*completed)
	}

	return &result, nil
}
