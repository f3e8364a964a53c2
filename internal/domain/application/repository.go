package application

import (
	"context"
)

// ═══════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ═══════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for applications.
type Repository interface {
	// Create stores a new application.
	Create(ctx context.Context, app *Application) error

	// GetByID returns an application by ID.
	// Returns shared.ErrApplicationNotFound if absent.
	GetByID(ctx context.Context, id string) (*Application, error)

	// GetByProjectAndStudent returns the unique application of a student
	// on a project. Returns shared.ErrApplicationNotFound if absent.
	GetByProjectAndStudent(ctx context.Context, projectID, studentID string) (*Application, error)

	// ListByStudent returns all applications of a student, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*Application, error)

	// ListByProject returns all applications on a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*Application, error)

	// Update persists changes to an application.
	Update(ctx context.Context, app *Application) error

	// DeleteByProject removes all applications of a project. Used only by
	// the privileged project force-delete.
	DeleteByProject(ctx context.Context, projectID string) error
}

// ProgressRepository defines storage operations for module progress records.
type ProgressRepository interface {
	// Get returns the progress record for (application, module).
	// Returns shared.ErrNotFound if no record exists yet.
	Get(ctx context.Context, applicationID, moduleID string) (*ModuleProgress, error)

	// ListByApplication returns all progress records of an application.
	ListByApplication(ctx context.Context, applicationID string) ([]*ModuleProgress, error)

	// Upsert creates or updates the unique (application, module) record.
	Upsert(ctx context.Context, progress *ModuleProgress) error
}
