package project

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ═══════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for projects.
type Repository interface {
	// Create stores a new project.
	Create(ctx context.Context, project *Project) error

	// GetByID returns a project by ID.
	// Returns shared.ErrProjectNotFound if absent.
	GetByID(ctx context.Context, id string) (*Project, error)

	// GetByIDForUpdate returns a project with its row locked for the
	// duration of the enclosing transaction. Apply and Withdraw use this
	// to serialize application-counter mutations against the same project.
	GetByIDForUpdate(ctx context.Context, id string) (*Project, error)

	// ListByCompany returns all projects owned by a company.
	ListByCompany(ctx context.Context, companyID string) ([]*Project, error)

	// ListActiveExpired returns active projects whose deadline lies before
	// the cutoff. The deadline sweep closes them.
	ListActiveExpired(ctx context.Context, cutoff time.Time) ([]*Project, error)

	// Update persists changes to a project.
	Update(ctx context.Context, project *Project) error

	// Delete removes a project and cascades to its applications.
	// Privileged force-delete only.
	Delete(ctx context.Context, id string) error
}

// ModuleRepository defines storage operations for curriculum modules.
type ModuleRepository interface {
	// Create stores a new module.
	Create(ctx context.Context, module *Module) error

	// GetByID returns a module by ID.
	// Returns shared.ErrModuleNotFound if absent.
	GetByID(ctx context.Context, id string) (*Module, error)

	// ListByProject returns all modules of a project ordered by OrderIndex.
	ListByProject(ctx context.Context, projectID string) (Modules, error)

	// Update persists changes to a module.
	Update(ctx context.Context, module *Module) error

	// Delete removes a module. Callers must first verify no progress
	// record references it.
	Delete(ctx context.Context, id string) error

	// HasProgress reports whether any application progress record
	// references the module.
	HasProgress(ctx context.Context, moduleID string) (bool, error)
}
