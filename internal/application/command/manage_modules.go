package command

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD MODULE COMMAND
// A module only fits if its weight does not push the project's total
// over the shared budget; the error quotes the remaining headroom.
// ══════════════════════════════════════════════════════════════════════════════

// AddModuleCommand contains the data to add a curriculum module.
type AddModuleCommand struct {
	// ProjectID is the target project.
	ProjectID string

	// CompanyID is the caller; must own the project.
	CompanyID string

	// Title is the module title.
	Title string

	// Description describes the expected work.
	Description string

	// Weight is the module's share of the total effort, in percent.
	Weight float64
}

// Validate validates the command.
func (c AddModuleCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("add_module: project_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("add_module: company_id is required")
	}
	if c.Title == "" {
		return errors.New("add_module: title is required")
	}
	return nil
}

// AddModuleResult contains the result of adding a module.
type AddModuleResult struct {
	ModuleID   string
	OrderIndex int

	// RemainingWeight is the unallocated budget after the addition.
	RemainingWeight float64
}

// AddModuleHandler handles the AddModuleCommand.
type AddModuleHandler struct {
	uow   UnitOfWork
	idGen IDGenerator
}

// NewAddModuleHandler creates a new AddModuleHandler.
func NewAddModuleHandler(uow UnitOfWork, idGen IDGenerator) *AddModuleHandler {
	return &AddModuleHandler{uow: uow, idGen: idGen}
}

// Handle executes the add module command. The project row lock serializes
// concurrent additions so the weight budget cannot be oversubscribed.
func (h *AddModuleHandler) Handle(ctx context.Context, cmd AddModuleCommand) (*AddModuleResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("project", "AddModule", shared.ErrValidation, err.Error())
	}

	var result AddModuleResult
	err := h.uow.Do(ctx, func(r TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(cmd.CompanyID) {
			return shared.ErrNotProjectOwner
		}

		modules, err := r.Modules.ListByProject(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if err := modules.ValidateWeight(cmd.Weight); err != nil {
			return err
		}

		m, err := project.NewModule(project.NewModuleParams{
			ID:          h.idGen.GenerateID(),
			ProjectID:   cmd.ProjectID,
			Title:       cmd.Title,
			Description: cmd.Description,
			Weight:      cmd.Weight,
			OrderIndex:  modules.NextOrderIndex(),
		})
		if err != nil {
			return err
		}

		if err := r.Modules.Create(ctx, m); err != nil {
			return err
		}

		result = AddModuleResult{
			ModuleID:        m.ID,
			OrderIndex:      m.OrderIndex,
			RemainingWeight: modules.RemainingWeight() - m.Weight,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE MODULE COMMAND
// A module with recorded progress is load-bearing for running
// applications and cannot be removed.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteModuleCommand contains the data to delete a module.
type DeleteModuleCommand struct {
	// ProjectID is the owning project.
	ProjectID string

	// ModuleID is the module to delete.
	ModuleID string

	// CompanyID is the caller; must own the project.
	CompanyID string
}

// Validate validates the command.
func (c DeleteModuleCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("delete_module: project_id is required")
	}
	if c.ModuleID == "" {
		return errors.New("delete_module: module_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("delete_module: company_id is required")
	}
	return nil
}

// DeleteModuleHandler handles the DeleteModuleCommand.
type DeleteModuleHandler struct {
	uow UnitOfWork
}

// NewDeleteModuleHandler creates a new DeleteModuleHandler.
func NewDeleteModuleHandler(uow UnitOfWork) *DeleteModuleHandler {
	return &DeleteModuleHandler{uow: uow}
}

// Handle executes the delete module command. Remaining modules are
// renumbered so order indexes stay contiguous.
func (h *DeleteModuleHandler) Handle(ctx context.Context, cmd DeleteModuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("project", "DeleteModule", shared.ErrValidation, err.Error())
	}

	return h.uow.Do(ctx, func(r TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(cmd.CompanyID) {
			return shared.ErrNotProjectOwner
		}

		m, err := r.Modules.GetByID(ctx, cmd.ModuleID)
		if err != nil {
			return err
		}
		if m.ProjectID != cmd.ProjectID {
			return shared.ErrModuleNotFound
		}

		inUse, err := r.Modules.HasProgress(ctx, cmd.ModuleID)
		if err != nil {
			return err
		}
		if inUse {
			return shared.ErrModuleInUse
		}

		if err := r.Modules.Delete(ctx, cmd.ModuleID); err != nil {
			return err
		}

		// Close the gap in the ordering.
		modules, err := r.Modules.ListByProject(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		for i, sibling := range modules {
			if sibling.OrderIndex != i+1 {
				sibling.OrderIndex = i + 1
				if err := r.Modules.Update(ctx, sibling); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REORDER MODULES COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// ReorderModulesCommand assigns a new curriculum order.
type ReorderModulesCommand struct {
	// ProjectID is the target project.
	ProjectID string

	// CompanyID is the caller; must own the project.
	CompanyID string

	// ModuleIDs is the full set of the project's module IDs in the new
	// order.
	ModuleIDs []string
}

// Validate validates the command.
func (c ReorderModulesCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("reorder_modules: project_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("reorder_modules: company_id is required")
	}
	if len(c.ModuleIDs) == 0 {
		return errors.New("reorder_modules: module_ids are required")
	}
	return nil
}

// ReorderModulesHandler handles the ReorderModulesCommand.
type ReorderModulesHandler struct {
	uow UnitOfWork
}

// NewReorderModulesHandler creates a new ReorderModulesHandler.
func NewReorderModulesHandler(uow UnitOfWork) *ReorderModulesHandler {
	return &ReorderModulesHandler{uow: uow}
}

// Handle executes the reorder modules command. The given IDs must be a
// permutation of the project's current modules.
func (h *ReorderModulesHandler) Handle(ctx context.Context, cmd ReorderModulesCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("project", "ReorderModules", shared.ErrValidation, err.Error())
	}

	return h.uow.Do(ctx, func(r TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(cmd.CompanyID) {
			return shared.ErrNotProjectOwner
		}

		modules, err := r.Modules.ListByProject(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if len(modules) != len(cmd.ModuleIDs) {
			return shared.NewDomainError("project", "ReorderModules", shared.ErrValidation,
				"module ids must cover the full curriculum")
		}

		byID := make(map[string]*project.Module, len(modules))
		for _, m := range modules {
			byID[m.ID] = m
		}

		for i, id := range cmd.ModuleIDs {
			m, ok := byID[id]
			if !ok {
				return shared.ErrModuleNotFound
			}
			delete(byID, id)
			if m.OrderIndex != i+1 {
				m.OrderIndex = i + 1
				if err := r.Modules.Update(ctx, m); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
