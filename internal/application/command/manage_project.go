package command

import (
	"context"
	"errors"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE PROJECT COMMAND
// Projects start in Draft: invisible to students until activated.
// ══════════════════════════════════════════════════════════════════════════════

// CreateProjectCommand contains the data to create a project.
type CreateProjectCommand struct {
	// CompanyID is the owning company.
	CompanyID string

	// Title is the project title.
	Title string

	// Description is the project brief.
	Description string

	// Deadline is the application deadline; zero means none.
	Deadline time.Time

	// ApplicantCap caps concurrent applications (0 = unlimited).
	ApplicantCap int

	// BudgetMin and BudgetMax bound acceptable bids.
	BudgetMin float64
	BudgetMax float64

	// RequiredSkills lists the skills an applicant must cover.
	RequiredSkills []string
}

// Validate validates the command.
func (c CreateProjectCommand) Validate() error {
	if c.CompanyID == "" {
		return errors.New("create_project: company_id is required")
	}
	if c.Title == "" {
		return errors.New("create_project: title is required")
	}
	return nil
}

// CreateProjectResult contains the result of creating a project.
type CreateProjectResult struct {
	ProjectID string
	Status    project.Status
}

// CreateProjectHandler handles the CreateProjectCommand.
type CreateProjectHandler struct {
	projectRepo  project.Repository
	companyRepo  account.CompanyRepository
	skillCatalog account.SkillCatalog
	idGen        IDGenerator
}

// NewCreateProjectHandler creates a new CreateProjectHandler.
func NewCreateProjectHandler(
	projectRepo project.Repository,
	companyRepo account.CompanyRepository,
	skillCatalog account.SkillCatalog,
	idGen IDGenerator,
) *CreateProjectHandler {
	return &CreateProjectHandler{
		projectRepo:  projectRepo,
		companyRepo:  companyRepo,
		skillCatalog: skillCatalog,
		idGen:        idGen,
	}
}

// Handle executes the create project command.
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd CreateProjectCommand) (*CreateProjectResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("project", "Create", shared.ErrValidation, err.Error())
	}

	if _, err := h.companyRepo.GetByID(ctx, cmd.CompanyID); err != nil {
		return nil, err
	}

	// Required skills must exist in the catalog.
	skills := make([]shared.SkillName, 0, len(cmd.RequiredSkills))
	for _, raw := range cmd.RequiredSkills {
		name := shared.SkillName(raw).Normalize()
		if _, err := h.skillCatalog.GetByName(ctx, name); err != nil {
			return nil, err
		}
		skills = append(skills, name)
	}

	p, err := project.NewProject(project.NewProjectParams{
		ID:             h.idGen.GenerateID(),
		CompanyID:      cmd.CompanyID,
		Title:          cmd.Title,
		Description:    cmd.Description,
		Deadline:       cmd.Deadline,
		ApplicantCap:   cmd.ApplicantCap,
		BudgetMin:      shared.Money(cmd.BudgetMin),
		BudgetMax:      shared.Money(cmd.BudgetMax),
		RequiredSkills: skills,
	})
	if err != nil {
		return nil, err
	}

	if err := h.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return &CreateProjectResult{ProjectID: p.ID, Status: p.Status}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SET PROJECT STATUS COMMAND
// Activate opens the project for applications; Close stops it.
// ══════════════════════════════════════════════════════════════════════════════

// SetProjectStatusCommand activates or closes a project.
type SetProjectStatusCommand struct {
	// ProjectID is the target project.
	ProjectID string

	// CompanyID is the caller; must own the project.
	CompanyID string

	// Activate opens the project when true, closes it when false.
	Activate bool
}

// Validate validates the command.
func (c SetProjectStatusCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("set_project_status: project_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("set_project_status: company_id is required")
	}
	return nil
}

// SetProjectStatusHandler handles the SetProjectStatusCommand.
type SetProjectStatusHandler struct {
	projectRepo project.Repository
}

// NewSetProjectStatusHandler creates a new SetProjectStatusHandler.
func NewSetProjectStatusHandler(projectRepo project.Repository) *SetProjectStatusHandler {
	return &SetProjectStatusHandler{projectRepo: projectRepo}
}

// Handle executes the set project status command.
func (h *SetProjectStatusHandler) Handle(ctx context.Context, cmd SetProjectStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("project", "SetStatus", shared.ErrValidation, err.Error())
	}

	p, err := h.projectRepo.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		return err
	}
	if !p.IsOwnedBy(cmd.CompanyID) {
		return shared.ErrNotProjectOwner
	}

	if cmd.Activate {
		if err := p.Activate(); err != nil {
			return err
		}
	} else {
		p.Close()
	}

	return h.projectRepo.Update(ctx, p)
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PROJECT COMMAND
// Privileged force-delete: removes the project and cascades to its
// applications and modules.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteProjectCommand force-deletes a project.
type DeleteProjectCommand struct {
	// ProjectID is the target project.
	ProjectID string

	// CompanyID is the caller; must own the project.
	CompanyID string
}

// Validate validates the command.
func (c DeleteProjectCommand) Validate() error {
	if c.ProjectID == "" {
		return errors.New("delete_project: project_id is required")
	}
	if c.CompanyID == "" {
		return errors.New("delete_project: company_id is required")
	}
	return nil
}

// DeleteProjectHandler handles the DeleteProjectCommand.
type DeleteProjectHandler struct {
	uow UnitOfWork
}

// NewDeleteProjectHandler creates a new DeleteProjectHandler.
func NewDeleteProjectHandler(uow UnitOfWork) *DeleteProjectHandler {
	return &DeleteProjectHandler{uow: uow}
}

// Handle executes the delete project command.
func (h *DeleteProjectHandler) Handle(ctx context.Context, cmd DeleteProjectCommand) error {
	if err := cmd.Validate(); err != nil {
		return shared.NewDomainError("project", "Delete", shared.ErrValidation, err.Error())
	}

	return h.uow.Do(ctx, func(r TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(cmd.CompanyID) {
			return shared.ErrNotProjectOwner
		}

		if err := r.Applications.DeleteByProject(ctx, cmd.ProjectID); err != nil {
			return err
		}
		return r.Projects.Delete(ctx, cmd.ProjectID)
	})
}
