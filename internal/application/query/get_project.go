// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROJECT QUERY
// Returns a project together with its curriculum and the unallocated
// share of the weight budget.
// ══════════════════════════════════════════════════════════════════════════════

// GetProjectQuery contains the project lookup parameters.
type GetProjectQuery struct {
	// ProjectID is the project to fetch.
	ProjectID string
}

// Validate validates the query parameters.
func (q GetProjectQuery) Validate() error {
	if q.ProjectID == "" {
		return errors.New("project_id is required")
	}
	return nil
}

// ModuleDTO is one curriculum module.
type ModuleDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
	OrderIndex  int     `json:"order_index"`
	Status      string  `json:"status"`
}

// ProjectDTO is the project read model.
type ProjectDTO struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	Visible          bool       `json:"visible"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ApplicantCap     int        `json:"applicant_cap"`
	ApplicationCount int        `json:"application_count"`
	BudgetMin        float64    `json:"budget_min"`
	BudgetMax        float64    `json:"budget_max"`
	RequiredSkills   []string   `json:"required_skills"`
	CreatedAt        time.Time  `json:"created_at"`
}

// GetProjectResult contains the project with its curriculum.
type GetProjectResult struct {
	Project         ProjectDTO  `json:"project"`
	Modules         []ModuleDTO `json:"modules"`
	AllocatedWeight float64     `json:"allocated_weight"`
	RemainingWeight float64     `json:"remaining_weight"`
}

// GetProjectHandler handles the GetProjectQuery.
type GetProjectHandler struct {
	projectRepo project.Repository
	moduleRepo  project.ModuleRepository
}

// NewGetProjectHandler creates a new GetProjectHandler.
func NewGetProjectHandler(projectRepo project.Repository, moduleRepo project.ModuleRepository) *GetProjectHandler {
	return &GetProjectHandler{
		projectRepo: projectRepo,
		moduleRepo:  moduleRepo,
	}
}

// Handle executes the get project query.
func (h *GetProjectHandler) Handle(ctx context.Context, query GetProjectQuery) (*GetProjectResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.NewDomainError("query", "GetProject", shared.ErrValidation, err.Error())
	}

	p, err := h.projectRepo.GetByID(ctx, query.ProjectID)
	if err != nil {
		return nil, err
	}

	modules, err := h.moduleRepo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ModuleDTO, len(modules))
	for i, m := range modules {
		dtos[i] = toModuleDTO(m)
	}

	return &GetProjectResult{
		Project:         toProjectDTO(p),
		Modules:         dtos,
		AllocatedWeight: modules.WeightSum(),
		RemainingWeight: modules.RemainingWeight(),
	}, nil
}

func toProjectDTO(p *project.Project) ProjectDTO {
	skills := make([]string, len(p.RequiredSkills))
	for i, s := range p.RequiredSkills {
		skills[i] = string(s)
	}

	dto := ProjectDTO{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		Title:            p.Title,
		Description:      p.Description,
		Status:           string(p.Status),
		Visible:          p.Visible,
		ApplicantCap:     p.ApplicantCap,
		ApplicationCount: p.ApplicationCount,
		BudgetMin:        p.BudgetMin.Float64(),
		BudgetMax:        p.BudgetMax.Float64(),
		RequiredSkills:   skills,
		CreatedAt:        p.CreatedAt,
	}
	if !p.Deadline.IsZero() {
		deadline := p.Deadline
		dto.Deadline = &deadline
	}
	return dto
}

func toModuleDTO(m *project.Module) ModuleDTO {
	return ModuleDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Weight:      m.Weight,
		OrderIndex:  m.OrderIndex,
		Status:      string(m.Status),
	}
}
