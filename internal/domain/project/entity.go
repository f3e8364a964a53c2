// Package project contains the project aggregate: a company-posted unit of
// work students apply to, together with its weighted curriculum modules and
// required skills.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ENUMS
// ═══════════════════════════════════════════════════════════════════════════

// Status defines the lifecycle status of a project.
type Status string

const (
	// StatusDraft - project is being prepared and is not visible yet.
	StatusDraft Status = "draft"
	// StatusActive - project accepts applications.
	StatusActive Status = "active"
	// StatusClosed - project no longer accepts applications.
	StatusClosed Status = "closed"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	default:
		return false
	}
}

// ModuleStatus defines the lifecycle status of a curriculum module.
type ModuleStatus string

const (
	// ModuleStatusPlanned - module defined but work has not started anywhere.
	ModuleStatusPlanned ModuleStatus = "planned"
	// ModuleStatusActive - at least one application records progress on it.
	ModuleStatusActive ModuleStatus = "active"
)

// ═══════════════════════════════════════════════════════════════════════════
// PROJECT ENTITY
// ═══════════════════════════════════════════════════════════════════════════

// Project represents a company-posted opportunity.
type Project struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// CompanyID references the owning company.
	CompanyID string

	// Title is the project title.
	Title string

	// Description is the project brief.
	Description string

	// Status is the current lifecycle status.
	Status Status

	// Visible controls whether students can see and apply to the project.
	Visible bool

	// Deadline is the application deadline.
	Deadline time.Time

	// ApplicantCap is the maximum number of open applications (0 = unlimited).
	ApplicantCap int

	// ApplicationCount is the current number of non-withdrawn applications.
	// Mutated only under the project row lock, in the same transaction as
	// the application row it accounts for.
	ApplicationCount int

	// BudgetMin and BudgetMax bound acceptable bids.
	BudgetMin shared.Money
	BudgetMax shared.Money

	// RequiredSkills is the set of skills an applicant must cover.
	RequiredSkills []shared.SkillName

	// CreatedAt is when the project was created.
	CreatedAt time.Time

	// UpdatedAt is when the project was last modified.
	UpdatedAt time.Time
}

// NewProjectParams contains parameters for creating a project.
type NewProjectParams struct {
	ID             string
	CompanyID      string
	Title          string
	Description    string
	Deadline       time.Time
	ApplicantCap   int
	BudgetMin      shared.Money
	BudgetMax      shared.Money
	RequiredSkills []shared.SkillName
}

// NewProject creates a new project in Draft status with validation.
func NewProject(params NewProjectParams) (*Project, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrEmptyValue, "project id is required")
	}
	if params.CompanyID == "" {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrEmptyValue, "company id is required")
	}
	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrInvalidInput, "project title must be 1-200 chars")
	}
	if params.ApplicantCap < 0 {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrValueOutOfRange, "applicant cap cannot be negative")
	}
	if !params.BudgetMin.IsValid() || !params.BudgetMax.IsValid() {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrValueOutOfRange, "budget cannot be negative")
	}
	if params.BudgetMax > 0 && params.BudgetMin > params.BudgetMax {
		return nil, shared.NewDomainError("project", "NewProject", shared.ErrInvalidInput, "budget minimum exceeds maximum")
	}

	skills := make([]shared.SkillName, 0, len(params.RequiredSkills))
	for _, s := range params.RequiredSkills {
		norm := s.Normalize()
		if !norm.IsValid() {
			return nil, shared.NewDomainError("project", "NewProject", shared.ErrInvalidInput, "invalid required skill name")
		}
		skills = append(skills, norm)
	}

	now := time.Now().UTC()
	return &Project{
		ID:             params.ID,
		CompanyID:      params.CompanyID,
		Title:          title,
		Description:    strings.TrimSpace(params.Description),
		Status:         StatusDraft,
		Visible:        false,
		Deadline:       params.Deadline,
		ApplicantCap:   params.ApplicantCap,
		BudgetMin:      params.BudgetMin,
		BudgetMax:      params.BudgetMax,
		RequiredSkills: skills,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsOwnedBy reports whether the given company owns this project.
func (p *Project) IsOwnedBy(companyID string) bool {
	return p.CompanyID == companyID
}

// Activate makes the project visible and open for applications.
func (p *Project) Activate() error {
	if p.Status == StatusClosed {
		return shared.NewDomainError("project", "Activate", shared.ErrStateTransition, "closed project cannot be reactivated")
	}
	p.Status = StatusActive
	p.Visible = true
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Close stops the project from accepting applications.
func (p *Project) Close() {
	p.Status = StatusClosed
	p.UpdatedAt = time.Now().UTC()
}

// AcceptsApplicationAt checks all application gates: visibility, status,
// deadline, and applicant cap. Returns a typed validation error naming the
// first violated gate.
func (p *Project) AcceptsApplicationAt(at time.Time) error {
	if !p.Visible || p.Status != StatusActive {
		return shared.ErrProjectNotActive
	}
	if !p.Deadline.IsZero() && at.After(p.Deadline) {
		return shared.ErrProjectDeadlinePast
	}
	if p.ApplicantCap > 0 && p.ApplicationCount >= p.ApplicantCap {
		return shared.ErrApplicantCapReached
	}
	return nil
}

// IncrementApplications increases the application counter. Caller must hold
// the project row lock.
func (p *Project) IncrementApplications() {
	p.ApplicationCount++
	p.UpdatedAt = time.Now().UTC()
}

// DecrementApplications decreases the application counter, floored at zero.
// Caller must hold the project row lock.
func (p *Project) DecrementApplications() {
	if p.ApplicationCount > 0 {
		p.ApplicationCount--
	}
	p.UpdatedAt = time.Now().UTC()
}

// ═══════════════════════════════════════════════════════════════════════════
// PROJECT MODULE ENTITY
// ═══════════════════════════════════════════════════════════════════════════

// TotalWeight is the weight budget shared by all modules of one project.
const TotalWeight = 100.0

// Module is a named, weighted unit of curriculum work under a project.
type Module struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// ProjectID references the owning project.
	ProjectID string

	// Title is the module title.
	Title string

	// Description describes the expected work.
	Description string

	// Weight is this module's share of the project's total effort, in
	// percent. The sum of weights across a project's modules never
	// exceeds TotalWeight.
	Weight float64

	// OrderIndex is the position in the curriculum (1-based).
	OrderIndex int

	// Status tracks whether any progress references this module.
	Status ModuleStatus

	// CreatedAt is when the module was created.
	CreatedAt time.Time
}

// NewModuleParams contains parameters for creating a module.
type NewModuleParams struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Weight      float64
	OrderIndex  int
}

// NewModule creates a new curriculum module with validation. The weight-sum
// invariant against sibling modules is checked separately via ValidateWeight
// because it needs the project's existing modules.
func NewModule(params NewModuleParams) (*Module, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("project", "NewModule", shared.ErrEmptyValue, "module id is required")
	}
	if params.ProjectID == "" {
		return nil, shared.NewDomainError("project", "NewModule", shared.ErrEmptyValue, "project id is required")
	}
	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, shared.NewDomainError("project", "NewModule", shared.ErrInvalidInput, "module title must be 1-200 chars")
	}
	if params.Weight <= 0 {
		return nil, shared.NewDomainError("project", "NewModule", shared.ErrValidation, "module weight must be positive")
	}
	if params.OrderIndex < 1 {
		return nil, shared.NewDomainError("project", "NewModule", shared.ErrValueOutOfRange, "order index must be positive")
	}

	return &Module{
		ID:          params.ID,
		ProjectID:   params.ProjectID,
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Weight:      params.Weight,
		OrderIndex:  params.OrderIndex,
		Status:      ModuleStatusPlanned,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Modules is the ordered curriculum of one project.
type Modules []*Module

// WeightSum returns the total weight currently allocated.
func (ms Modules) WeightSum() float64 {
	sum := 0.0
	for _, m := range ms {
		sum += m.Weight
	}
	return sum
}

// RemainingWeight returns the unallocated share of the weight budget.
func (ms Modules) RemainingWeight() float64 {
	return TotalWeight - ms.WeightSum()
}

// NextOrderIndex returns the order index for a newly added module.
func (ms Modules) NextOrderIndex() int {
	return len(ms) + 1
}

// IDs returns the set of module IDs.
func (ms Modules) IDs() []string {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	return ids
}

// ValidateWeight checks whether a module of the given weight fits in the
// remaining weight budget. The returned validation error quotes the exact
// remaining headroom.
func (ms Modules) ValidateWeight(weight float64) error {
	if weight <= 0 {
		return shared.NewDomainError("project", "AddModule", shared.ErrValidation, "module weight must be positive")
	}
	remaining := ms.RemainingWeight()
	if weight > remaining {
		return shared.NewDomainError("project", "AddModule", shared.ErrValidation,
			fmt.Sprintf("module weight %s%% exceeds the remaining budget: %s%% available",
				formatWeight(weight), formatWeight(remaining)))
	}
	return nil
}

// formatWeight renders a weight without trailing zeros (50 rather than 50.00).
func formatWeight(w float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", w), "0")
	return strings.TrimRight(s, ".")
}
