package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
	"github.com/worklink-hub/worklink-platform/internal/application/query"
)

// CreateProjectRequest is the project creation payload.
type CreateProjectRequest struct {
	CompanyID      string     `json:"company_id" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Deadline       *time.Time `json:"deadline"`
	ApplicantCap   int        `json:"applicant_cap" validate:"min=0"`
	BudgetMin      float64    `json:"budget_min" validate:"min=0"`
	BudgetMax      float64    `json:"budget_max" validate:"min=0"`
	RequiredSkills []string   `json:"required_skills"`
}

// CreateProject handles POST /api/v1/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := command.CreateProjectCommand{
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Description:    req.Description,
		ApplicantCap:   req.ApplicantCap,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		RequiredSkills: req.RequiredSkills,
	}
	if req.Deadline != nil {
		cmd.Deadline = *req.Deadline
	}

	result, err := h.commands.CreateProject.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]interface{}{
		"project_id": result.ProjectID,
		"status":     result.Status,
	})
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.GetProject.Handle(r.Context(), query.GetProjectQuery{
		ProjectID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// SetProjectStatusRequest is the status transition payload.
type SetProjectStatusRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=active closed"`
}

// SetProjectStatus handles PATCH /api/v1/projects/{id}/status.
func (h *Handler) SetProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req SetProjectStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.SetProjectStatus.Handle(r.Context(), command.SetProjectStatusCommand{
		ProjectID: chi.URLParam(r, "id"),
		CompanyID: req.CompanyID,
		Activate:  req.Status == "active",
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// DeleteProjectRequest is the privileged force-delete payload.
type DeleteProjectRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// DeleteProject handles DELETE /api/v1/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	var req DeleteProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.DeleteProject.Handle(r.Context(), command.DeleteProjectCommand{
		ProjectID: chi.URLParam(r, "id"),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// AddModuleRequest is the module creation payload.
type AddModuleRequest struct {
	CompanyID   string  `json:"company_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight" validate:"required,gt=0,lte=100"`
}

// AddModule handles POST /api/v1/projects/{id}/modules.
func (h *Handler) AddModule(w http.ResponseWriter, r *http.Request) {
	var req AddModuleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.AddModule.Handle(r.Context(), command.AddModuleCommand{
		ProjectID:   chi.URLParam(r, "id"),
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Weight:      req.Weight,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]interface{}{
		"module_id":        result.ModuleID,
		"order_index":      result.OrderIndex,
		"remaining_weight": result.RemainingWeight,
	})
}

// ReorderModulesRequest is the curriculum reordering payload.
type ReorderModulesRequest struct {
	CompanyID string   `json:"company_id" validate:"required"`
	ModuleIDs []string `json:"module_ids" validate:"required,min=1"`
}

// ReorderModules handles PUT /api/v1/projects/{id}/modules/order.
func (h *Handler) ReorderModules(w http.ResponseWriter, r *http.Request) {
	var req ReorderModulesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.ReorderModules.Handle(r.Context(), command.ReorderModulesCommand{
		ProjectID: chi.URLParam(r, "id"),
		CompanyID: req.CompanyID,
		ModuleIDs: req.ModuleIDs,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// DeleteModuleRequest is the module removal payload.
type DeleteModuleRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// DeleteModule handles DELETE /api/v1/projects/{id}/modules/{moduleID}.
func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	var req DeleteModuleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.DeleteModule.Handle(r.Context(), command.DeleteModuleCommand{
		ProjectID: chi.URLParam(r, "id"),
		ModuleID:  chi.URLParam(r, "moduleID"),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}
