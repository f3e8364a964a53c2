package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
	"github.com/worklink-hub/worklink-platform/internal/application/query"
)

// ApplyRequest is the application submission payload.
type ApplyRequest struct {
	StudentID    string  `json:"student_id" validate:"required"`
	BidAmount    float64 `json:"bid_amount" validate:"required,gt=0"`
	Proposal     string  `json:"proposal"`
	DurationDays int     `json:"duration_days" validate:"min=0"`
}

// Apply handles POST /api/v1/projects/{id}/applications.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.Apply.Handle(r.Context(), command.ApplyCommand{
		ProjectID:    chi.URLParam(r, "id"),
		StudentID:    req.StudentID,
		BidAmount:    req.BidAmount,
		Proposal:     req.Proposal,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]interface{}{
		"application_id": result.ApplicationID,
		"status":         result.Status,
		"applied_at":     result.AppliedAt,
	})
}

// GetApplication handles GET /api/v1/applications/{id}. The caller
// identifies itself with the actor query parameter.
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.GetApplication.Handle(r.Context(), query.GetApplicationQuery{
		ApplicationID: chi.URLParam(r, "id"),
		CallerID:      r.URL.Query().Get("actor"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// ListStudentApplications handles GET /api/v1/students/{id}/applications.
func (h *Handler) ListStudentApplications(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ListStudentApplications.Handle(r.Context(), query.ListStudentApplicationsQuery{
		StudentID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// ListProjectApplications handles GET /api/v1/projects/{id}/applications.
func (h *Handler) ListProjectApplications(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ListProjectApplications.Handle(r.Context(), query.ListProjectApplicationsQuery{
		ProjectID: chi.URLParam(r, "id"),
		CompanyID: r.URL.Query().Get("actor"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// DecideApplicationRequest is the accept/reject payload.
type DecideApplicationRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Accept    bool   `json:"accept"`
	Note      string `json:"note"`
}

// DecideApplication handles POST /api/v1/applications/{id}/decision.
func (h *Handler) DecideApplication(w http.ResponseWriter, r *http.Request) {
	var req DecideApplicationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.ReviewApplication.Handle(r.Context(), command.ReviewApplicationCommand{
		ApplicationID: chi.URLParam(r, "id"),
		CompanyID:     req.CompanyID,
		Accept:        req.Accept,
		Note:          req.Note,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// WithdrawApplicationRequest is the withdrawal payload.
type WithdrawApplicationRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// WithdrawApplication handles POST /api/v1/applications/{id}/withdraw.
func (h *Handler) WithdrawApplication(w http.ResponseWriter, r *http.Request) {
	var req WithdrawApplicationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.WithdrawApplication.Handle(r.Context(), command.WithdrawApplicationCommand{
		ApplicationID: chi.URLParam(r, "id"),
		StudentID:     req.StudentID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// UpdateProgressRequest is the module progress payload.
type UpdateProgressRequest struct {
	StudentID  string  `json:"student_id" validate:"required"`
	Percentage float64 `json:"percentage" validate:"min=0,max=100"`
	Note       string  `json:"note"`
}

// UpdateProgress handles PUT /api/v1/applications/{id}/progress/{moduleID}.
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req UpdateProgressRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.UpdateProgress.Handle(r.Context(), command.UpdateProgressCommand{
		ApplicationID: chi.URLParam(r, "id"),
		StudentID:     req.StudentID,
		ModuleID:      chi.URLParam(r, "moduleID"),
		Percentage:    req.Percentage,
		Note:          req.Note,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"overall_completion": result.OverallCompletion,
		"completed_modules":  result.CompletedModules,
		"total_modules":      result.TotalModules,
		"status":             result.Status,
	})
}

// CompleteApplicationRequest is the final sign-off payload.
type CompleteApplicationRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// CompleteApplication handles POST /api/v1/applications/{id}/complete.
func (h *Handler) CompleteApplication(w http.ResponseWriter, r *http.Request) {
	var req CompleteApplicationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.CompleteApplication.Handle(r.Context(), command.CompleteApplicationCommand{
		ApplicationID: chi.URLParam(r, "id"),
		CompanyID:     req.CompanyID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

// RecordPaymentRequest is the payment gate payload.
type RecordPaymentRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// RecordPayment handles POST /api/v1/applications/{id}/payment.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.RecordPayment.Handle(r.Context(), command.RecordPaymentCommand{
		ApplicationID: chi.URLParam(r, "id"),
		CompanyID:     req.CompanyID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}
