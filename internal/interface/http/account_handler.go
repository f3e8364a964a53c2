package http

import (
	"net/http"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
)

// RegisterCompanyRequest is the company registration payload.
type RegisterCompanyRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Description string `json:"description"`
}

// RegisterCompany handles POST /api/v1/companies.
func (h *Handler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req RegisterCompanyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.RegisterCompany.Handle(r.Context(), command.RegisterCompanyCommand{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]string{"company_id": result.CompanyID})
}

// RegisterStudentRequest is the student registration payload.
type RegisterStudentRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

// RegisterStudent handles POST /api/v1/students.
func (h *Handler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req RegisterStudentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.RegisterStudent.Handle(r.Context(), command.RegisterStudentCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]string{"student_id": result.StudentID})
}
