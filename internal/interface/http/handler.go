// Package http implements the REST API of the work platform: account
// registration, project and curriculum management, the application
// lifecycle, and the review surface.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
	"github.com/worklink-hub/worklink-platform/internal/application/query"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// Commands groups the write-side handlers the API exposes.
type Commands struct {
	RegisterCompany     *command.RegisterCompanyHandler
	RegisterStudent     *command.RegisterStudentHandler
	CreateProject       *command.CreateProjectHandler
	SetProjectStatus    *command.SetProjectStatusHandler
	DeleteProject       *command.DeleteProjectHandler
	AddModule           *command.AddModuleHandler
	DeleteModule        *command.DeleteModuleHandler
	ReorderModules      *command.ReorderModulesHandler
	Apply               *command.ApplyHandler
	ReviewApplication   *command.ReviewApplicationHandler
	WithdrawApplication *command.WithdrawApplicationHandler
	UpdateProgress      *command.UpdateProgressHandler
	CompleteApplication *command.CompleteApplicationHandler
	RecordPayment       *command.RecordPaymentHandler
	SubmitReview        *command.SubmitReviewHandler
	ModerateReview      *command.ModerateReviewHandler
	RespondToReview     *command.RespondToReviewHandler
}

// Queries groups the read-side handlers the API exposes.
type Queries struct {
	GetProject              *query.GetProjectHandler
	GetApplication          *query.GetApplicationHandler
	ListStudentApplications *query.ListStudentApplicationsHandler
	ListProjectApplications *query.ListProjectApplicationsHandler
	ListReviews             *query.ListReviewsHandler
}

// Handler serves the REST API.
type Handler struct {
	commands Commands
	queries  Queries
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(commands Commands, queries Queries, logger zerolog.Logger) *Handler {
	return &Handler{
		commands: commands,
		queries:  queries,
		validate: validator.New(),
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

// RegisterRoutes mounts the API on the router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/companies", func(r chi.Router) {
			r.Post("/", h.RegisterCompany)
			r.Get("/{id}/reviews", h.ListCompanyReviews)
		})

		api.Route("/students", func(r chi.Router) {
			r.Post("/", h.RegisterStudent)
			r.Get("/{id}/applications", h.ListStudentApplications)
			r.Get("/{id}/reviews", h.ListStudentReviews)
		})

		api.Route("/projects", func(r chi.Router) {
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Patch("/{id}/status", h.SetProjectStatus)
			r.Delete("/{id}", h.DeleteProject)

			r.Post("/{id}/modules", h.AddModule)
			r.Put("/{id}/modules/order", h.ReorderModules)
			r.Delete("/{id}/modules/{moduleID}", h.DeleteModule)

			r.Post("/{id}/applications", h.Apply)
			r.Get("/{id}/applications", h.ListProjectApplications)
		})

		api.Route("/applications", func(r chi.Router) {
			r.Get("/{id}", h.GetApplication)
			r.Post("/{id}/decision", h.DecideApplication)
			r.Post("/{id}/withdraw", h.WithdrawApplication)
			r.Put("/{id}/progress/{moduleID}", h.UpdateProgress)
			r.Post("/{id}/complete", h.CompleteApplication)
			r.Post("/{id}/payment", h.RecordPayment)
			r.Post("/{id}/reviews", h.SubmitReview)
		})

		api.Route("/reviews", func(r chi.Router) {
			r.Post("/{id}/moderation", h.ModerateReview)
			r.Post("/{id}/response", h.RespondToReview)
		})
	})
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "worklink-platform",
		"timestamp": time.Now().UTC(),
	})
}

// decodeAndValidate decodes the JSON body into req and runs the struct
// validation tags. A false return means the response is already written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// respondError maps a domain error to an HTTP status.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case shared.IsUnauthorized(err):
		writeError(w, http.StatusForbidden, err.Error())
	case shared.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}
