package query

import (
	"context"
	"errors"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET APPLICATION QUERY
// Returns one application together with its full progress sheet: every
// curriculum module joined with the applicant's progress record, plus the
// weighted overall completion. Visible only to the two parties.
// ══════════════════════════════════════════════════════════════════════════════

// GetApplicationQuery contains the application lookup parameters.
type GetApplicationQuery struct {
	// ApplicationID is the application to fetch.
	ApplicationID string

	// CallerID must be the applicant or the project owner.
	CallerID string
}

// Validate validates the query parameters.
func (q GetApplicationQuery) Validate() error {
	if q.ApplicationID == "" {
		return errors.New("application_id is required")
	}
	if q.CallerID == "" {
		return errors.New("caller_id is required")
	}
	return nil
}

// ApplicationDTO is the application read model.
type ApplicationDTO struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	ProjectTitle string     `json:"project_title"`
	StudentID    string     `json:"student_id"`
	Status       string     `json:"status"`
	BidAmount    float64    `json:"bid_amount"`
	Proposal     string     `json:"proposal,omitempty"`
	DurationDays int        `json:"duration_days"`
	AppliedAt    time.Time  `json:"applied_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote   string     `json:"review_note,omitempty"`
	Paid         bool       `json:"paid"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

// ProgressRowDTO is one module of the progress sheet. Modules never
// touched by the applicant appear at 0%.
type ProgressRowDTO struct {
	ModuleID    string     `json:"module_id"`
	Title       string     `json:"title"`
	Weight      float64    `json:"weight"`
	OrderIndex  int        `json:"order_index"`
	Percentage  float64    `json:"percentage"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// GetApplicationResult contains the application with its progress sheet.
type GetApplicationResult struct {
	Application       ApplicationDTO   `json:"application"`
	Progress          []ProgressRowDTO `json:"progress"`
	OverallCompletion float64          `json:"overall_completion"`
	CompletedModules  int              `json:"completed_modules"`
	TotalModules      int              `json:"total_modules"`
}

// GetApplicationHandler handles the GetApplicationQuery.
type GetApplicationHandler struct {
	applicationRepo application.Repository
	progressRepo    application.ProgressRepository
	projectRepo     project.Repository
	moduleRepo      project.ModuleRepository
}

// NewGetApplicationHandler creates a new GetApplicationHandler.
func NewGetApplicationHandler(
	applicationRepo application.Repository,
	progressRepo application.ProgressRepository,
	projectRepo project.Repository,
	moduleRepo project.ModuleRepository,
) *GetApplicationHandler {
	return &GetApplicationHandler{
		applicationRepo: applicationRepo,
		progressRepo:    progressRepo,
		projectRepo:     projectRepo,
		moduleRepo:      moduleRepo,
	}
}

// Handle executes the get application query.
func (h *GetApplicationHandler) Handle(ctx context.Context, query GetApplicationQuery) (*GetApplicationResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.NewDomainError("query", "GetApplication", shared.ErrValidation, err.Error())
	}

	app, err := h.applicationRepo.GetByID(ctx, query.ApplicationID)
	if err != nil {
		return nil, err
	}

	p, err := h.projectRepo.GetByID(ctx, app.ProjectID)
	if err != nil {
		return nil, err
	}

	if query.CallerID != app.StudentID && query.CallerID != p.CompanyID {
		return nil, shared.NewDomainError("query", "GetApplication", shared.ErrUnauthorized,
			"only the applicant and the project owner can view an application")
	}

	modules, err := h.moduleRepo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	records, err := h.progressRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	sheet := application.NewProgressSheet(app.ID, modules, records)

	rows := make([]ProgressRowDTO, len(sheet.Rows))
	for i, row := range sheet.Rows {
		rows[i] = ProgressRowDTO{
			ModuleID:    row.Module.ID,
			Title:       row.Module.Title,
			Weight:      row.Module.Weight,
			OrderIndex:  row.Module.OrderIndex,
			Percentage:  row.Percentage.Float64(),
			IsCompleted: row.IsCompleted,
			CompletedAt: row.CompletedAt,
			Note:        row.Note,
		}
	}

	return &GetApplicationResult{
		Application:       toApplicationDTO(app, p.Title),
		Progress:          rows,
		OverallCompletion: sheet.OverallCompletion(),
		CompletedModules:  sheet.CompletedCount(),
		TotalModules:      sheet.TotalCount(),
	}, nil
}

func toApplicationDTO(app *application.Application, projectTitle string) ApplicationDTO {
	return ApplicationDTO{
		ID:           app.ID,
		ProjectID:    app.ProjectID,
		ProjectTitle: projectTitle,
		StudentID:    app.StudentID,
		Status:       string(app.Status),
		BidAmount:    app.BidAmount.Float64(),
		Proposal:     app.Proposal,
		DurationDays: app.DurationDays,
		AppliedAt:    app.AppliedAt,
		ReviewedAt:   app.ReviewedAt,
		ReviewNote:   app.ReviewNote,
		Paid:         app.Paid,
		PaidAt:       app.PaidAt,
	}
}
