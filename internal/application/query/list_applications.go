package query

import (
	"context"
	"errors"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST APPLICATIONS QUERIES
// A student lists their own applications; a company lists the applications
// on one of its projects.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentApplicationsQuery contains the student listing parameters.
type ListStudentApplicationsQuery struct {
	// StudentID is the applicant whose applications are listed.
	StudentID string
}

// Validate validates the query parameters.
func (q ListStudentApplicationsQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("student_id is required")
	}
	return nil
}

// ListApplicationsResult contains the listed applications, newest first.
type ListApplicationsResult struct {
	Applications []ApplicationDTO `json:"applications"`
	TotalCount   int              `json:"total_count"`
}

// ListStudentApplicationsHandler handles the ListStudentApplicationsQuery.
type ListStudentApplicationsHandler struct {
	applicationRepo application.Repository
	projectRepo     project.Repository
}

// NewListStudentApplicationsHandler creates a new ListStudentApplicationsHandler.
func NewListStudentApplicationsHandler(
	applicationRepo application.Repository,
	projectRepo project.Repository,
) *ListStudentApplicationsHandler {
	return &ListStudentApplicationsHandler{
		applicationRepo: applicationRepo,
		projectRepo:     projectRepo,
	}
}

// Handle executes the list student applications query.
func (h *ListStudentApplicationsHandler) Handle(ctx context.Context, query ListStudentApplicationsQuery) (*ListApplicationsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.NewDomainError("query", "ListStudentApplications", shared.ErrValidation, err.Error())
	}

	apps, err := h.applicationRepo.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return nil, err
	}

	return &ListApplicationsResult{
		Applications: h.toDTOs(ctx, apps),
		TotalCount:   len(apps),
	}, nil
}

// toDTOs resolves project titles for display. A title lookup failure
// leaves the title blank rather than failing the listing.
func (h *ListStudentApplicationsHandler) toDTOs(ctx context.Context, apps []*application.Application) []ApplicationDTO {
	titles := make(map[string]string, len(apps))
	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		title, ok := titles[app.ProjectID]
		if !ok {
			if p, err := h.projectRepo.GetByID(ctx, app.ProjectID); err == nil {
				title = p.Title
			}
			titles[app.ProjectID] = title
		}
		dtos[i] = toApplicationDTO(app, title)
	}
	return dtos
}

// ListProjectApplicationsQuery contains the project listing parameters.
type ListProjectApplicationsQuery struct {
	// ProjectID is the project whose applications are listed.
	ProjectID string

	// CompanyID must own the project.
	CompanyID string
}

// Validate validates the query parameters.
func (q ListProjectApplicationsQuery) Validate() error {
	if q.ProjectID == "" {
		return errors.New("project_id is required")
	}
	if q.CompanyID == "" {
		return errors.New("company_id is required")
	}
	return nil
}

// ListProjectApplicationsHandler handles the ListProjectApplicationsQuery.
type ListProjectApplicationsHandler struct {
	applicationRepo application.Repository
	projectRepo     project.Repository
}

// NewListProjectApplicationsHandler creates a new ListProjectApplicationsHandler.
func NewListProjectApplicationsHandler(
	applicationRepo application.Repository,
	projectRepo project.Repository,
) *ListProjectApplicationsHandler {
	return &ListProjectApplicationsHandler{
		applicationRepo: applicationRepo,
		projectRepo:     projectRepo,
	}
}

// Handle executes the list project applications query.
func (h *ListProjectApplicationsHandler) Handle(ctx context.Context, query ListProjectApplicationsQuery) (*ListApplicationsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.NewDomainError("query", "ListProjectApplications", shared.ErrValidation, err.Error())
	}

	p, err := h.projectRepo.GetByID(ctx, query.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.CompanyID != query.CompanyID {
		return nil, shared.ErrNotProjectOwner
	}

	apps, err := h.applicationRepo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		dtos[i] = toApplicationDTO(app, p.Title)
	}

	return &ListApplicationsResult{
		Applications: dtos,
		TotalCount:   len(dtos),
	}, nil
}
