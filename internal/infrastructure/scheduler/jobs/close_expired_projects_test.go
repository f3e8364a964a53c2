package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

type stubProjectRepo struct {
	projects      map[string]*project.Project
	listErr       error
	failUpdateFor string
	updates       []string
}

func newStubProjectRepo(projects ...*project.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*project.Project)}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, p *project.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) GetByID(_ context.Context, id string) (*project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, shared.ErrProjectNotFound
	}
	return p, nil
}

func (r *stubProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*project.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *stubProjectRepo) ListByCompany(_ context.Context, companyID string) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListActiveExpired(_ context.Context, cutoff time.Time) ([]*project.Project, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*project.Project
	for _, p := range r.projects {
		if p.Status == project.StatusActive && p.Deadline.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *project.Project) error {
	if p.ID == r.failUpdateFor {
		return errors.New("storage unavailable")
	}
	r.updates = append(r.updates, p.ID)
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func sweepProject(id string, status project.Status, deadline time.Time) *project.Project {
	return &project.Project{
		ID:        id,
		CompanyID: "company-1",
		Title:     "Kiosk firmware",
		Status:    status,
		Deadline:  deadline,
	}
}

func TestCloseExpiredProjects_ClosesOnlyExpiredActive(t *testing.T) {
	now := time.Now().UTC()
	repo := newStubProjectRepo(
		sweepProject("proj-expired", project.StatusActive, now.Add(-time.Hour)),
		sweepProject("proj-live", project.StatusActive, now.Add(time.Hour)),
		sweepProject("proj-closed", project.StatusClosed, now.Add(-time.Hour)),
		sweepProject("proj-draft", project.StatusDraft, now.Add(-time.Hour)),
	)
	job := NewCloseExpiredProjects(repo, zerolog.Nop())

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, []string{"proj-expired"}, repo.updates)
	assert.Equal(t, project.StatusClosed, repo.projects["proj-expired"].Status)
	assert.Equal(t, project.StatusActive, repo.projects["proj-live"].Status)
	assert.Equal(t, project.StatusDraft, repo.projects["proj-draft"].Status)
}

func TestCloseExpiredProjects_ContinuesPastUpdateFailure(t *testing.T) {
	now := time.Now().UTC()
	repo := newStubProjectRepo(
		sweepProject("proj-a", project.StatusActive, now.Add(-2*time.Hour)),
		sweepProject("proj-b", project.StatusActive, now.Add(-time.Hour)),
	)
	repo.failUpdateFor = "proj-a"
	job := NewCloseExpiredProjects(repo, zerolog.Nop())

	// One project failing to persist must not abort the sweep.
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"proj-b"}, repo.updates)
	assert.Equal(t, project.StatusClosed, repo.projects["proj-b"].Status)
}

func TestCloseExpiredProjects_ListErrorPropagates(t *testing.T) {
	repo := newStubProjectRepo()
	repo.listErr = errors.New("connection refused")
	job := NewCloseExpiredProjects(repo, zerolog.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list expired projects")
}

func TestCloseExpiredProjects_Name(t *testing.T) {
	job := NewCloseExpiredProjects(newStubProjectRepo(), zerolog.Nop())
	assert.Equal(t, "close_expired_projects", job.Name())
}
