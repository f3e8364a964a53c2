package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func newCreateProjectHandler(store *memStore) *CreateProjectHandler {
	return NewCreateProjectHandler(&memProjectRepo{store}, &memCompanyRepo{store}, &memSkillCatalog{store}, &seqIDGen{})
}

func TestCreateProjectHandler(t *testing.T) {
	store := newMemStore()
	seedCompany(store, "company-1", "Acme")
	store.skills["go"] = &account.Skill{ID: "skill-1", Name: "go"}

	h := newCreateProjectHandler(store)
	result, err := h.Handle(context.Background(), CreateProjectCommand{
		CompanyID:      "company-1",
		Title:          "Landing page rebuild",
		BudgetMin:      500,
		BudgetMax:      2000,
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)

	// Projects start invisible; activation is a separate step.
	assert.Equal(t, project.StatusDraft, result.Status)
	p := store.projects[result.ProjectID]
	require.NotNil(t, p)
	assert.False(t, p.Visible)
	assert.Equal(t, []shared.SkillName{"go"}, p.RequiredSkills)
}

func TestCreateProjectHandler_Guards(t *testing.T) {
	store := newMemStore()
	seedCompany(store, "company-1", "Acme")
	h := newCreateProjectHandler(store)

	// Unknown owning company.
	_, err := h.Handle(context.Background(), CreateProjectCommand{
		CompanyID: "ghost", Title: "x",
	})
	require.True(t, shared.IsNotFound(err))

	// Required skills must exist in the catalog.
	_, err = h.Handle(context.Background(), CreateProjectCommand{
		CompanyID: "company-1", Title: "x", RequiredSkills: []string{"cobol"},
	})
	require.ErrorIs(t, err, shared.ErrSkillNotFound)
}

func TestSetProjectStatusHandler(t *testing.T) {
	store := newMemStore()
	h := NewSetProjectStatusHandler(&memProjectRepo{store})

	p := seedActiveProject(store, "proj-1", "company-1", 0)
	p.Status = project.StatusDraft
	p.Visible = false

	require.NoError(t, h.Handle(context.Background(), SetProjectStatusCommand{
		ProjectID: "proj-1", CompanyID: "company-1", Activate: true,
	}))
	assert.Equal(t, project.StatusActive, store.projects["proj-1"].Status)
	assert.True(t, store.projects["proj-1"].Visible)

	require.NoError(t, h.Handle(context.Background(), SetProjectStatusCommand{
		ProjectID: "proj-1", CompanyID: "company-1", Activate: false,
	}))
	assert.Equal(t, project.StatusClosed, store.projects["proj-1"].Status)

	// Closed is terminal.
	err := h.Handle(context.Background(), SetProjectStatusCommand{
		ProjectID: "proj-1", CompanyID: "company-1", Activate: true,
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	err = h.Handle(context.Background(), SetProjectStatusCommand{
		ProjectID: "proj-1", CompanyID: "rival", Activate: true,
	})
	require.ErrorIs(t, err, shared.ErrNotProjectOwner)
}

func TestDeleteProjectHandler(t *testing.T) {
	store := newMemStore()
	h := NewDeleteProjectHandler(&memUnitOfWork{store})

	seedActiveProject(store, "proj-1", "company-1", 0)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusPending)
	seedApplication(store, "app-2", "proj-1", "student-2", application.StatusAccepted)

	err := h.Handle(context.Background(), DeleteProjectCommand{
		ProjectID: "proj-1", CompanyID: "company-1",
	})
	require.NoError(t, err)

	// The delete cascades to the project's applications.
	assert.NotContains(t, store.projects, "proj-1")
	assert.Empty(t, store.applications)
}

func TestDeleteProjectHandler_Ownership(t *testing.T) {
	store := newMemStore()
	h := NewDeleteProjectHandler(&memUnitOfWork{store})
	seedActiveProject(store, "proj-1", "company-1", 0)

	err := h.Handle(context.Background(), DeleteProjectCommand{
		ProjectID: "proj-1", CompanyID: "rival",
	})
	require.ErrorIs(t, err, shared.ErrNotProjectOwner)
	assert.Contains(t, store.projects, "proj-1")
}
