package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject(NewProjectParams{
		ID:             "proj-1",
		CompanyID:      "company-1",
		Title:          "Landing page rebuild",
		Description:    "Rework the marketing site",
		Deadline:       time.Now().UTC().Add(72 * time.Hour),
		ApplicantCap:   2,
		BudgetMin:      shared.Money(500),
		BudgetMax:      shared.Money(2000),
		RequiredSkills: []shared.SkillName{"Go", "  PostgreSQL "},
	})
	require.NoError(t, err)
	return p
}

func TestNewProject(t *testing.T) {
	p := newTestProject(t)

	assert.Equal(t, StatusDraft, p.Status)
	assert.False(t, p.Visible)
	// Skills are normalized at the boundary.
	assert.Equal(t, []shared.SkillName{"go", "postgresql"}, p.RequiredSkills)
}

func TestNewProject_Validation(t *testing.T) {
	_, err := NewProject(NewProjectParams{ID: "p", CompanyID: "c", Title: "   "})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	_, err = NewProject(NewProjectParams{
		ID: "p", CompanyID: "c", Title: "ok",
		BudgetMin: shared.Money(3000), BudgetMax: shared.Money(1000),
	})
	require.Error(t, err)

	_, err = NewProject(NewProjectParams{ID: "p", CompanyID: "c", Title: "ok", ApplicantCap: -1})
	require.Error(t, err)
}

func TestProject_ActivateAndClose(t *testing.T) {
	p := newTestProject(t)

	require.NoError(t, p.Activate())
	assert.Equal(t, StatusActive, p.Status)
	assert.True(t, p.Visible)

	p.Close()
	assert.Equal(t, StatusClosed, p.Status)

	// Closed is terminal.
	err := p.Activate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestProject_AcceptsApplicationAt(t *testing.T) {
	p := newTestProject(t)
	now := time.Now().UTC()

	// Draft projects are not open.
	require.ErrorIs(t, p.AcceptsApplicationAt(now), shared.ErrProjectNotActive)

	require.NoError(t, p.Activate())
	require.NoError(t, p.AcceptsApplicationAt(now))

	// Past deadline.
	require.ErrorIs(t, p.AcceptsApplicationAt(p.Deadline.Add(time.Minute)), shared.ErrProjectDeadlinePast)

	// Applicant cap.
	p.IncrementApplications()
	p.IncrementApplications()
	require.ErrorIs(t, p.AcceptsApplicationAt(now), shared.ErrApplicantCapReached)

	p.DecrementApplications()
	require.NoError(t, p.AcceptsApplicationAt(now))
}

func TestProject_ZeroCapIsUnlimited(t *testing.T) {
	p := newTestProject(t)
	p.ApplicantCap = 0
	require.NoError(t, p.Activate())

	for i := 0; i < 50; i++ {
		p.IncrementApplications()
	}
	require.NoError(t, p.AcceptsApplicationAt(time.Now().UTC()))
}

func TestProject_DecrementFloorsAtZero(t *testing.T) {
	p := newTestProject(t)
	p.DecrementApplications()
	assert.Zero(t, p.ApplicationCount)
}

func TestModules_WeightBudget(t *testing.T) {
	m1, err := NewModule(NewModuleParams{ID: "m1", ProjectID: "p", Title: "Design", Weight: 50, OrderIndex: 1})
	require.NoError(t, err)
	m2, err := NewModule(NewModuleParams{ID: "m2", ProjectID: "p", Title: "Build", Weight: 30, OrderIndex: 2})
	require.NoError(t, err)

	modules := Modules{m1, m2}
	assert.InDelta(t, 80.0, modules.WeightSum(), 0.001)
	assert.InDelta(t, 20.0, modules.RemainingWeight(), 0.001)
	assert.Equal(t, 3, modules.NextOrderIndex())

	require.NoError(t, modules.ValidateWeight(20))

	err = modules.ValidateWeight(25)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	// The error quotes the remaining headroom without trailing zeros.
	assert.Contains(t, err.Error(), "25%")
	assert.Contains(t, err.Error(), "20% available")

	err = modules.ValidateWeight(0)
	require.Error(t, err)
	err = modules.ValidateWeight(-5)
	require.Error(t, err)
}

func TestModules_FractionalHeadroomMessage(t *testing.T) {
	m, err := NewModule(NewModuleParams{ID: "m1", ProjectID: "p", Title: "Bulk", Weight: 87.5, OrderIndex: 1})
	require.NoError(t, err)

	err = Modules{m}.ValidateWeight(13)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12.5% available")
}

func TestNewModule_Validation(t *testing.T) {
	_, err := NewModule(NewModuleParams{ID: "m", ProjectID: "p", Title: "x", Weight: 0, OrderIndex: 1})
	require.Error(t, err)

	_, err = NewModule(NewModuleParams{ID: "m", ProjectID: "p", Title: "x", Weight: 10, OrderIndex: 0})
	require.Error(t, err)

	_, err = NewModule(NewModuleParams{ID: "m", ProjectID: "p", Title: "  ", Weight: 10, OrderIndex: 1})
	require.Error(t, err)
}
