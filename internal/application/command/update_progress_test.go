package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func newProgressFixture() (*memStore, *UpdateProgressHandler, *capturingPublisher) {
	store := newMemStore()
	pub := &capturingPublisher{}
	h := NewUpdateProgressHandler(&memUnitOfWork{store}, &seqIDGen{}, pub)
	return store, h, pub
}

func TestUpdateProgressHandler(t *testing.T) {
	store, h, _ := newProgressFixture()
	seedActiveProject(store, "proj-1", "company-1", 0)
	seedModule(store, "mod-1", "proj-1", 60, 1)
	seedModule(store, "mod-2", "proj-1", 40, 2)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusAccepted)

	result, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1",
		StudentID:     "student-1",
		ModuleID:      "mod-1",
		Percentage:    50,
		Note:          "half way",
	})
	require.NoError(t, err)

	// 60*0.50 = 30.00 of the overall curriculum.
	assert.InDelta(t, 30.0, result.OverallCompletion, 0.001)
	assert.Equal(t, 0, result.CompletedModules)
	assert.Equal(t, 2, result.TotalModules)
	assert.False(t, result.Transitioned)
	assert.Equal(t, application.StatusAccepted, result.Status)

	// First touch marks the module active.
	assert.Equal(t, project.ModuleStatusActive, store.modules["mod-1"].Status)
}

func TestUpdateProgressHandler_AutoTransition(t *testing.T) {
	store, h, pub := newProgressFixture()
	seedActiveProject(store, "proj-1", "company-1", 0)
	seedModule(store, "mod-1", "proj-1", 60, 1)
	seedModule(store, "mod-2", "proj-1", 40, 2)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusAccepted)

	_, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-1", Percentage: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, store.applications["app-1"].Status)

	result, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-2", Percentage: 100,
	})
	require.NoError(t, err)
	assert.True(t, result.Transitioned)
	assert.Equal(t, application.StatusUnderReview, result.Status)
	assert.InDelta(t, 100.0, result.OverallCompletion, 0.001)

	var completions int
	for _, ev := range pub.published() {
		if ev.EventType() == shared.EventCurriculumCompleted {
			completions++
		}
	}
	assert.Equal(t, 1, completions)

	// A repeated 100% write on the now under-review application is a
	// no-op: no second transition, no second event.
	result, err = h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-2", Percentage: 100,
	})
	require.NoError(t, err)
	assert.False(t, result.Transitioned)
	assert.Equal(t, application.StatusUnderReview, result.Status)

	completions = 0
	for _, ev := range pub.published() {
		if ev.EventType() == shared.EventCurriculumCompleted {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}

func TestUpdateProgressHandler_Guards(t *testing.T) {
	store, h, _ := newProgressFixture()
	seedActiveProject(store, "proj-1", "company-1", 0)
	seedModule(store, "mod-1", "proj-1", 100, 1)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusAccepted)

	// Only the owning student records progress.
	_, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "intruder", ModuleID: "mod-1", Percentage: 10,
	})
	require.ErrorIs(t, err, shared.ErrNotApplicationOwner)

	// Only executable applications take progress.
	seedApplication(store, "app-2", "proj-1", "student-2", application.StatusPending)
	_, err = h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-2", StudentID: "student-2", ModuleID: "mod-1", Percentage: 10,
	})
	require.ErrorIs(t, err, shared.ErrApplicationNotExecutable)

	// A module from another project is a business-rule violation, not a
	// missing entity.
	seedModule(store, "mod-other", "proj-other", 50, 1)
	_, err = h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-other", Percentage: 10,
	})
	require.ErrorIs(t, err, shared.ErrModuleNotInProject)
	assert.True(t, shared.IsValidation(err))
	assert.False(t, shared.IsNotFound(err))

	// A genuinely absent module id stays a not-found.
	_, err = h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-ghost", Percentage: 10,
	})
	require.ErrorIs(t, err, shared.ErrModuleNotFound)
	assert.True(t, shared.IsNotFound(err))

	// Percentage bounds.
	_, err = h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-1", Percentage: 101,
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestUpdateProgressHandler_LoweringReopensModule(t *testing.T) {
	store, h, _ := newProgressFixture()
	seedActiveProject(store, "proj-1", "company-1", 0)
	seedModule(store, "mod-1", "proj-1", 100, 1)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusAccepted)

	_, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-1", Percentage: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, application.StatusUnderReview, store.applications["app-1"].Status)

	// Lowering after the transition keeps the application under review;
	// the transition does not unwind.
	result, err := h.Handle(context.Background(), UpdateProgressCommand{
		ApplicationID: "app-1", StudentID: "student-1", ModuleID: "mod-1", Percentage: 80,
	})
	require.NoError(t, err)
	assert.False(t, result.Transitioned)
	assert.Equal(t, 0, result.CompletedModules)
	assert.Equal(t, application.StatusUnderReview, store.applications["app-1"].Status)
}
