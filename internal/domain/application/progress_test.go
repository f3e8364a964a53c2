package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func TestModuleProgress_SetPercentage(t *testing.T) {
	mp := NewModuleProgress("prog-1", "app-1", "mod-1")
	assert.Equal(t, shared.Percent(0), mp.Percentage)
	assert.False(t, mp.IsCompleted)

	require.NoError(t, mp.SetPercentage(40, "first pass"))
	assert.Equal(t, shared.Percent(40), mp.Percentage)
	assert.Equal(t, "first pass", mp.Note)
	assert.Nil(t, mp.CompletedAt)

	require.NoError(t, mp.SetPercentage(100, "done"))
	assert.True(t, mp.IsCompleted)
	require.NotNil(t, mp.CompletedAt)
	firstCompletion := *mp.CompletedAt

	// Lowering clears the flag but keeps the first completion timestamp.
	require.NoError(t, mp.SetPercentage(90, "found a bug"))
	assert.False(t, mp.IsCompleted)
	require.NotNil(t, mp.CompletedAt)
	assert.Equal(t, firstCompletion, *mp.CompletedAt)

	require.NoError(t, mp.SetPercentage(100, ""))
	assert.True(t, mp.IsCompleted)
	assert.Equal(t, firstCompletion, *mp.CompletedAt)
}

func TestModuleProgress_SetPercentage_OutOfRange(t *testing.T) {
	mp := NewModuleProgress("prog-1", "app-1", "mod-1")

	err := mp.SetPercentage(101, "")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	err = mp.SetPercentage(-1, "")
	require.Error(t, err)
}

func testModule(t *testing.T, id string, weight float64, order int) *project.Module {
	t.Helper()
	m, err := project.NewModule(project.NewModuleParams{
		ID:         id,
		ProjectID:  "proj-1",
		Title:      "module " + id,
		Weight:     weight,
		OrderIndex: order,
	})
	require.NoError(t, err)
	return m
}

func progressAt(t *testing.T, moduleID string, pct float64) *ModuleProgress {
	t.Helper()
	mp := NewModuleProgress("prog-"+moduleID, "app-1", moduleID)
	require.NoError(t, mp.SetPercentage(shared.Percent(pct), ""))
	return mp
}

func TestProgressSheet_OverallCompletion(t *testing.T) {
	modules := project.Modules{
		testModule(t, "m1", 50, 1),
		testModule(t, "m2", 30, 2),
		testModule(t, "m3", 20, 3),
	}
	records := []*ModuleProgress{
		progressAt(t, "m1", 100),
		progressAt(t, "m2", 100),
		// m3 untouched: appears at 0%.
	}

	sheet := NewProgressSheet("app-1", modules, records)
	assert.InDelta(t, 80.0, sheet.OverallCompletion(), 0.001)
	assert.Equal(t, 2, sheet.CompletedCount())
	assert.Equal(t, 3, sheet.TotalCount())
	assert.False(t, sheet.IsFullyCompleted())
}

func TestProgressSheet_PartialWeights(t *testing.T) {
	modules := project.Modules{
		testModule(t, "m1", 60, 1),
		testModule(t, "m2", 40, 2),
	}
	records := []*ModuleProgress{
		progressAt(t, "m1", 50),
		progressAt(t, "m2", 25),
	}

	// 60*0.50 + 40*0.25 = 40.00
	sheet := NewProgressSheet("app-1", modules, records)
	assert.InDelta(t, 40.0, sheet.OverallCompletion(), 0.001)
}

func TestProgressSheet_IsFullyCompleted(t *testing.T) {
	modules := project.Modules{
		testModule(t, "m1", 50, 1),
		testModule(t, "m2", 50, 2),
	}
	records := []*ModuleProgress{
		progressAt(t, "m1", 100),
		progressAt(t, "m2", 100),
	}

	sheet := NewProgressSheet("app-1", modules, records)
	assert.True(t, sheet.IsFullyCompleted())
	assert.InDelta(t, 100.0, sheet.OverallCompletion(), 0.001)
}

func TestProgressSheet_EmptyCurriculum(t *testing.T) {
	sheet := NewProgressSheet("app-1", nil, nil)

	// An empty curriculum never reads as complete.
	assert.False(t, sheet.IsFullyCompleted())
	assert.Zero(t, sheet.OverallCompletion())
	assert.Zero(t, sheet.TotalCount())
}
