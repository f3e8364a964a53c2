package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplication(NewApplicationParams{
		ID:           "app-1",
		ProjectID:    "proj-1",
		StudentID:    "student-1",
		BidAmount:    shared.Money(1500),
		Proposal:     "I can build this in two weeks.",
		DurationDays: 14,
	})
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, StatusPending, app.Status)
	assert.False(t, app.Paid)
	assert.Nil(t, app.ReviewedAt)
	assert.False(t, app.AppliedAt.IsZero())
}

func TestNewApplication_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params NewApplicationParams
	}{
		{"missing id", NewApplicationParams{ProjectID: "p", StudentID: "s", Proposal: "x"}},
		{"missing project", NewApplicationParams{ID: "a", StudentID: "s", Proposal: "x"}},
		{"missing student", NewApplicationParams{ID: "a", ProjectID: "p", Proposal: "x"}},
		{"blank proposal", NewApplicationParams{ID: "a", ProjectID: "p", StudentID: "s", Proposal: "   "}},
		{"negative bid", NewApplicationParams{ID: "a", ProjectID: "p", StudentID: "s", Proposal: "x", BidAmount: -1}},
		{"negative duration", NewApplicationParams{ID: "a", ProjectID: "p", StudentID: "s", Proposal: "x", DurationDays: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewApplication(tt.params)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestApplication_AcceptReject(t *testing.T) {
	app := newTestApplication(t)

	require.NoError(t, app.Accept("company-1", "welcome aboard"))
	assert.Equal(t, StatusAccepted, app.Status)
	assert.Equal(t, "company-1", app.ReviewedBy)
	assert.Equal(t, "welcome aboard", app.ReviewNote)
	assert.NotNil(t, app.ReviewedAt)

	// A decided application cannot be decided again.
	err := app.Reject("company-1", "")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, StatusAccepted, app.Status)

	rejected := newTestApplication(t)
	require.NoError(t, rejected.Reject("company-1", "not a fit"))
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.True(t, rejected.Status.IsTerminal())
}

func TestApplication_MarkUnderReview(t *testing.T) {
	app := newTestApplication(t)

	// Not legal from pending.
	_, err := app.MarkUnderReview()
	require.Error(t, err)

	require.NoError(t, app.Accept("company-1", ""))

	transitioned, err := app.MarkUnderReview()
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, StatusUnderReview, app.Status)

	// Repeating the transition is a no-op, not an error.
	transitioned, err = app.MarkUnderReview()
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.Equal(t, StatusUnderReview, app.Status)
}

func TestApplication_Withdraw(t *testing.T) {
	app := newTestApplication(t)
	require.NoError(t, app.Withdraw())
	assert.Equal(t, StatusWithdrawn, app.Status)

	// Withdraw is also legal from under-review.
	app = newTestApplication(t)
	require.NoError(t, app.Accept("company-1", ""))
	_, err := app.MarkUnderReview()
	require.NoError(t, err)
	require.NoError(t, app.Withdraw())

	// But not from accepted: the student is mid-execution.
	app = newTestApplication(t)
	require.NoError(t, app.Accept("company-1", ""))
	err = app.Withdraw()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, StatusAccepted, app.Status)
}

func TestApplication_Complete(t *testing.T) {
	app := newTestApplication(t)

	err := app.Complete()
	require.Error(t, err)

	require.NoError(t, app.Accept("company-1", ""))
	_, err = app.MarkUnderReview()
	require.NoError(t, err)

	require.NoError(t, app.Complete())
	assert.Equal(t, StatusCompleted, app.Status)
	assert.True(t, app.Status.IsTerminal())
}

func TestApplication_RecordPayment(t *testing.T) {
	app := newTestApplication(t)

	// Payment gate: only completed applications get paid.
	err := app.RecordPayment()
	require.ErrorIs(t, err, shared.ErrApplicationNotCompleted)

	require.NoError(t, app.Accept("company-1", ""))
	_, err = app.MarkUnderReview()
	require.NoError(t, err)
	require.NoError(t, app.Complete())

	require.NoError(t, app.RecordPayment())
	assert.True(t, app.Paid)
	assert.NotNil(t, app.PaidAt)

	// The flag is one-way.
	err = app.RecordPayment()
	require.ErrorIs(t, err, shared.ErrAlreadyPaid)
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, StatusAccepted.IsExecutable())
	assert.True(t, StatusUnderReview.IsExecutable())
	assert.False(t, StatusPending.IsExecutable())
	assert.False(t, StatusCompleted.IsExecutable())

	assert.True(t, StatusPending.CanWithdraw())
	assert.True(t, StatusUnderReview.CanWithdraw())
	assert.False(t, StatusAccepted.CanWithdraw())
	assert.False(t, StatusRejected.CanWithdraw())

	assert.False(t, Status("bogus").IsValid())
}
