package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

func newCompanyReview(t *testing.T, anonymous bool) *Review {
	t.Helper()
	rv, err := NewReview(NewReviewParams{
		ID:            "rev-1",
		Kind:          KindCompany,
		ApplicationID: "app-1",
		AuthorID:      "student-1",
		RevieweeID:    "company-1",
		Rating:        4,
		Text:          "Clear brief, fast feedback.",
		Recommend:     true,
		Anonymous:     anonymous,
	})
	require.NoError(t, err)
	return rv
}

func newStudentReview(t *testing.T, public bool) *Review {
	t.Helper()
	rv, err := NewReview(NewReviewParams{
		ID:            "rev-2",
		Kind:          KindStudent,
		ApplicationID: "app-1",
		AuthorID:      "company-1",
		RevieweeID:    "student-1",
		Rating:        5,
		Recommend:     true,
		Public:        public,
	})
	require.NoError(t, err)
	return rv
}

func TestNewReview_CompanyKindStartsPending(t *testing.T) {
	rv := newCompanyReview(t, true)

	assert.Equal(t, StatusPending, rv.Status)
	assert.True(t, rv.Anonymous)
	assert.False(t, rv.Public)
	assert.False(t, rv.IsEligible())
}

func TestNewReview_StudentKindStartsApproved(t *testing.T) {
	rv := newStudentReview(t, true)

	assert.Equal(t, StatusApproved, rv.Status)
	assert.True(t, rv.Public)
	assert.True(t, rv.IsEligible())

	// Non-public student reviews stay out of the aggregate.
	private := newStudentReview(t, false)
	assert.Equal(t, StatusApproved, private.Status)
	assert.False(t, private.IsEligible())
}

func TestNewReview_FlagsGatedByKind(t *testing.T) {
	// Anonymous only applies to student-authored company reviews;
	// Public only to company-authored student reviews.
	rv, err := NewReview(NewReviewParams{
		ID: "r", Kind: KindStudent, ApplicationID: "a",
		AuthorID: "c", RevieweeID: "s", Rating: 3,
		Anonymous: true, Public: true,
	})
	require.NoError(t, err)
	assert.False(t, rv.Anonymous)
	assert.True(t, rv.Public)

	rv, err = NewReview(NewReviewParams{
		ID: "r", Kind: KindCompany, ApplicationID: "a",
		AuthorID: "s", RevieweeID: "c", Rating: 3,
		Anonymous: true, Public: true,
	})
	require.NoError(t, err)
	assert.True(t, rv.Anonymous)
	assert.False(t, rv.Public)
}

func TestNewReview_Validation(t *testing.T) {
	_, err := NewReview(NewReviewParams{
		ID: "r", Kind: Kind("peer"), ApplicationID: "a",
		AuthorID: "x", RevieweeID: "y", Rating: 3,
	})
	require.Error(t, err)

	_, err = NewReview(NewReviewParams{
		ID: "r", Kind: KindCompany, ApplicationID: "a",
		AuthorID: "x", RevieweeID: "y", Rating: 6,
	})
	require.ErrorIs(t, err, shared.ErrInvalidRating)

	_, err = NewReview(NewReviewParams{
		ID: "r", Kind: KindCompany, ApplicationID: "a",
		AuthorID: "x", RevieweeID: "y", Rating: 4,
		SubRatings: SubRatings{Communication: 7},
	})
	require.ErrorIs(t, err, shared.ErrInvalidRating)

	// Zero sub-ratings mean "not rated" and pass.
	_, err = NewReview(NewReviewParams{
		ID: "r", Kind: KindCompany, ApplicationID: "a",
		AuthorID: "x", RevieweeID: "y", Rating: 4,
		SubRatings: SubRatings{Quality: 5},
	})
	require.NoError(t, err)
}

func TestReview_Moderate(t *testing.T) {
	rv := newCompanyReview(t, false)

	require.NoError(t, rv.Moderate(ActionApprove, "admin-1"))
	assert.Equal(t, StatusApproved, rv.Status)
	assert.Equal(t, "admin-1", rv.ModeratedBy)
	assert.NotNil(t, rv.ModeratedAt)
	assert.True(t, rv.IsEligible())

	// Approve is one-shot.
	err := rv.Moderate(ActionApprove, "admin-2")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	// Flag retracts an approved review.
	require.NoError(t, rv.Moderate(ActionFlag, "admin-2"))
	assert.Equal(t, StatusFlagged, rv.Status)
	assert.False(t, rv.IsEligible())

	// Flagged is terminal.
	err = rv.Moderate(ActionApprove, "admin-1")
	require.Error(t, err)
}

func TestReview_Moderate_RejectFromPendingOnly(t *testing.T) {
	rv := newCompanyReview(t, false)
	require.NoError(t, rv.Moderate(ActionReject, "admin-1"))
	assert.Equal(t, StatusRejected, rv.Status)

	err := rv.Moderate(ActionFlag, "admin-1")
	require.Error(t, err)

	// Flag needs an approved review.
	pending := newCompanyReview(t, false)
	err = pending.Moderate(ActionFlag, "admin-1")
	require.Error(t, err)

	err = pending.Moderate(ModerationAction("escalate"), "admin-1")
	require.Error(t, err)
}

func TestReview_AddResponse(t *testing.T) {
	rv := newCompanyReview(t, false)

	// Only approved reviews accept a response.
	err := rv.AddResponse("thanks")
	require.ErrorIs(t, err, shared.ErrReviewNotApproved)

	require.NoError(t, rv.Moderate(ActionApprove, "admin-1"))
	require.NoError(t, rv.AddResponse("  Thanks for working with us.  "))
	assert.Equal(t, "Thanks for working with us.", rv.ResponseText)
	assert.NotNil(t, rv.ResponseAt)

	// The response is one-shot.
	err = rv.AddResponse("one more thing")
	require.ErrorIs(t, err, shared.ErrAlreadyResponded)

	fresh := newStudentReview(t, true)
	err = fresh.AddResponse("   ")
	require.Error(t, err)
}

func TestNewModerationEntry(t *testing.T) {
	entry := NewModerationEntry("entry-1", "rev-1", "admin-1", ActionApprove)

	assert.Equal(t, "rev-1", entry.ReviewID)
	assert.Equal(t, ActionApprove, entry.Action)
	assert.False(t, entry.ActedAt.IsZero())
}
