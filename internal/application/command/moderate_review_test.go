package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// moderationFixture seeds a completed application with a pending
// student-authored company review.
func moderationFixture(t *testing.T) (*memStore, *ModerateReviewHandler, *capturingPublisher, string) {
	t.Helper()
	store := newMemStore()
	pub := &capturingPublisher{}
	idGen := &seqIDGen{}
	uow := &memUnitOfWork{store}

	seedCompany(store, "company-1", "Acme")
	seedStudent(store, "student-1", "Dana")
	seedActiveProject(store, "proj-1", "company-1", 0)
	seedApplication(store, "app-1", "proj-1", "student-1", application.StatusCompleted)

	submit := NewSubmitReviewHandler(uow, idGen, pub)
	result, err := submit.Handle(context.Background(), SubmitReviewCommand{
		ApplicationID: "app-1", AuthorID: "student-1", Rating: 4, Recommend: true,
	})
	require.NoError(t, err)

	return store, NewModerateReviewHandler(uow, idGen, pub), pub, result.ReviewID
}

func TestModerateReviewHandler_ApproveRecomputesAggregate(t *testing.T) {
	store, h, pub, reviewID := moderationFixture(t)

	result, err := h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: review.ActionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, review.StatusApproved, result.Status)

	// Approval flips eligibility, so the company's aggregate moves.
	company := store.companies["company-1"]
	assert.Equal(t, 1, company.Rating.Count)
	assert.Equal(t, 4.0, company.Rating.Average)

	// Audit trail.
	require.Len(t, store.moderationLog, 1)
	assert.Equal(t, review.ActionApprove, store.moderationLog[0].Action)
	assert.Equal(t, "admin-1", store.moderationLog[0].AdminID)

	var moderated int
	for _, ev := range pub.published() {
		if ev.EventType() == shared.EventReviewApproved {
			moderated++
		}
	}
	assert.Equal(t, 1, moderated)
}

func TestModerateReviewHandler_RejectLeavesAggregateUntouched(t *testing.T) {
	store, h, _, reviewID := moderationFixture(t)

	result, err := h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: review.ActionReject,
	})
	require.NoError(t, err)
	assert.Equal(t, review.StatusRejected, result.Status)

	// Pending to rejected never changes eligibility.
	assert.Zero(t, store.companies["company-1"].Rating.Count)
	assert.Len(t, store.moderationLog, 1)
}

func TestModerateReviewHandler_FlagRetractsFromAggregate(t *testing.T) {
	store, h, _, reviewID := moderationFixture(t)

	_, err := h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: review.ActionApprove,
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.companies["company-1"].Rating.Count)

	_, err = h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-2", Action: review.ActionFlag,
	})
	require.NoError(t, err)

	// The flagged review no longer counts; the aggregate is recomputed
	// from the surviving set, which is empty.
	assert.Zero(t, store.companies["company-1"].Rating.Count)
	assert.Zero(t, store.companies["company-1"].Rating.Average)
	assert.Len(t, store.moderationLog, 2)
}

func TestModerateReviewHandler_IllegalTransition(t *testing.T) {
	store, h, _, reviewID := moderationFixture(t)

	_, err := h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: review.ActionFlag,
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	// Nothing is logged for a refused action.
	assert.Empty(t, store.moderationLog)
}

func TestModerateReviewHandler_Validation(t *testing.T) {
	_, h, _, reviewID := moderationFixture(t)

	_, err := h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: "escalate",
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	_, err = h.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: "missing", AdminID: "admin-1", Action: review.ActionApprove,
	})
	require.True(t, shared.IsNotFound(err))
}

func TestRespondToReviewHandler(t *testing.T) {
	store, moderate, pub, reviewID := moderationFixture(t)
	uow := &memUnitOfWork{store}
	respond := NewRespondToReviewHandler(uow, pub)

	// A pending review cannot be responded to.
	err := respond.Handle(context.Background(), RespondToReviewCommand{
		ReviewID: reviewID, RevieweeID: "company-1", Text: "thanks",
	})
	require.ErrorIs(t, err, shared.ErrReviewNotApproved)

	_, err = moderate.Handle(context.Background(), ModerateReviewCommand{
		ReviewID: reviewID, AdminID: "admin-1", Action: review.ActionApprove,
	})
	require.NoError(t, err)

	// Only the reviewee responds.
	err = respond.Handle(context.Background(), RespondToReviewCommand{
		ReviewID: reviewID, RevieweeID: "student-1", Text: "thanks",
	})
	require.Error(t, err)
	assert.True(t, shared.IsUnauthorized(err))

	err = respond.Handle(context.Background(), RespondToReviewCommand{
		ReviewID: reviewID, RevieweeID: "company-1", Text: "Appreciated, come back any time.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Appreciated, come back any time.", store.reviews[reviewID].ResponseText)

	// One-shot.
	err = respond.Handle(context.Background(), RespondToReviewCommand{
		ReviewID: reviewID, RevieweeID: "company-1", Text: "one more",
	})
	require.ErrorIs(t, err, shared.ErrAlreadyResponded)
}
