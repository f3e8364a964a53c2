package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// fakeReviewRepo serves a fixed review set and counts repository reads so
// the cache behavior is observable.
type fakeReviewRepo struct {
	reviews       []*review.Review
	eligibleReads int
}

func (f *fakeReviewRepo) Create(context.Context, *review.Review) error { return nil }
func (f *fakeReviewRepo) Update(context.Context, *review.Review) error { return nil }

func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*review.Review, error) {
	for _, rv := range f.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return nil, shared.ErrReviewNotFound
}

func (f *fakeReviewRepo) GetByTriple(context.Context, string, string, string) (*review.Review, error) {
	return nil, shared.ErrReviewNotFound
}

func (f *fakeReviewRepo) eligible(revieweeID string, kind review.Kind) []*review.Review {
	var out []*review.Review
	for _, rv := range f.reviews {
		if rv.RevieweeID == revieweeID && rv.Kind == kind && rv.IsEligible() {
			out = append(out, rv)
		}
	}
	return out
}

func (f *fakeReviewRepo) ListEligibleByReviewee(_ context.Context, revieweeID string, kind review.Kind) ([]*review.Review, error) {
	f.eligibleReads++
	return f.eligible(revieweeID, kind), nil
}

func (f *fakeReviewRepo) ListByReviewee(_ context.Context, revieweeID string, kind review.Kind, page shared.Pagination) ([]*review.Review, int, error) {
	all := f.eligible(revieweeID, kind)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// mapStatsCache is an in-memory StatisticsCache.
type mapStatsCache struct {
	entries map[string]review.Statistics
	failing bool
}

func newMapStatsCache() *mapStatsCache {
	return &mapStatsCache{entries: make(map[string]review.Statistics)}
}

func statsKey(revieweeID string, kind review.Kind) string {
	return revieweeID + "/" + string(kind)
}

func (c *mapStatsCache) GetStatistics(_ context.Context, revieweeID string, kind review.Kind) (review.Statistics, bool, error) {
	if c.failing {
		return review.Statistics{}, false, errors.New("cache down")
	}
	stats, ok := c.entries[statsKey(revieweeID, kind)]
	return stats, ok, nil
}

func (c *mapStatsCache) SetStatistics(_ context.Context, revieweeID string, kind review.Kind, stats review.Statistics) error {
	if c.failing {
		return errors.New("cache down")
	}
	c.entries[statsKey(revieweeID, kind)] = stats
	return nil
}

func eligibleCompanyReview(id string, rating float64, recommend, anonymous bool, age time.Duration) *review.Review {
	return &review.Review{
		ID:            id,
		Kind:          review.KindCompany,
		ApplicationID: "app-" + id,
		AuthorID:      "student-1",
		RevieweeID:    "company-1",
		Rating:        shared.Rating(rating),
		Recommend:     recommend,
		Status:        review.StatusApproved,
		Anonymous:     anonymous,
		CreatedAt:     time.Now().UTC().Add(-age),
	}
}

func TestListReviewsHandler(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []*review.Review{
		eligibleCompanyReview("r1", 5, true, false, 3*time.Hour),
		eligibleCompanyReview("r2", 4, true, true, 2*time.Hour),
		eligibleCompanyReview("r3", 3, false, false, time.Hour),
	}}

	h := NewListReviewsHandler(repo, nil)
	result, err := h.Handle(context.Background(), ListReviewsQuery{
		RevieweeID: "company-1", Kind: review.KindCompany,
	})
	require.NoError(t, err)

	require.Len(t, result.Reviews, 3)
	// Newest first.
	assert.Equal(t, "r3", result.Reviews[0].ID)
	assert.Equal(t, "r1", result.Reviews[2].ID)
	assert.Equal(t, 3, result.TotalCount)
	assert.False(t, result.HasMore)

	// Anonymous reviews carry no author identity.
	var anon ReviewDTO
	for _, dto := range result.Reviews {
		if dto.ID == "r2" {
			anon = dto
		}
	}
	assert.True(t, anon.Anonymous)
	assert.Empty(t, anon.AuthorID)
	assert.Equal(t, "student-1", result.Reviews[0].AuthorID)

	assert.Equal(t, 3, result.Statistics.Total)
	assert.InDelta(t, 4.0, result.Statistics.Average, 0.001)
	assert.Equal(t, 67, result.Statistics.RecommendationPct)
}

func TestListReviewsHandler_Pagination(t *testing.T) {
	repo := &fakeReviewRepo{}
	for i := 0; i < 25; i++ {
		repo.reviews = append(repo.reviews,
			eligibleCompanyReview(fmt.Sprintf("r%02d", i), 4, true, false, time.Duration(i)*time.Minute))
	}

	h := NewListReviewsHandler(repo, nil)
	result, err := h.Handle(context.Background(), ListReviewsQuery{
		RevieweeID: "company-1", Kind: review.KindCompany, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Len(t, result.Reviews, 10)
	assert.Equal(t, 25, result.TotalCount)
	assert.True(t, result.HasMore)

	result, err = h.Handle(context.Background(), ListReviewsQuery{
		RevieweeID: "company-1", Kind: review.KindCompany, Page: 3, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Len(t, result.Reviews, 5)
	assert.False(t, result.HasMore)
}

func TestListReviewsHandler_StatisticsReadThrough(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []*review.Review{
		eligibleCompanyReview("r1", 5, true, false, time.Hour),
	}}
	cache := newMapStatsCache()
	h := NewListReviewsHandler(repo, cache)

	query := ListReviewsQuery{RevieweeID: "company-1", Kind: review.KindCompany}

	// Miss: computed from the repository and backfilled.
	_, err := h.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.eligibleReads)
	assert.Len(t, cache.entries, 1)

	// Hit: no second eligible-set read.
	result, err := h.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.eligibleReads)
	assert.Equal(t, 1, result.Statistics.Total)
}

func TestListReviewsHandler_CacheFailureFallsBack(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []*review.Review{
		eligibleCompanyReview("r1", 5, true, false, time.Hour),
	}}
	cache := newMapStatsCache()
	cache.failing = true
	h := NewListReviewsHandler(repo, cache)

	// A broken cache degrades to repository reads, it never fails the
	// query.
	result, err := h.Handle(context.Background(), ListReviewsQuery{
		RevieweeID: "company-1", Kind: review.KindCompany,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Statistics.Total)
	assert.Equal(t, 1, repo.eligibleReads)
}

func TestListReviewsQuery_Validate(t *testing.T) {
	h := NewListReviewsHandler(&fakeReviewRepo{}, nil)

	_, err := h.Handle(context.Background(), ListReviewsQuery{Kind: review.KindCompany})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	_, err = h.Handle(context.Background(), ListReviewsQuery{RevieweeID: "x", Kind: "peer"})
	require.Error(t, err)
}
