package query

import (
	"context"
	"errors"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST REVIEWS QUERY
// The public review surface of a company or student: eligible reviews,
// newest first, paginated, together with the statistics projection over
// the full eligible set. Statistics are served read-through from the
// cache; the cache is a pure accelerator and its failures never fail
// the query.
// ══════════════════════════════════════════════════════════════════════════════

// StatisticsCache caches the statistics projection per reviewee.
// Implemented by the Redis rating cache.
type StatisticsCache interface {
	GetStatistics(ctx context.Context, revieweeID string, kind review.Kind) (review.Statistics, bool, error)
	SetStatistics(ctx context.Context, revieweeID string, kind review.Kind, stats review.Statistics) error
}

// ListReviewsQuery contains the review listing parameters.
type ListReviewsQuery struct {
	// RevieweeID is the company or student whose reviews are listed.
	RevieweeID string

	// Kind selects which side's reviews to list.
	Kind review.Kind

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of reviews per page (default 20, max 100).
	PageSize int
}

// Validate validates the query parameters.
func (q ListReviewsQuery) Validate() error {
	if q.RevieweeID == "" {
		return errors.New("reviewee_id is required")
	}
	if !q.Kind.IsValid() {
		return errors.New("kind must be student or company")
	}
	return nil
}

// ReviewDTO is the public review read model. Anonymous reviews carry no
// author identity.
type ReviewDTO struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	AuthorID      string     `json:"author_id,omitempty"`
	Rating        float64    `json:"rating"`
	Communication float64    `json:"communication,omitempty"`
	Quality       float64    `json:"quality,omitempty"`
	Timeliness    float64    `json:"timeliness,omitempty"`
	Text          string     `json:"text,omitempty"`
	Recommend     bool       `json:"recommend"`
	Anonymous     bool       `json:"anonymous"`
	ResponseText  string     `json:"response_text,omitempty"`
	ResponseAt    *time.Time `json:"response_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// StatisticsDTO is the statistics projection over the eligible set.
type StatisticsDTO struct {
	Total             int     `json:"total"`
	Average           float64 `json:"average"`
	StarBuckets       [5]int  `json:"star_buckets"`
	RecommendationPct int     `json:"recommendation_pct"`
}

// ListReviewsResult contains one page of reviews with the statistics.
type ListReviewsResult struct {
	Reviews    []ReviewDTO   `json:"reviews"`
	Statistics StatisticsDTO `json:"statistics"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	HasMore    bool          `json:"has_more"`
}

// ListReviewsHandler handles the ListReviewsQuery.
type ListReviewsHandler struct {
	reviewRepo review.Repository
	statsCache StatisticsCache
}

// NewListReviewsHandler creates a new ListReviewsHandler. The cache is
// optional; pass nil to always compute statistics from the repository.
func NewListReviewsHandler(reviewRepo review.Repository, statsCache StatisticsCache) *ListReviewsHandler {
	return &ListReviewsHandler{
		reviewRepo: reviewRepo,
		statsCache: statsCache,
	}
}

// Handle executes the list reviews query.
func (h *ListReviewsHandler) Handle(ctx context.Context, query ListReviewsQuery) (*ListReviewsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.NewDomainError("query", "ListReviews", shared.ErrValidation, err.Error())
	}

	page := shared.NewPagination(query.Page, query.PageSize)

	reviews, total, err := h.reviewRepo.ListByReviewee(ctx, query.RevieweeID, query.Kind, page)
	if err != nil {
		return nil, err
	}

	stats, err := h.statistics(ctx, query.RevieweeID, query.Kind)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}

	return &ListReviewsResult{
		Reviews:    dtos,
		Statistics: toStatisticsDTO(stats),
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.Limit(),
		HasMore:    page.Offset()+len(reviews) < total,
	}, nil
}

// statistics serves the projection read-through: cache hit, else compute
// from the full eligible set and backfill the cache.
func (h *ListReviewsHandler) statistics(ctx context.Context, revieweeID string, kind review.Kind) (review.Statistics, error) {
	if h.statsCache != nil {
		if stats, found, err := h.statsCache.GetStatistics(ctx, revieweeID, kind); err == nil && found {
			return stats, nil
		}
	}

	eligible, err := h.reviewRepo.ListEligibleByReviewee(ctx, revieweeID, kind)
	if err != nil {
		return review.Statistics{}, err
	}
	stats := review.ComputeStatistics(eligible)

	if h.statsCache != nil {
		_ = h.statsCache.SetStatistics(ctx, revieweeID, kind, stats)
	}
	return stats, nil
}

func toReviewDTO(rv *review.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:            rv.ID,
		ApplicationID: rv.ApplicationID,
		Rating:        rv.Rating.Float64(),
		Communication: rv.SubRatings.Communication.Float64(),
		Quality:       rv.SubRatings.Quality.Float64(),
		Timeliness:    rv.SubRatings.Timeliness.Float64(),
		Text:          rv.Text,
		Recommend:     rv.Recommend,
		Anonymous:     rv.Anonymous,
		ResponseText:  rv.ResponseText,
		ResponseAt:    rv.ResponseAt,
		CreatedAt:     rv.CreatedAt,
	}
	if !rv.Anonymous {
		dto.AuthorID = rv.AuthorID
	}
	return dto
}

func toStatisticsDTO(stats review.Statistics) StatisticsDTO {
	return StatisticsDTO{
		Total:             stats.Total,
		Average:           stats.Average,
		StarBuckets:       stats.StarBuckets,
		RecommendationPct: stats.RecommendationPct,
	}
}
