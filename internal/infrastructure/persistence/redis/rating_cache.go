package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/review"
)

// TTLRatingStats bounds staleness of cached rating statistics. Moderation
// and new submissions invalidate eagerly; the TTL is the backstop.
const TTLRatingStats = 10 * time.Minute

// RatingCache caches the per-reviewee review statistics served on public
// profiles, so the full-recompute projection does not hit PostgreSQL on
// every read.
type RatingCache struct {
	cache *Cache
}

// NewRatingCache creates a new RatingCache.
func NewRatingCache(cache *Cache) *RatingCache {
	return &RatingCache{cache: cache}
}

func ratingKey(revieweeID string, kind review.Kind) string {
	return fmt.Sprintf("rating:%s:%s", kind, revieweeID)
}

// GetStatistics returns the cached statistics for a reviewee.
// The second return value is false on a cache miss.
func (rc *RatingCache) GetStatistics(ctx context.Context, revieweeID string, kind review.Kind) (review.Statistics, bool, error) {
	var stats review.Statistics
	err := rc.cache.Get(ctx, ratingKey(revieweeID, kind), &stats)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return review.Statistics{}, false, nil
		}
		return review.Statistics{}, false, err
	}
	return stats, true, nil
}

// SetStatistics caches the statistics for a reviewee.
func (rc *RatingCache) SetStatistics(ctx context.Context, revieweeID string, kind review.Kind, stats review.Statistics) error {
	return rc.cache.Set(ctx, ratingKey(revieweeID, kind), stats, TTLRatingStats)
}

// Invalidate drops the cached statistics for a reviewee. Called whenever
// the eligible review set changes: submission, moderation, or response.
func (rc *RatingCache) Invalidate(ctx context.Context, revieweeID string, kind review.Kind) error {
	return rc.cache.Delete(ctx, ratingKey(revieweeID, kind))
}
