package review

import (
	"math"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// STATISTICS PROJECTION
// ═══════════════════════════════════════════════════════════════════════════

// Statistics is the read projection over a reviewee's eligible review set.
type Statistics struct {
	// Total is the number of eligible reviews.
	Total int

	// Average is the arithmetic mean rating, rounded to two decimals.
	Average float64

	// StarBuckets counts reviews per star value (index 0 = 1 star,
	// index 4 = 5 stars). Bucket boundaries are half-open ranges
	// [n-0.5, n+0.5) centered on each star, so a 4.5 rating counts as
	// a 5-star review.
	StarBuckets [5]int

	// RecommendationPct is round(100 x recommendCount / total).
	RecommendationPct int
}

// ComputeStatistics builds the statistics projection from an eligible
// review set. Passing reviews that are not eligible is the caller's bug;
// the projection does not re-filter.
func ComputeStatistics(reviews []*Review) Statistics {
	stats := Statistics{Total: len(reviews)}
	if stats.Total == 0 {
		return stats
	}

	sum := 0.0
	recommended := 0
	for _, r := range reviews {
		sum += r.Rating.Float64()
		stats.StarBuckets[r.Rating.StarBucket()-1]++
		if r.Recommend {
			recommended++
		}
	}

	stats.Average = shared.Round2(sum / float64(stats.Total))
	stats.RecommendationPct = int(math.Round(100 * float64(recommended) / float64(stats.Total)))
	return stats
}

// Ratings extracts the rating values of a review set, for aggregate
// recomputation.
func Ratings(reviews []*Review) []float64 {
	out := make([]float64, len(reviews))
	for i, r := range reviews {
		out[i] = r.Rating.Float64()
	}
	return out
}
