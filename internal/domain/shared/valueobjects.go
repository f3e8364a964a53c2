// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"math"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Rating Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Rating represents a review rating value (1.0 - 5.0 stars).
type Rating float64

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

// IsValid checks if the rating is within valid range.
func (r Rating) IsValid() bool {
	return r >= MinRating && r <= MaxRating
}

// Float64 returns the underlying float64 value.
func (r Rating) Float64() float64 {
	return float64(r)
}

// StarBucket returns the star bucket (1-5) this rating falls into.
// Buckets are half-open ranges [n-0.5, n+0.5) centered on each star value,
// so 4.5 counts toward the 5-star bucket.
func (r Rating) StarBucket() int {
	bucket := int(math.Floor(float64(r) + 0.5))
	if bucket < int(MinRating) {
		return int(MinRating)
	}
	if bucket > int(MaxRating) {
		return int(MaxRating)
	}
	return bucket
}

// NewRating creates a new Rating with validation.
func NewRating(value float64) (Rating, error) {
	r := Rating(value)
	if !r.IsValid() {
		return 0, ErrInvalidRating
	}
	return r, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Percent Value Object (module progress, completion)
// ═══════════════════════════════════════════════════════════════════════════

// Percent represents a percentage value in [0, 100].
type Percent float64

// IsValid checks if the percentage is within [0, 100].
func (p Percent) IsValid() bool {
	return p >= 0 && p <= 100
}

// IsComplete returns true when the percentage equals 100.
func (p Percent) IsComplete() bool {
	return p == 100
}

// Float64 returns the underlying float64 value.
func (p Percent) Float64() float64 {
	return float64(p)
}

// NewPercent creates a new Percent with validation.
func NewPercent(value float64) (Percent, error) {
	p := Percent(value)
	if !p.IsValid() {
		return 0, NewDomainError("shared", "NewPercent", ErrValueOutOfRange,
			"percentage must be between 0 and 100")
	}
	return p, nil
}

// Round2 rounds a float to two decimal places. Derived aggregates (overall
// completion, average ratings) are always stored rounded to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ═══════════════════════════════════════════════════════════════════════════
// Money Value Object (bid amounts, budgets)
// ═══════════════════════════════════════════════════════════════════════════

// Money represents a monetary amount in the platform's base currency.
type Money float64

// IsValid checks that the amount is non-negative.
func (m Money) IsValid() bool {
	return m >= 0
}

// Float64 returns the underlying float64 value.
func (m Money) Float64() float64 {
	return float64(m)
}

// NewMoney creates a new Money value with validation.
func NewMoney(amount float64) (Money, error) {
	m := Money(amount)
	if !m.IsValid() {
		return 0, NewDomainError("shared", "NewMoney", ErrValueOutOfRange,
			"amount cannot be negative")
	}
	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// SkillName Value Object
// ═══════════════════════════════════════════════════════════════════════════

// SkillName is a normalized skill identifier from the skill catalog.
type SkillName string

// IsValid checks that the skill name is non-empty and reasonably sized.
func (s SkillName) IsValid() bool {
	n := len(strings.TrimSpace(string(s)))
	return n >= 1 && n <= 100
}

// String returns the string representation.
func (s SkillName) String() string {
	return string(s)
}

// Normalize returns a lowercase, trimmed version of the skill name.
func (s SkillName) Normalize() SkillName {
	return SkillName(strings.ToLower(strings.TrimSpace(string(s))))
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Pagination represents pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Offset returns the offset for database queries.
func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the limit for database queries.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// NewPagination creates a new Pagination with defaults.
func NewPagination(page, pageSize int) Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// DefaultPagination returns default pagination.
func DefaultPagination() Pagination {
	return NewPagination(1, DefaultPageSize)
}
