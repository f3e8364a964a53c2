// Package account contains the profile entities of the two marketplace
// parties - companies posting projects and students executing them - plus
// the read-only skill catalog used for application gating.
package account

import (
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// AGGREGATE RATING
// ═══════════════════════════════════════════════════════════════════════════

// AggregateRating holds the derived reputation of a company or student.
// It is always recomputed from the full eligible review set, never
// incremented in place; the stored value is a cache of that computation.
type AggregateRating struct {
	// Average is the arithmetic mean of eligible review ratings,
	// rounded to two decimals. Zero when there are no eligible reviews.
	Average float64

	// Count is the number of eligible reviews.
	Count int
}

// Recompute replaces the aggregate with a fresh computation over the given
// eligible ratings.
func (a *AggregateRating) Recompute(ratings []float64) {
	if len(ratings) == 0 {
		a.Average = 0
		a.Count = 0
		return
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	a.Average = shared.Round2(sum / float64(len(ratings)))
	a.Count = len(ratings)
}

// ═══════════════════════════════════════════════════════════════════════════
// COMPANY
// ═══════════════════════════════════════════════════════════════════════════

// Company represents a company account that posts projects.
type Company struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// Name is the display name of the company.
	Name string

	// Email is the contact email (unique).
	Email string

	// PasswordHash is the bcrypt hash stored at registration.
	// Session and identity resolution are handled by an external collaborator.
	PasswordHash string

	// Description is a free-text company profile.
	Description string

	// Website is the company's public site.
	Website string

	// Rating is the derived reputation from approved reviews.
	Rating AggregateRating

	// CreatedAt is when the account was registered.
	CreatedAt time.Time

	// UpdatedAt is when the account was last modified.
	UpdatedAt time.Time
}

// NewCompanyParams contains parameters for registering a company.
type NewCompanyParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Description  string
	Website      string
}

// NewCompany creates a new company account with validation.
func NewCompany(params NewCompanyParams) (*Company, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("account", "NewCompany", shared.ErrEmptyValue, "company id is required")
	}
	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 200 {
		return nil, shared.NewDomainError("account", "NewCompany", shared.ErrInvalidInput, "company name must be 1-200 chars")
	}
	if !isValidEmail(params.Email) {
		return nil, shared.NewDomainError("account", "NewCompany", shared.ErrInvalidInput, "invalid email")
	}

	now := time.Now().UTC()
	return &Company{
		ID:           params.ID,
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash: params.PasswordHash,
		Description:  strings.TrimSpace(params.Description),
		Website:      strings.TrimSpace(params.Website),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ApplyRating replaces the company's aggregate rating from the current
// eligible review set.
func (c *Company) ApplyRating(ratings []float64) {
	c.Rating.Recompute(ratings)
	c.UpdatedAt = time.Now().UTC()
}

// ═══════════════════════════════════════════════════════════════════════════
// STUDENT
// ═══════════════════════════════════════════════════════════════════════════

// Student represents a student account that applies to projects.
type Student struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// Name is the student's display name.
	Name string

	// Email is the contact email (unique).
	Email string

	// PasswordHash is the bcrypt hash stored at registration.
	PasswordHash string

	// Bio is a free-text student profile.
	Bio string

	// Skills is the set of skill names the student claims, validated
	// against the skill catalog at registration time.
	Skills []shared.SkillName

	// Rating is the derived reputation from approved, public reviews.
	Rating AggregateRating

	// CreatedAt is when the account was registered.
	CreatedAt time.Time

	// UpdatedAt is when the account was last modified.
	UpdatedAt time.Time
}

// NewStudentParams contains parameters for registering a student.
type NewStudentParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Bio          string
	Skills       []shared.SkillName
}

// NewStudent creates a new student account with validation.
func NewStudent(params NewStudentParams) (*Student, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("account", "NewStudent", shared.ErrEmptyValue, "student id is required")
	}
	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 200 {
		return nil, shared.NewDomainError("account", "NewStudent", shared.ErrInvalidInput, "student name must be 1-200 chars")
	}
	if !isValidEmail(params.Email) {
		return nil, shared.NewDomainError("account", "NewStudent", shared.ErrInvalidInput, "invalid email")
	}

	skills := make([]shared.SkillName, 0, len(params.Skills))
	for _, s := range params.Skills {
		norm := s.Normalize()
		if !norm.IsValid() {
			return nil, shared.NewDomainError("account", "NewStudent", shared.ErrInvalidInput, "invalid skill name")
		}
		skills = append(skills, norm)
	}

	now := time.Now().UTC()
	return &Student{
		ID:           params.ID,
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash: params.PasswordHash,
		Bio:          strings.TrimSpace(params.Bio),
		Skills:       skills,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HasSkill reports whether the student claims the given skill.
func (s *Student) HasSkill(skill shared.SkillName) bool {
	norm := skill.Normalize()
	for _, have := range s.Skills {
		if have == norm {
			return true
		}
	}
	return false
}

// MissingSkills returns the subset of required skills the student lacks,
// in the order they were required. Used to build the skill-gate validation
// message on Apply.
func (s *Student) MissingSkills(required []shared.SkillName) []shared.SkillName {
	missing := make([]shared.SkillName, 0)
	for _, want := range required {
		if !s.HasSkill(want) {
			missing = append(missing, want.Normalize())
		}
	}
	return missing
}

// ApplyRating replaces the student's aggregate rating from the current
// eligible review set.
func (s *Student) ApplyRating(ratings []float64) {
	s.Rating.Recompute(ratings)
	s.UpdatedAt = time.Now().UTC()
}

// ═══════════════════════════════════════════════════════════════════════════
// SKILL CATALOG
// ═══════════════════════════════════════════════════════════════════════════

// Skill is a catalog entry identifying a valid skill.
type Skill struct {
	// ID is the skill identifier (UUID).
	ID string

	// Name is the normalized skill name.
	Name shared.SkillName

	// Category groups related skills (e.g., "backend", "design").
	Category string
}

// isValidEmail performs a minimal sanity check; full address verification
// belongs to the external identity collaborator.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && len(email) <= 254
}
