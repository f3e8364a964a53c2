package account

import (
	"context"

	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ═══════════════════════════════════════════════════════════════════════════

// CompanyRepository defines storage operations for company accounts.
type CompanyRepository interface {
	// Create stores a new company.
	// Returns shared.ErrAccountAlreadyExists if the email is taken.
	Create(ctx context.Context, company *Company) error

	// GetByID returns a company by its internal ID.
	// Returns shared.ErrCompanyNotFound if absent.
	GetByID(ctx context.Context, id string) (*Company, error)

	// GetByEmail returns a company by email.
	// Returns shared.ErrCompanyNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Company, error)

	// Update persists changes to a company.
	Update(ctx context.Context, company *Company) error

	// LockForRating acquires a row lock on the company so that concurrent
	// rating recomputations against the same reviewee serialize. Must be
	// called inside a transaction; the lock is released at commit/rollback.
	LockForRating(ctx context.Context, id string) (*Company, error)
}

// StudentRepository defines storage operations for student accounts.
type StudentRepository interface {
	// Create stores a new student.
	// Returns shared.ErrAccountAlreadyExists if the email is taken.
	Create(ctx context.Context, student *Student) error

	// GetByID returns a student by its internal ID.
	// Returns shared.ErrStudentNotFound if absent.
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetByEmail returns a student by email.
	// Returns shared.ErrStudentNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Student, error)

	// Update persists changes to a student.
	Update(ctx context.Context, student *Student) error

	// LockForRating acquires a row lock on the student for serialized
	// rating recomputation. Must be called inside a transaction.
	LockForRating(ctx context.Context, id string) (*Student, error)
}

// SkillCatalog is the read-only lookup of valid skill identifiers.
type SkillCatalog interface {
	// GetByID returns the skill with the given ID.
	// Returns shared.ErrSkillNotFound if the skill does not exist.
	GetByID(ctx context.Context, id string) (*Skill, error)

	// GetByName returns the skill with the given normalized name.
	// Returns shared.ErrSkillNotFound if the skill does not exist.
	GetByName(ctx context.Context, name shared.SkillName) (*Skill, error)
}
