package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPANY REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// CompanyRepository implements account.CompanyRepository for PostgreSQL.
type CompanyRepository struct {
	db Querier
}

// NewCompanyRepository creates a new CompanyRepository on the pool.
func NewCompanyRepository(conn *Connection) *CompanyRepository {
	return &CompanyRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CompanyRepository) WithTx(tx pgx.Tx) *CompanyRepository {
	return &CompanyRepository{db: tx}
}

const companyColumns = `id, name, email, password_hash, description, website,
	rating_average, rating_count, created_at, updated_at`

// Create creates a new company account.
func (r *CompanyRepository) Create(ctx context.Context, c *account.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.PasswordHash,
		c.Description,
		c.Website,
		c.Rating.Average,
		c.Rating.Count,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID returns a company by internal ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*account.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanCompany(r.db.QueryRow(ctx, query, id))
}

// GetByEmail returns a company by email.
func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*account.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE email = $1`
	return r.scanCompany(r.db.QueryRow(ctx, query, email))
}

// Update updates a company.
func (r *CompanyRepository) Update(ctx context.Context, c *account.Company) error {
	query := `
		UPDATE companies SET
			name = $1,
			email = $2,
			password_hash = $3,
			description = $4,
			website = $5,
			rating_average = $6,
			rating_count = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		c.Name,
		c.Email,
		c.PasswordHash,
		c.Description,
		c.Website,
		c.Rating.Average,
		c.Rating.Count,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrCompanyNotFound
	}

	return nil
}

// LockForRating loads the company under FOR UPDATE so that concurrent
// rating recomputations serialize. Must run inside a transaction.
func (r *CompanyRepository) LockForRating(ctx context.Context, id string) (*account.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 FOR UPDATE`
	return r.scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *CompanyRepository) scanCompany(row pgx.Row) (*account.Company, error) {
	var c account.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&c.Description,
		&c.Website,
		&c.Rating.Average,
		&c.Rating.Count,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}
	return &c, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements account.StudentRepository for PostgreSQL.
type StudentRepository struct {
	db Querier
}

// NewStudentRepository creates a new StudentRepository on the pool.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

const studentColumns = `id, name, email, password_hash, bio, skills,
	rating_average, rating_count, created_at, updated_at`

// Create creates a new student account.
func (r *StudentRepository) Create(ctx context.Context, s *account.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		s.PasswordHash,
		s.Bio,
		skillsToStrings(s.Skills),
		s.Rating.Average,
		s.Rating.Count,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID returns a student by internal ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*account.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return r.scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByEmail returns a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*account.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`
	return r.scanStudent(r.db.QueryRow(ctx, query, email))
}

// Update updates a student.
func (r *StudentRepository) Update(ctx context.Context, s *account.Student) error {
	query := `
		UPDATE students SET
			name = $1,
			email = $2,
			password_hash = $3,
			bio = $4,
			skills = $5,
			rating_average = $6,
			rating_count = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		s.Name,
		s.Email,
		s.PasswordHash,
		s.Bio,
		skillsToStrings(s.Skills),
		s.Rating.Average,
		s.Rating.Count,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}

	return nil
}

// LockForRating loads the student under FOR UPDATE so that concurrent
// rating recomputations serialize. Must run inside a transaction.
func (r *StudentRepository) LockForRating(ctx context.Context, id string) (*account.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 FOR UPDATE`
	return r.scanStudent(r.db.QueryRow(ctx, query, id))
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*account.Student, error) {
	var s account.Student
	var skills []string
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.PasswordHash,
		&s.Bio,
		&skills,
		&s.Rating.Average,
		&s.Rating.Count,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}
	s.Skills = stringsToSkills(skills)
	return &s, nil
}

func skillsToStrings(skills []shared.SkillName) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = s.String()
	}
	return out
}

func stringsToSkills(values []string) []shared.SkillName {
	out := make([]shared.SkillName, len(values))
	for i, v := range values {
		out[i] = shared.SkillName(v)
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// SKILL CATALOG
// ══════════════════════════════════════════════════════════════════════════════

// SkillCatalogRepository implements account.SkillCatalog for PostgreSQL.
type SkillCatalogRepository struct {
	db Querier
}

// NewSkillCatalogRepository creates a new SkillCatalogRepository.
func NewSkillCatalogRepository(conn *Connection) *SkillCatalogRepository {
	return &SkillCatalogRepository{db: conn}
}

// GetByID returns a catalog skill by ID.
func (r *SkillCatalogRepository) GetByID(ctx context.Context, id string) (*account.Skill, error) {
	query := `SELECT id, name, category FROM skills WHERE id = $1`
	return r.scanSkill(r.db.QueryRow(ctx, query, id))
}

// GetByName returns a catalog skill by normalized name.
func (r *SkillCatalogRepository) GetByName(ctx context.Context, name shared.SkillName) (*account.Skill, error) {
	query := `SELECT id, name, category FROM skills WHERE name = $1`
	return r.scanSkill(r.db.QueryRow(ctx, query, name.Normalize().String()))
}

func (r *SkillCatalogRepository) scanSkill(row pgx.Row) (*account.Skill, error) {
	var s account.Skill
	var name string
	if err := row.Scan(&s.ID, &name, &s.Category); err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to scan skill: %w", err)
	}
	s.Name = shared.SkillName(name)
	return &s, nil
}
