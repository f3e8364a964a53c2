package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROJECT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ProjectRepository implements project.Repository for PostgreSQL.
type ProjectRepository struct {
	db Querier
}

// NewProjectRepository creates a new ProjectRepository on the pool.
func NewProjectRepository(conn *Connection) *ProjectRepository {
	return &ProjectRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProjectRepository) WithTx(tx pgx.Tx) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

const projectColumns = `id, company_id, title, description, status, visible,
	deadline, applicant_cap, application_count, budget_min, budget_max,
	required_skills, created_at, updated_at`

// Create creates a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.CompanyID,
		p.Title,
		p.Description,
		string(p.Status),
		p.Visible,
		nullableTime(p.Deadline),
		p.ApplicantCap,
		p.ApplicationCount,
		p.BudgetMin.Float64(),
		p.BudgetMax.Float64(),
		skillsToStrings(p.RequiredSkills),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID returns a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanProject(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate returns a project with its row locked for the duration
// of the enclosing transaction. Application counter mutations go through
// this lock.
func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`
	return r.scanProject(r.db.QueryRow(ctx, query, id))
}

// ListByCompany returns all projects owned by a company, newest first.
func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID string) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListActiveExpired returns active projects whose deadline lies before the
// cutoff. Projects without a deadline never expire.
func (r *ProjectRepository) ListActiveExpired(ctx context.Context, cutoff time.Time) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE status = 'active' AND deadline IS NOT NULL AND deadline < $1`

	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update updates a project.
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects SET
			title = $1,
			description = $2,
			status = $3,
			visible = $4,
			deadline = $5,
			applicant_cap = $6,
			application_count = $7,
			budget_min = $8,
			budget_max = $9,
			required_skills = $10,
			updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.Exec(ctx, query,
		p.Title,
		p.Description,
		string(p.Status),
		p.Visible,
		nullableTime(p.Deadline),
		p.ApplicantCap,
		p.ApplicationCount,
		p.BudgetMin.Float64(),
		p.BudgetMax.Float64(),
		skillsToStrings(p.RequiredSkills),
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrProjectNotFound
	}

	return nil
}

// Delete removes a project. Applications and modules cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) scanProject(row pgx.Row) (*project.Project, error) {
	var p project.Project
	var deadline *time.Time
	var skills []string
	var budgetMin, budgetMax float64
	var status string

	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Title,
		&p.Description,
		&status,
		&p.Visible,
		&deadline,
		&p.ApplicantCap,
		&p.ApplicationCount,
		&budgetMin,
		&budgetMax,
		&skills,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	p.Status = project.Status(status)
	if deadline != nil {
		p.Deadline = *deadline
	}
	p.BudgetMin = shared.Money(budgetMin)
	p.BudgetMax = shared.Money(budgetMax)
	p.RequiredSkills = stringsToSkills(skills)
	return &p, nil
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ModuleRepository implements project.ModuleRepository for PostgreSQL.
type ModuleRepository struct {
	db Querier
}

// NewModuleRepository creates a new ModuleRepository on the pool.
func NewModuleRepository(conn *Connection) *ModuleRepository {
	return &ModuleRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ModuleRepository) WithTx(tx pgx.Tx) *ModuleRepository {
	return &ModuleRepository{db: tx}
}

const moduleColumns = `id, project_id, title, description, weight, order_index, status, created_at`

// Create creates a new curriculum module.
func (r *ModuleRepository) Create(ctx context.Context, m *project.Module) error {
	query := `
		INSERT INTO project_modules (` + moduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.ProjectID,
		m.Title,
		m.Description,
		m.Weight,
		m.OrderIndex,
		string(m.Status),
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}

	return nil
}

// GetByID returns a module by ID.
func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*project.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM project_modules WHERE id = $1`
	return r.scanModule(r.db.QueryRow(ctx, query, id))
}

// ListByProject returns the project's curriculum ordered by position.
func (r *ModuleRepository) ListByProject(ctx context.Context, projectID string) (project.Modules, error) {
	query := `SELECT ` + moduleColumns + ` FROM project_modules WHERE project_id = $1 ORDER BY order_index`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	modules := make(project.Modules, 0)
	for rows.Next() {
		m, err := r.scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// Update updates a module.
func (r *ModuleRepository) Update(ctx context.Context, m *project.Module) error {
	query := `
		UPDATE project_modules SET
			title = $1,
			description = $2,
			weight = $3,
			order_index = $4,
			status = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		m.Title,
		m.Description,
		m.Weight,
		m.OrderIndex,
		string(m.Status),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrModuleNotFound
	}

	return nil
}

// Delete removes a module. Callers check HasProgress first.
func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM project_modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrModuleNotFound
	}
	return nil
}

// HasProgress reports whether any progress record references the module.
func (r *ModuleRepository) HasProgress(ctx context.Context, moduleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM module_progress WHERE module_id = $1)`,
		moduleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check module progress: %w", err)
	}
	return exists, nil
}

func (r *ModuleRepository) scanModule(row pgx.Row) (*project.Module, error) {
	var m project.Module
	var status string

	err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.Title,
		&m.Description,
		&m.Weight,
		&m.OrderIndex,
		&status,
		&m.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to scan module: %w", err)
	}

	m.Status = project.ModuleStatus(status)
	return &m, nil
}
