package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ApplicationRepository implements application.Repository for PostgreSQL.
type ApplicationRepository struct {
	db Querier
}

// NewApplicationRepository creates a new ApplicationRepository on the pool.
func NewApplicationRepository(conn *Connection) *ApplicationRepository {
	return &ApplicationRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ApplicationRepository) WithTx(tx pgx.Tx) *ApplicationRepository {
	return &ApplicationRepository{db: tx}
}

const applicationColumns = `id, project_id, student_id, status, bid_amount,
	proposal, duration_days, applied_at, reviewed_by, reviewed_at, review_note,
	paid, paid_at, created_at, updated_at`

// Create creates a new application. The (project, student) uniqueness
// constraint backs the duplicate-application rule.
func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.ProjectID,
		a.StudentID,
		string(a.Status),
		a.BidAmount.Float64(),
		a.Proposal,
		a.DurationDays,
		a.AppliedAt,
		nullableString(a.ReviewedBy),
		a.ReviewedAt,
		a.ReviewNote,
		a.Paid,
		a.PaidAt,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID returns an application by ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return r.scanApplication(r.db.QueryRow(ctx, query, id))
}

// GetByProjectAndStudent returns the unique application of a student on a project.
func (r *ApplicationRepository) GetByProjectAndStudent(ctx context.Context, projectID, studentID string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE project_id = $1 AND student_id = $2`
	return r.scanApplication(r.db.QueryRow(ctx, query, projectID, studentID))
}

// ListByStudent returns all applications of a student, newest first.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC`
	return r.list(ctx, query, studentID)
}

// ListByProject returns all applications on a project, newest first.
func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID string) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE project_id = $1 ORDER BY applied_at DESC`
	return r.list(ctx, query, projectID)
}

// Update updates an application.
func (r *ApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	query := `
		UPDATE applications SET
			status = $1,
			bid_amount = $2,
			proposal = $3,
			duration_days = $4,
			reviewed_by = $5,
			reviewed_at = $6,
			review_note = $7,
			paid = $8,
			paid_at = $9,
			updated_at = $10
		WHERE id = $11
	`

	result, err := r.db.Exec(ctx, query,
		string(a.Status),
		a.BidAmount.Float64(),
		a.Proposal,
		a.DurationDays,
		nullableString(a.ReviewedBy),
		a.ReviewedAt,
		a.ReviewNote,
		a.Paid,
		a.PaidAt,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrApplicationNotFound
	}

	return nil
}

// DeleteByProject removes all applications of a project.
func (r *ApplicationRepository) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM applications WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete applications: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*application.Application, 0)
	for rows.Next() {
		a, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) scanApplication(row pgx.Row) (*application.Application, error) {
	var a application.Application
	var status string
	var bid float64
	var reviewedBy *string

	err := row.Scan(
		&a.ID,
		&a.ProjectID,
		&a.StudentID,
		&status,
		&bid,
		&a.Proposal,
		&a.DurationDays,
		&a.AppliedAt,
		&reviewedBy,
		&a.ReviewedAt,
		&a.ReviewNote,
		&a.Paid,
		&a.PaidAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}

	a.Status = application.Status(status)
	a.BidAmount = shared.Money(bid)
	if reviewedBy != nil {
		a.ReviewedBy = *reviewedBy
	}
	return &a, nil
}

// nullableString maps the empty string to NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements application.ProgressRepository for PostgreSQL.
type ProgressRepository struct {
	db Querier
}

// NewProgressRepository creates a new ProgressRepository on the pool.
func NewProgressRepository(conn *Connection) *ProgressRepository {
	return &ProgressRepository{db: conn}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProgressRepository) WithTx(tx pgx.Tx) *ProgressRepository {
	return &ProgressRepository{db: tx}
}

const progressColumns = `id, application_id, module_id, percentage,
	is_completed, completed_at, note, created_at, updated_at`

// Get returns the progress record for (application, module).
func (r *ProgressRepository) Get(ctx context.Context, applicationID, moduleID string) (*application.ModuleProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM module_progress WHERE application_id = $1 AND module_id = $2`
	return r.scanProgress(r.db.QueryRow(ctx, query, applicationID, moduleID))
}

// ListByApplication returns all progress records of an application.
func (r *ProgressRepository) ListByApplication(ctx context.Context, applicationID string) ([]*application.ModuleProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM module_progress WHERE application_id = $1`

	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	records := make([]*application.ModuleProgress, 0)
	for rows.Next() {
		p, err := r.scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// Upsert creates or updates the unique (application, module) record.
func (r *ProgressRepository) Upsert(ctx context.Context, p *application.ModuleProgress) error {
	query := `
		INSERT INTO module_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (application_id, module_id) DO UPDATE SET
			percentage = EXCLUDED.percentage,
			is_completed = EXCLUDED.is_completed,
			completed_at = EXCLUDED.completed_at,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.ApplicationID,
		p.ModuleID,
		p.Percentage.Float64(),
		p.IsCompleted,
		p.CompletedAt,
		p.Note,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

func (r *ProgressRepository) scanProgress(row pgx.Row) (*application.ModuleProgress, error) {
	var p application.ModuleProgress
	var pct float64

	err := row.Scan(
		&p.ID,
		&p.ApplicationID,
		&p.ModuleID,
		&pct,
		&p.IsCompleted,
		&p.CompletedAt,
		&p.Note,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("application", "FindProgress", shared.ErrNotFound, "progress record not found")
		}
		return nil, fmt.Errorf("failed to scan progress: %w", err)
	}

	p.Percentage = shared.Percent(pct)
	return &p, nil
}
