package application

import (
	"strings"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// MODULE PROGRESS
// One record per (application, module), created lazily on the first
// progress update.
// ═══════════════════════════════════════════════════════════════════════════

// ModuleProgress records how much of one curriculum module an applicant has
// completed.
type ModuleProgress struct {
	// ID is the internal unique identifier (UUID).
	ID string

	// ApplicationID references the owning application.
	ApplicationID string

	// ModuleID references the project module.
	ModuleID string

	// Percentage is the completion percentage in [0, 100].
	Percentage shared.Percent

	// IsCompleted mirrors Percentage == 100.
	IsCompleted bool

	// CompletedAt is recorded the first time the module reaches 100%.
	CompletedAt *time.Time

	// Note is the student's free-text note on the update.
	Note string

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last modified.
	UpdatedAt time.Time
}

// NewModuleProgress creates the lazily-initialized progress record at 0%.
func NewModuleProgress(id, applicationID, moduleID string) *ModuleProgress {
	now := time.Now().UTC()
	return &ModuleProgress{
		ID:            id,
		ApplicationID: applicationID,
		ModuleID:      moduleID,
		Percentage:    0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetPercentage updates the completion percentage. The completion timestamp
// is recorded only the first time the module reaches 100%; lowering the
// percentage afterwards clears the completed flag but keeps the timestamp.
func (mp *ModuleProgress) SetPercentage(pct shared.Percent, note string) error {
	if !pct.IsValid() {
		return shared.NewDomainError("application", "UpdateProgress", shared.ErrValueOutOfRange,
			"progress percentage must be between 0 and 100")
	}
	now := time.Now().UTC()
	mp.Percentage = pct
	mp.Note = strings.TrimSpace(note)
	mp.IsCompleted = pct.IsComplete()
	if mp.IsCompleted && mp.CompletedAt == nil {
		mp.CompletedAt = &now
	}
	mp.UpdatedAt = now
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// PROGRESS SHEET
// The read model joining a project's modules with one application's
// progress records; owns the weighted completion computation.
// ═══════════════════════════════════════════════════════════════════════════

// ProgressRow is one module of the progress sheet.
type ProgressRow struct {
	Module      *project.Module
	Percentage  shared.Percent
	IsCompleted bool
	CompletedAt *time.Time
	Note        string
}

// ProgressSheet is the full curriculum progress of one application.
type ProgressSheet struct {
	ApplicationID string
	Rows          []ProgressRow
}

// NewProgressSheet joins the project's modules with the application's
// progress records. Modules without a record appear at 0%.
func NewProgressSheet(applicationID string, modules project.Modules, records []*ModuleProgress) *ProgressSheet {
	byModule := make(map[string]*ModuleProgress, len(records))
	for _, r := range records {
		byModule[r.ModuleID] = r
	}

	rows := make([]ProgressRow, 0, len(modules))
	for _, m := range modules {
		row := ProgressRow{Module: m}
		if r, ok := byModule[m.ID]; ok {
			row.Percentage = r.Percentage
			row.IsCompleted = r.IsCompleted
			row.CompletedAt = r.CompletedAt
			row.Note = r.Note
		}
		rows = append(rows, row)
	}
	return &ProgressSheet{ApplicationID: applicationID, Rows: rows}
}

// OverallCompletion derives the application's completion percentage as
// the weight-proportional sum over all modules, rounded to two decimals.
// A project with zero modules has an overall completion of 0.
func (s *ProgressSheet) OverallCompletion() float64 {
	total := 0.0
	for _, row := range s.Rows {
		total += row.Module.Weight / project.TotalWeight * row.Percentage.Float64()
	}
	return shared.Round2(total)
}

// CompletedCount returns the number of completed modules.
func (s *ProgressSheet) CompletedCount() int {
	n := 0
	for _, row := range s.Rows {
		if row.IsCompleted {
			n++
		}
	}
	return n
}

// TotalCount returns the number of modules in the curriculum.
func (s *ProgressSheet) TotalCount() int {
	return len(s.Rows)
}

// IsFullyCompleted is the total-coverage predicate driving auto-completion:
// true only when the curriculum is non-empty and every module is completed.
// An empty curriculum never fires auto-completion.
func (s *ProgressSheet) IsFullyCompleted() bool {
	if len(s.Rows) == 0 {
		return false
	}
	for _, row := range s.Rows {
		if !row.IsCompleted {
			return false
		}
	}
	return true
}
