// Package jobs contains the platform's periodic maintenance jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/project"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLOSE EXPIRED PROJECTS JOB
// Applications are refused at apply time once the deadline passes; this
// sweep additionally moves such projects to Closed so listings reflect
// reality without waiting for the owner.
// ══════════════════════════════════════════════════════════════════════════════

// CloseExpiredProjects closes active projects whose deadline has passed.
type CloseExpiredProjects struct {
	projectRepo project.Repository
	logger      zerolog.Logger
}

// NewCloseExpiredProjects creates the deadline sweep job.
func NewCloseExpiredProjects(projectRepo project.Repository, logger zerolog.Logger) *CloseExpiredProjects {
	return &CloseExpiredProjects{
		projectRepo: projectRepo,
		logger:      logger.With().Str("job", "close_expired_projects").Logger(),
	}
}

// Name returns the job name.
func (j *CloseExpiredProjects) Name() string {
	return "close_expired_projects"
}

// Run closes every active project whose deadline lies in the past.
func (j *CloseExpiredProjects) Run(ctx context.Context) error {
	expired, err := j.projectRepo.ListActiveExpired(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("list expired projects: %w", err)
	}

	closed := 0
	for _, p := range expired {
		p.Close()
		if err := j.projectRepo.Update(ctx, p); err != nil {
			j.logger.Error().Err(err).Str("project_id", p.ID).Msg("failed to close project")
			continue
		}
		closed++
	}

	if closed > 0 {
		j.logger.Info().Int("closed", closed).Msg("expired projects closed")
	}
	return nil
}
