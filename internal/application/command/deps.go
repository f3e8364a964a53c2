// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
)

// IDGenerator issues identifiers for new entities.
type IDGenerator interface {
	GenerateID() string
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TxRepos bundles the transaction-scoped repositories a command works
// with. Every repository in one TxRepos shares one transaction, so row
// locks taken through any of them hold until the UnitOfWork commits.
type TxRepos struct {
	Companies     account.CompanyRepository
	Students      account.StudentRepository
	Projects      project.Repository
	Modules       project.ModuleRepository
	Applications  application.Repository
	Progress      application.ProgressRepository
	Reviews       review.Repository
	ModerationLog review.ModerationLog
}

// UnitOfWork runs a function against transaction-bound repositories,
// committing when it returns nil and rolling back otherwise. Handlers
// publish events only after Do returns successfully, so observers never
// see uncommitted state.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r TxRepos) error) error
}
