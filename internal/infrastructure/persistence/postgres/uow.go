package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
)

// UnitOfWork implements command.UnitOfWork on a pgx transaction. All
// repositories handed to the callback are bound to the same transaction,
// so the row locks they take are held until commit or rollback.
type UnitOfWork struct {
	conn *Connection
}

// NewUnitOfWork creates a UnitOfWork on the given connection.
func NewUnitOfWork(conn *Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Do executes fn inside a transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(r command.TxRepos) error) error {
	return u.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(command.TxRepos{
			Companies:     &CompanyRepository{db: tx},
			Students:      &StudentRepository{db: tx},
			Projects:      &ProjectRepository{db: tx},
			Modules:       &ModuleRepository{db: tx},
			Applications:  &ApplicationRepository{db: tx},
			Progress:      &ProgressRepository{db: tx},
			Reviews:       &ReviewRepository{db: tx},
			ModerationLog: &ModerationLogRepository{db: tx},
		})
	})
}
