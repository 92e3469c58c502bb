package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/dealdesk/internal/db"
)

// FailOnNthExecUoW runs fn in a real transaction but makes the FailOn-th
// ExecContext call (1-based) return Err, so rollback paths can be tested at
// an exact write. Reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	// Execs is the number of writes attempted by the last WithinTx call.
	Execs int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Execs = 0
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, uow: u})
	})
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.uow.Execs++
	if c.uow.Execs == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
