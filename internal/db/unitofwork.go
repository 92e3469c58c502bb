package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

// DBTX is satisfied by *sql.DB and *sql.Tx. Repositories take a DBTX so the
// same code runs standalone or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn in one transaction. Writes made through tx commit
// together when fn returns nil and roll back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return txErr("beginning transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return txErr("committing transaction", err)
	}
	committed = true
	return nil
}

// txErr marks failures caused by a closed or unreachable database as
// domain.ErrServiceUnavailable.
func txErr(op string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
