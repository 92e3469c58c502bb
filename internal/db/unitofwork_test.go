package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertAccount(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO accounts (id, workspace_id, name, created_at, updated_at)
		VALUES (?, 'ws', 'Acme', '2026-03-01T00:00:00Z', '2026-03-01T00:00:00Z')`, id)
	return err
}

func accountExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertAccount(ctx, tx, "a1")
	})
	require.NoError(t, err)
	assert.True(t, accountExists(t, database, "a1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertAccount(ctx, tx, "a2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, accountExists(t, database, "a2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertAccount(ctx, tx, "a3")
			panic("boom")
		})
	})
	assert.False(t, accountExists(t, database, "a3"))
}

func TestWithinTx_ClosedDatabaseIsUnavailable(t *testing.T) {
	database, uow := openUoW(t)
	require.NoError(t, database.Close())

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}
