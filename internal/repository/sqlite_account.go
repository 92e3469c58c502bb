package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo using a SQLite database.
type SQLiteAccountRepo struct {
	db db.DBTX
}

func NewSQLiteAccountRepo(db db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: db}
}

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, workspace_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.WorkspaceID, a.Name, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	return storeErr("inserting account", err)
}

func (r *SQLiteAccountRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	query := `SELECT id, workspace_id, name, created_at, updated_at FROM accounts WHERE workspace_id = ? AND id = ?`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("account", err)
	}
	return a, nil
}

func (r *SQLiteAccountRepo) List(ctx context.Context, workspaceID string) ([]*domain.Account, error) {
	query := `SELECT id, workspace_id, name, created_at, updated_at FROM accounts WHERE workspace_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, storeErr("listing accounts", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		out = append(out, a)
	}
	return out, storeErr("iterating accounts", rows.Err())
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*domain.Account, error) {
	var a domain.Account
	var createdAt, updatedAt string
	if err := s.Scan(&a.ID, &a.WorkspaceID, &a.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

