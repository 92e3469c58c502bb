package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(db db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: db}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	typ, err := domain.ActivityTypeCodec.ToDB(a.Type)
	if err != nil {
		return err
	}
	query := `INSERT INTO activities (id, workspace_id, deal_id, type, happened_at, summary, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.WorkspaceID, a.DealID, typ, formatTime(a.HappenedAt), a.Summary, a.Source, formatTime(a.CreatedAt),
	)
	return storeErr("inserting activity", err)
}

func (r *SQLiteActivityRepo) ListByDeal(ctx context.Context, workspaceID, dealID string, limit int) ([]*domain.Activity, error) {
	query := `SELECT id, workspace_id, deal_id, type, happened_at, summary, source, created_at
		FROM activities WHERE workspace_id = ? AND deal_id = ?
		ORDER BY happened_at DESC, id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, dealID, limit)
	if err != nil {
		return nil, storeErr("listing activities", err)
	}
	defer rows.Close()

	var out []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		var typ, happenedAt, createdAt string
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.DealID, &typ, &happenedAt, &a.Summary, &a.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		if a.Type, err = domain.ActivityTypeCodec.FromDB(typ); err != nil {
			return nil, err
		}
		if a.HappenedAt, err = parseTime(happenedAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, storeErr("iterating activities", rows.Err())
}
