package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteSignalRepo implements SignalRepo using a SQLite database.
type SQLiteSignalRepo struct {
	db db.DBTX
}

func NewSQLiteSignalRepo(db db.DBTX) *SQLiteSignalRepo {
	return &SQLiteSignalRepo{db: db}
}

const signalColumns = `id, workspace_id, account_id, type, summary, happened_at, score`

func (r *SQLiteSignalRepo) Create(ctx context.Context, s *domain.Signal) error {
	typ, err := domain.SignalTypeCodec.ToDB(s.Type)
	if err != nil {
		return err
	}
	query := `INSERT INTO signals (` + signalColumns + `, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.WorkspaceID, s.AccountID, typ, s.Summary, formatTime(s.HappenedAt), s.Score, formatTime(nowUTC()),
	)
	return storeErr("inserting signal", err)
}

func (r *SQLiteSignalRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE workspace_id = ? AND id = ?`
	s, err := scanSignal(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("signal", err)
	}
	return s, nil
}

func (r *SQLiteSignalRepo) ListRecent(ctx context.Context, workspaceID string, limit int) ([]*domain.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE workspace_id = ?
		ORDER BY happened_at DESC, id
		LIMIT ?`
	return r.query(ctx, "listing recent signals", query, workspaceID, limit)
}

func (r *SQLiteSignalRepo) ListByAccount(ctx context.Context, workspaceID, accountID string, limit int) ([]*domain.Signal, error) {
	query := `SELECT ` + signalColumns + ` FROM signals WHERE workspace_id = ? AND account_id = ?
		ORDER BY happened_at DESC, id
		LIMIT ?`
	return r.query(ctx, "listing account signals", query, workspaceID, accountID, limit)
}

func (r *SQLiteSignalRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.Signal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []*domain.Signal
	for rows.Next() {
		s, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning signal row: %w", err)
		}
		out = append(out, s)
	}
	return out, storeErr("iterating signals", rows.Err())
}

func scanSignal(sc rowScanner) (*domain.Signal, error) {
	var s domain.Signal
	var typ, happenedAt string
	if err := sc.Scan(&s.ID, &s.WorkspaceID, &s.AccountID, &typ, &s.Summary, &happenedAt, &s.Score); err != nil {
		return nil, err
	}
	var err error
	if s.Type, err = domain.SignalTypeCodec.FromDB(typ); err != nil {
		return nil, err
	}
	if s.HappenedAt, err = parseTime(happenedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
