package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteDealRepo implements DealRepo using a SQLite database.
type SQLiteDealRepo struct {
	db db.DBTX
}

func NewSQLiteDealRepo(db db.DBTX) *SQLiteDealRepo {
	return &SQLiteDealRepo{db: db}
}

const dealColumns = `id, workspace_id, account_id, name, stage, amount, confidence, close_date, risk_summary, created_at, updated_at`

func (r *SQLiteDealRepo) Create(ctx context.Context, d *domain.Deal) error {
	stage, err := domain.StageCodec.ToDB(d.Stage)
	if err != nil {
		return err
	}
	query := `INSERT INTO deals (` + dealColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.WorkspaceID, d.AccountID, d.Name, stage, d.Amount, d.Confidence,
		nullableTimeToString(d.CloseDate), d.RiskSummary,
		formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	return storeErr("inserting deal", err)
}

func (r *SQLiteDealRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE workspace_id = ? AND id = ?`
	d, err := scanDeal(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("deal", err)
	}
	return d, nil
}

func (r *SQLiteDealRepo) List(ctx context.Context, workspaceID string) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE workspace_id = ? ORDER BY updated_at DESC, id`
	return r.query(ctx, "listing deals", query, workspaceID)
}

func (r *SQLiteDealRepo) LatestOpenForAccount(ctx context.Context, workspaceID, accountID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals
		WHERE workspace_id = ? AND account_id = ? AND stage NOT IN ('CLOSED_WON', 'CLOSED_LOST')
		ORDER BY updated_at DESC, id DESC
		LIMIT 1`
	d, err := scanDeal(r.db.QueryRowContext(ctx, query, workspaceID, accountID))
	if err != nil {
		return nil, notFoundOr("open deal", err)
	}
	return d, nil
}

func (r *SQLiteDealRepo) Update(ctx context.Context, d *domain.Deal) error {
	stage, err := domain.StageCodec.ToDB(d.Stage)
	if err != nil {
		return err
	}
	query := `UPDATE deals SET name = ?, stage = ?, amount = ?, confidence = ?, close_date = ?, risk_summary = ?, updated_at = ?
		WHERE workspace_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name, stage, d.Amount, d.Confidence, nullableTimeToString(d.CloseDate), d.RiskSummary,
		formatTime(d.UpdatedAt), d.WorkspaceID, d.ID,
	)
	if err != nil {
		return storeErr("updating deal", err)
	}
	return requireAffected(res, "deal")
}

func (r *SQLiteDealRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.Deal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []*domain.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deal row: %w", err)
		}
		out = append(out, d)
	}
	return out, storeErr("iterating deals", rows.Err())
}

func scanDeal(s rowScanner) (*domain.Deal, error) {
	var d domain.Deal
	var stage, createdAt, updatedAt string
	var closeDate sql.NullString
	err := s.Scan(&d.ID, &d.WorkspaceID, &d.AccountID, &d.Name, &stage, &d.Amount, &d.Confidence,
		&closeDate, &d.RiskSummary, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if d.Stage, err = domain.StageCodec.FromDB(stage); err != nil {
		return nil, err
	}
	d.CloseDate = parseNullableTime(closeDate)
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// requireAffected reports ErrNotFound when an update or delete matched no row.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("reading affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
