package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteApprovalRepo implements ApprovalRepo using a SQLite database.
type SQLiteApprovalRepo struct {
	db db.DBTX
}

func NewSQLiteApprovalRepo(db db.DBTX) *SQLiteApprovalRepo {
	return &SQLiteApprovalRepo{db: db}
}

const approvalColumns = `id, workspace_id, deal_id, channel, subject, body, status, requested_by, reviewed_by,
	rejection_reason, reviewed_at, created_at, updated_at`

func (r *SQLiteApprovalRepo) Create(ctx context.Context, a *domain.OutboundApproval) error {
	channel, err := domain.ChannelCodec.ToDB(a.Channel)
	if err != nil {
		return err
	}
	status, err := domain.ApprovalStatusCodec.ToDB(a.Status)
	if err != nil {
		return err
	}
	query := `INSERT INTO outbound_approvals (` + approvalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.WorkspaceID, a.DealID, channel, a.Subject, a.Body, status, a.RequestedBy, a.ReviewedBy,
		a.RejectionReason, nullableTimeToString(a.ReviewedAt), formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	return storeErr("inserting outbound approval", err)
}

func (r *SQLiteApprovalRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.OutboundApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM outbound_approvals WHERE workspace_id = ? AND id = ?`
	a, err := scanApproval(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("outbound approval", err)
	}
	return a, nil
}

func (r *SQLiteApprovalRepo) ListByDeal(ctx context.Context, workspaceID, dealID string) ([]*domain.OutboundApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM outbound_approvals WHERE workspace_id = ? AND deal_id = ?
		ORDER BY created_at DESC, id`
	return r.query(ctx, "listing approvals by deal", query, workspaceID, dealID)
}

func (r *SQLiteApprovalRepo) ListByStatus(ctx context.Context, workspaceID string, status domain.ApprovalStatus, limit int) ([]*domain.OutboundApproval, error) {
	stored, err := domain.ApprovalStatusCodec.ToDB(status)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + approvalColumns + ` FROM outbound_approvals WHERE workspace_id = ? AND status = ?
		ORDER BY created_at DESC, id
		LIMIT ?`
	return r.query(ctx, "listing approvals by status", query, workspaceID, stored, limit)
}

// SaveReview persists a review decision. The write only applies while the
// stored row is still pending; a row reviewed concurrently yields ErrConflict.
func (r *SQLiteApprovalRepo) SaveReview(ctx context.Context, a *domain.OutboundApproval) error {
	status, err := domain.ApprovalStatusCodec.ToDB(a.Status)
	if err != nil {
		return err
	}
	pending, err := domain.ApprovalStatusCodec.ToDB(domain.ApprovalPending)
	if err != nil {
		return err
	}
	query := `UPDATE outbound_approvals
		SET status = ?, reviewed_by = ?, rejection_reason = ?, reviewed_at = ?, updated_at = ?
		WHERE workspace_id = ? AND id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		status, a.ReviewedBy, a.RejectionReason, nullableTimeToString(a.ReviewedAt),
		formatTime(a.UpdatedAt), a.WorkspaceID, a.ID, pending,
	)
	if err != nil {
		return storeErr("saving approval review", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("reading affected rows", err)
	}
	if n > 0 {
		return nil
	}
	current, err := r.GetByID(ctx, a.WorkspaceID, a.ID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: approval %s is already %s", domain.ErrConflict, current.ID, current.Status)
}

func (r *SQLiteApprovalRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.OutboundApproval, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []*domain.OutboundApproval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning approval row: %w", err)
		}
		out = append(out, a)
	}
	return out, storeErr("iterating approvals", rows.Err())
}

func scanApproval(s rowScanner) (*domain.OutboundApproval, error) {
	var a domain.OutboundApproval
	var channel, status, createdAt, updatedAt string
	var reviewedAt sql.NullString
	err := s.Scan(&a.ID, &a.WorkspaceID, &a.DealID, &channel, &a.Subject, &a.Body, &status, &a.RequestedBy,
		&a.ReviewedBy, &a.RejectionReason, &reviewedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if a.Channel, err = domain.ChannelCodec.FromDB(channel); err != nil {
		return nil, err
	}
	if a.Status, err = domain.ApprovalStatusCodec.FromDB(status); err != nil {
		return nil, err
	}
	a.ReviewedAt = parseNullableTime(reviewedAt)
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
