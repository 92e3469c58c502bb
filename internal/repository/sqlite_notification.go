package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteNotificationRepo implements NotificationRepo using a SQLite database.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationRepo(db db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: db}
}

const notificationColumns = `n.id, n.workspace_id, n.signal_id, n.deal_id, n.priority, n.summary, n.recommended_action,
	n.status, n.acknowledged_by, n.acknowledged_at, n.created_at, n.updated_at`

// Upsert relies on the (workspace_id, signal_id) unique key; concurrent
// derivations of the same signal converge on one row, last writer wins.
func (r *SQLiteNotificationRepo) Upsert(ctx context.Context, n *domain.SignalNotification) error {
	priority, err := domain.PriorityCodec.ToDB(n.Priority)
	if err != nil {
		return err
	}
	if n.Status == "" {
		n.Status = domain.NotificationUnread
	}
	status, err := domain.NotificationStatusCodec.ToDB(n.Status)
	if err != nil {
		return err
	}
	query := `INSERT INTO signal_notifications
		(id, workspace_id, signal_id, deal_id, priority, summary, recommended_action, status, acknowledged_by, acknowledged_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', NULL, ?, ?)
		ON CONFLICT(workspace_id, signal_id) DO UPDATE SET
			deal_id = excluded.deal_id,
			priority = excluded.priority,
			summary = excluded.summary,
			recommended_action = excluded.recommended_action,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		n.ID, n.WorkspaceID, n.SignalID, nullableString(n.DealID), priority, n.Summary, n.RecommendedAction, status,
		formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
	)
	return storeErr("upserting signal notification", err)
}

func (r *SQLiteNotificationRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.SignalNotification, error) {
	query := `SELECT ` + notificationColumns + ` FROM signal_notifications n WHERE n.workspace_id = ? AND n.id = ?`
	n, err := scanNotification(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("signal notification", err)
	}
	return n, nil
}

func (r *SQLiteNotificationRepo) ListRecent(ctx context.Context, workspaceID string, limit int) ([]NotificationRow, error) {
	query := `SELECT ` + notificationColumns + `, COALESCE(d.name, ''), s.type, s.score, s.happened_at
		FROM signal_notifications n
		JOIN signals s ON s.id = n.signal_id
		LEFT JOIN deals d ON d.id = n.deal_id
		WHERE n.workspace_id = ?
		ORDER BY s.happened_at DESC, n.created_at DESC, n.id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, storeErr("listing signal notifications", err)
	}
	defer rows.Close()

	var out []NotificationRow
	for rows.Next() {
		var row NotificationRow
		var signalType, happenedAt string
		n, err := scanNotification(rows, &row.DealName, &signalType, &row.Score, &happenedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		row.Notification = *n
		if row.SignalType, err = domain.SignalTypeCodec.FromDB(signalType); err != nil {
			return nil, err
		}
		if row.HappenedAt, err = parseTime(happenedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, storeErr("iterating signal notifications", rows.Err())
}

func (r *SQLiteNotificationRepo) Acknowledge(ctx context.Context, n *domain.SignalNotification) (bool, error) {
	acked, err := domain.NotificationStatusCodec.ToDB(domain.NotificationAcknowledged)
	if err != nil {
		return false, err
	}
	unread, err := domain.NotificationStatusCodec.ToDB(domain.NotificationUnread)
	if err != nil {
		return false, err
	}
	query := `UPDATE signal_notifications SET status = ?, acknowledged_by = ?, acknowledged_at = ?, updated_at = ?
		WHERE workspace_id = ? AND id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		acked, n.AcknowledgedBy, nullableTimeToString(n.AcknowledgedAt), formatTime(n.UpdatedAt),
		n.WorkspaceID, n.ID, unread,
	)
	if err != nil {
		return false, storeErr("acknowledging signal notification", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("reading affected rows", err)
	}
	if affected > 0 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, n.WorkspaceID, n.ID); err != nil {
		return false, err
	}
	return false, nil
}

// scanNotification scans the notification columns followed by any extra
// destinations selected after them.
func scanNotification(s rowScanner, extra ...any) (*domain.SignalNotification, error) {
	var n domain.SignalNotification
	var dealID, acknowledgedAt sql.NullString
	var priority, status, createdAt, updatedAt string
	dest := []any{&n.ID, &n.WorkspaceID, &n.SignalID, &dealID, &priority, &n.Summary, &n.RecommendedAction,
		&status, &n.AcknowledgedBy, &acknowledgedAt, &createdAt, &updatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	var err error
	n.DealID = stringPtr(dealID)
	if n.Priority, err = domain.PriorityCodec.FromDB(priority); err != nil {
		return nil, err
	}
	if n.Status, err = domain.NotificationStatusCodec.FromDB(status); err != nil {
		return nil, err
	}
	n.AcknowledgedAt = parseNullableTime(acknowledgedAt)
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
