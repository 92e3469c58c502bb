package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/oklog/ulid/v2"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database. Events are
// append-only.
type SQLiteAuditRepo struct {
	db db.DBTX
}

func NewSQLiteAuditRepo(db db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: db}
}

// Append stores e, assigning a ULID and timestamp when they are unset.
func (r *SQLiteAuditRepo) Append(ctx context.Context, e *domain.AuditEvent) error {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = nowUTC()
	}
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding audit metadata: %w", err)
	}
	query := `INSERT INTO audit_events (id, workspace_id, actor_id, action, entity_type, entity_id, metadata_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.WorkspaceID, e.ActorID, e.Action, e.EntityType, e.EntityID, string(raw), formatTime(e.CreatedAt),
	)
	return storeErr("appending audit event", err)
}

// ListByEntity returns events oldest first. IDs are ULIDs, so ordering by id
// breaks ties within the same second.
func (r *SQLiteAuditRepo) ListByEntity(ctx context.Context, workspaceID, entityType, entityID string) ([]*domain.AuditEvent, error) {
	query := `SELECT id, workspace_id, actor_id, action, entity_type, entity_id, metadata_json, created_at
		FROM audit_events WHERE workspace_id = ? AND entity_type = ? AND entity_id = ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, entityType, entityID)
	if err != nil {
		return nil, storeErr("listing audit events", err)
	}
	defer rows.Close()

	var out []*domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var raw, createdAt string
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Metadata); err != nil {
			return nil, fmt.Errorf("decoding audit metadata: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, storeErr("iterating audit events", rows.Err())
}
