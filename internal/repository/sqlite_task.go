package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, workspace_id, deal_id, title, owner, due_at, priority, status, channel, completed_at, created_at, updated_at`

type taskCodes struct {
	owner, priority, status, channel string
}

func encodeTask(t *domain.Task) (taskCodes, error) {
	var c taskCodes
	var err error
	if c.owner, err = domain.TaskOwnerCodec.ToDB(t.Owner); err != nil {
		return c, err
	}
	if c.priority, err = domain.PriorityCodec.ToDB(t.Priority); err != nil {
		return c, err
	}
	if c.status, err = domain.TaskStatusCodec.ToDB(t.Status); err != nil {
		return c, err
	}
	if c.channel, err = domain.ChannelCodec.ToDB(t.Channel); err != nil {
		return c, err
	}
	return c, nil
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	c, err := encodeTask(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.WorkspaceID, t.DealID, t.Title, c.owner, formatTime(t.DueAt), c.priority, c.status, c.channel,
		nullableTimeToString(t.CompletedAt), formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	return storeErr("inserting task", err)
}

func (r *SQLiteTaskRepo) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	for i, t := range tasks {
		if err := r.Create(ctx, t); err != nil {
			return fmt.Errorf("task %d of %d: %w", i+1, len(tasks), err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE workspace_id = ? AND id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, workspaceID, id))
	if err != nil {
		return nil, notFoundOr("task", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByDeal(ctx context.Context, workspaceID, dealID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE workspace_id = ? AND deal_id = ? ORDER BY due_at, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, dealID)
	if err != nil {
		return nil, storeErr("listing tasks", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		out = append(out, t)
	}
	return out, storeErr("iterating tasks", rows.Err())
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	c, err := encodeTask(t)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET title = ?, owner = ?, due_at = ?, priority = ?, status = ?, channel = ?, completed_at = ?, updated_at = ?
		WHERE workspace_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, c.owner, formatTime(t.DueAt), c.priority, c.status, c.channel,
		nullableTimeToString(t.CompletedAt), formatTime(t.UpdatedAt), t.WorkspaceID, t.ID,
	)
	if err != nil {
		return storeErr("updating task", err)
	}
	return requireAffected(res, "task")
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var owner, dueAt, priority, status, channel, createdAt, updatedAt string
	var completedAt sql.NullString
	err := s.Scan(&t.ID, &t.WorkspaceID, &t.DealID, &t.Title, &owner, &dueAt, &priority, &status, &channel,
		&completedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if t.Owner, err = domain.TaskOwnerCodec.FromDB(owner); err != nil {
		return nil, err
	}
	if t.Priority, err = domain.PriorityCodec.FromDB(priority); err != nil {
		return nil, err
	}
	if t.Status, err = domain.TaskStatusCodec.FromDB(status); err != nil {
		return nil, err
	}
	if t.Channel, err = domain.ChannelCodec.FromDB(channel); err != nil {
		return nil, err
	}
	if t.DueAt, err = parseTime(dueAt); err != nil {
		return nil, err
	}
	t.CompletedAt = parseNullableTime(completedAt)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
