package domain

import (
	"fmt"
	"time"
)

type Activity struct {
	ID          string
	WorkspaceID string
	DealID      string
	Type        ActivityType
	HappenedAt  time.Time
	Summary     string
	Source      string
	CreatedAt   time.Time
}

type Task struct {
	ID          string
	WorkspaceID string
	DealID      string
	Title       string
	Owner       TaskOwner
	DueAt       time.Time
	Priority    Priority
	Status      TaskStatus
	Channel     Channel
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdueHighPriority reports a high-priority task past due that is not done.
func (t *Task) IsOverdueHighPriority(now time.Time) bool {
	return t.Priority == PriorityHigh && t.Status != TaskDone && t.DueAt.Before(now)
}

// TransitionTo moves the task to status, stamping or clearing CompletedAt.
func (t *Task) TransitionTo(status TaskStatus, now time.Time) error {
	if _, err := TaskStatusCodec.Parse(string(status)); err != nil {
		return err
	}
	if t.Status == status {
		return nil
	}
	switch status {
	case TaskDone:
		t.CompletedAt = &now
	default:
		t.CompletedAt = nil
	}
	t.Status = status
	t.UpdatedAt = now
	return nil
}

func (t *Task) String() string {
	return fmt.Sprintf("%s [%s/%s] due %s", t.Title, t.Priority, t.Channel, t.DueAt.Format(time.RFC3339))
}
