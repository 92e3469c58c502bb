package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/notes"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/google/uuid"
)

// StrategyExecutionError reports that a play could not be executed for a
// deal, either because the deal is out of scope or a write failed.
type StrategyExecutionError struct {
	DealID string
	Err    error
}

func (e *StrategyExecutionError) Error() string {
	return fmt.Sprintf("executing strategy play for deal %s: %v", e.DealID, e.Err)
}

func (e *StrategyExecutionError) Unwrap() error { return e.Err }

// StrategyPlayNotFoundError reports that the play id is not among the plays
// recomputed from the deal's current state.
type StrategyPlayNotFoundError struct {
	PlayID string
	DealID string
}

func (e *StrategyPlayNotFoundError) Error() string {
	return fmt.Sprintf("strategy play %q not found for deal %s", e.PlayID, e.DealID)
}

func (e *StrategyPlayNotFoundError) Unwrap() error { return domain.ErrNotFound }

type ExecuteRequest struct {
	PlayID string
	DealID string
	Actor  domain.Actor
}

type ExecuteOutcome struct {
	Play     domain.StrategyPlay
	Tasks    []*domain.Task
	Approval *domain.OutboundApproval
}

const approvalSubjectRunes = 50

// InferStepPriority maps urgency words in a step to a task priority.
func InferStepPriority(step string) domain.Priority {
	switch {
	case notes.ContainsAny(step, "immediate", "24 hour", "today"):
		return domain.PriorityHigh
	case notes.ContainsAny(step, "week", "follow"):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// InferStepChannel maps action words in a step to an outreach channel.
func InferStepChannel(step string) domain.Channel {
	switch {
	case notes.ContainsAny(step, "call", "phone"):
		return domain.ChannelPhone
	case notes.ContainsAny(step, "meeting", "book", "schedule"):
		return domain.ChannelMeeting
	case notes.ContainsAny(step, "linkedin"):
		return domain.ChannelLinkedIn
	default:
		return domain.ChannelEmail
	}
}

func isOutboundStep(step string) bool {
	return notes.ContainsAny(step, "send", "share", "email")
}

// Executor turns a recomputed play into tasks and an optional approval.
type Executor struct {
	loader    *ContextLoader
	generator Generator
	uow       db.UnitOfWork
	approvals repository.ApprovalRepo
	audit     repository.AuditRepo
	now       func() time.Time
}

func NewExecutor(
	loader *ContextLoader,
	generator Generator,
	uow db.UnitOfWork,
	approvals repository.ApprovalRepo,
	audit repository.AuditRepo,
) *Executor {
	return &Executor{
		loader:    loader,
		generator: generator,
		uow:       uow,
		approvals: approvals,
		audit:     audit,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// WithClock overrides the executor's time source.
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Execute resolves req.PlayID against plays recomputed from current state.
// Tasks are written in one transaction; the approval and audit event follow
// as separate writes.
func (e *Executor) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteOutcome, error) {
	now := e.now()

	dc, err := e.loader.Load(ctx, req.Actor.WorkspaceID, req.DealID, now)
	if err != nil {
		return nil, &StrategyExecutionError{DealID: req.DealID, Err: err}
	}

	plays, err := e.generator.Generate(ctx, dc)
	if err != nil {
		return nil, &StrategyExecutionError{DealID: req.DealID, Err: err}
	}
	play, ok := FindPlay(plays, req.PlayID)
	if !ok {
		return nil, &StrategyPlayNotFoundError{PlayID: req.PlayID, DealID: req.DealID}
	}

	tasks := make([]*domain.Task, 0, len(play.Steps))
	for i, step := range play.Steps {
		tasks = append(tasks, &domain.Task{
			ID:          uuid.New().String(),
			WorkspaceID: req.Actor.WorkspaceID,
			DealID:      req.DealID,
			Title:       step,
			Owner:       domain.OwnerRep,
			DueAt:       now.Add(time.Duration(i+1) * 24 * time.Hour),
			Priority:    InferStepPriority(step),
			Status:      domain.TaskTodo,
			Channel:     InferStepChannel(step),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	err = e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskRepo(tx).CreateBatch(ctx, tasks)
	})
	if err != nil {
		return nil, &StrategyExecutionError{DealID: req.DealID, Err: err}
	}

	out := &ExecuteOutcome{Play: play, Tasks: tasks}

	for _, step := range play.Steps {
		if !isOutboundStep(step) {
			continue
		}
		approval := &domain.OutboundApproval{
			ID:          uuid.New().String(),
			WorkspaceID: req.Actor.WorkspaceID,
			DealID:      req.DealID,
			Channel:     InferStepChannel(step),
			Subject:     fmt.Sprintf("[%s] %s", play.Title, firstRunes(step, approvalSubjectRunes)),
			Body:        approvalBody(play, step),
			Status:      domain.ApprovalPending,
			RequestedBy: req.Actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := e.approvals.Create(ctx, approval); err != nil {
			return nil, &StrategyExecutionError{DealID: req.DealID, Err: err}
		}
		out.Approval = approval
		break
	}

	event := &domain.AuditEvent{
		WorkspaceID: req.Actor.WorkspaceID,
		ActorID:     req.Actor.UserID,
		Action:      domain.AuditStrategyPlayExecuted,
		EntityType:  "deal",
		EntityID:    req.DealID,
		Metadata: map[string]any{
			"playId":           play.ID,
			"tasksCreated":     len(tasks),
			"approvalsCreated": out.ApprovalsCreated(),
		},
		CreatedAt: now,
	}
	if err := e.audit.Append(ctx, event); err != nil {
		return nil, &StrategyExecutionError{DealID: req.DealID, Err: err}
	}

	return out, nil
}

// ApprovalsCreated is 1 when the play produced an outbound approval.
func (o *ExecuteOutcome) ApprovalsCreated() int {
	if o.Approval == nil {
		return 0
	}
	return 1
}

func approvalBody(play domain.StrategyPlay, step string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Play: %s\n", play.Title)
	fmt.Fprintf(&b, "Step: %s\n\n", step)
	b.WriteString(play.Thesis)
	return b.String()
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
