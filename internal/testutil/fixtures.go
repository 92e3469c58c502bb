package testutil

import (
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/google/uuid"
)

const (
	TestWorkspace = "ws-test"
	TestUser      = "rep-test"
)

// TestActor is the default actor used by service tests.
var TestActor = domain.Actor{WorkspaceID: TestWorkspace, UserID: TestUser}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func NewTestAccount(workspaceID, name string) *domain.Account {
	n := now()
	return &domain.Account{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedAt:   n,
		UpdatedAt:   n,
	}
}

// Deal options
type DealOption func(*domain.Deal)

func WithStage(s domain.Stage) DealOption {
	return func(d *domain.Deal) {
		d.Stage = s
	}
}

func WithConfidence(c float64) DealOption {
	return func(d *domain.Deal) {
		d.Confidence = c
	}
}

func WithAmount(a int64) DealOption {
	return func(d *domain.Deal) {
		d.Amount = a
	}
}

func WithRiskSummary(s string) DealOption {
	return func(d *domain.Deal) {
		d.RiskSummary = s
	}
}

func WithDealUpdatedAt(t time.Time) DealOption {
	return func(d *domain.Deal) {
		d.UpdatedAt = t.UTC().Truncate(time.Second)
	}
}

func NewTestDeal(workspaceID, accountID, name string, opts ...DealOption) *domain.Deal {
	n := now()
	d := &domain.Deal{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		AccountID:   accountID,
		Name:        name,
		Stage:       domain.StageEvaluation,
		Amount:      50000,
		Confidence:  0.6,
		CreatedAt:   n,
		UpdatedAt:   n,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Signal options
type SignalOption func(*domain.Signal)

func WithHappenedAt(t time.Time) SignalOption {
	return func(s *domain.Signal) {
		s.HappenedAt = t.UTC().Truncate(time.Second)
	}
}

func WithSignalSummary(summary string) SignalOption {
	return func(s *domain.Signal) {
		s.Summary = summary
	}
}

func NewTestSignal(workspaceID, accountID string, typ domain.SignalType, score int, opts ...SignalOption) *domain.Signal {
	s := &domain.Signal{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		AccountID:   accountID,
		Type:        typ,
		Summary:     string(typ) + " signal",
		HappenedAt:  now(),
		Score:       score,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestActivity(workspaceID, dealID, summary string) *domain.Activity {
	n := now()
	return &domain.Activity{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		DealID:      dealID,
		Type:        domain.ActivityCall,
		HappenedAt:  n,
		Summary:     summary,
		Source:      "test",
		CreatedAt:   n,
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDueAt(due time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueAt = due.UTC().Truncate(time.Second)
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func NewTestTask(workspaceID, dealID, title string, opts ...TaskOption) *domain.Task {
	n := now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		DealID:      dealID,
		Title:       title,
		Owner:       domain.OwnerRep,
		DueAt:       n.Add(24 * time.Hour),
		Priority:    domain.PriorityMedium,
		Status:      domain.TaskTodo,
		Channel:     domain.ChannelEmail,
		CreatedAt:   n,
		UpdatedAt:   n,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestApproval(workspaceID, dealID, subject string) *domain.OutboundApproval {
	n := now()
	return &domain.OutboundApproval{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		DealID:      dealID,
		Channel:     domain.ChannelEmail,
		Subject:     subject,
		Body:        "body of " + subject,
		Status:      domain.ApprovalPending,
		RequestedBy: TestUser,
		CreatedAt:   n,
		UpdatedAt:   n,
	}
}
