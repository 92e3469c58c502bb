package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApprovalFixture(t *testing.T) (dealFixture, ApprovalService, *domain.OutboundApproval) {
	t.Helper()
	f := newDealFixture(t)
	a := testutil.NewTestApproval(testutil.TestWorkspace, f.deal.ID, "Pricing recap")
	require.NoError(t, repository.NewSQLiteApprovalRepo(f.db).Create(context.Background(), a))
	svc := NewApprovalService(repository.NewSQLiteApprovalRepo(f.db), repository.NewSQLiteAuditRepo(f.db), fixedClock)
	return f, svc, a
}

func reviewRequest(id string, decision domain.ApprovalStatus, reason string) contract.ReviewApprovalRequest {
	return contract.ReviewApprovalRequest{
		ApprovalID: id,
		Decision:   decision,
		Reason:     reason,
		Actor:      domain.Actor{WorkspaceID: testutil.TestWorkspace, UserID: "manager-1"},
	}
}

func TestApprovalService_ListPending(t *testing.T) {
	f, svc, a := newApprovalFixture(t)
	ctx := context.Background()

	done := testutil.NewTestApproval(testutil.TestWorkspace, f.deal.ID, "Already sent")
	done.Status = domain.ApprovalApproved
	require.NoError(t, repository.NewSQLiteApprovalRepo(f.db).Create(ctx, done))

	got, err := svc.ListPending(ctx, testutil.TestActor, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestApprovalService_Review_Approve(t *testing.T) {
	f, svc, a := newApprovalFixture(t)

	got, err := svc.Review(context.Background(), reviewRequest(a.ID, domain.ApprovalApproved, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, got.Status)
	assert.Equal(t, "manager-1", got.ReviewedBy)
	require.NotNil(t, got.ReviewedAt)
	assert.Equal(t, fixedNow, *got.ReviewedAt)

	stored, err := repository.NewSQLiteApprovalRepo(f.db).GetByID(context.Background(), testutil.TestWorkspace, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, stored.Status)

	events := f.auditEvents(t, "approval", a.ID)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditApprovalReviewed, events[0].Action)
	assert.Equal(t, "approved", events[0].Metadata["decision"])
}

func TestApprovalService_Review_RejectRequiresReason(t *testing.T) {
	_, svc, a := newApprovalFixture(t)

	_, err := svc.Review(context.Background(), reviewRequest(a.ID, domain.ApprovalRejected, "  "))
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.Review(context.Background(), reviewRequest(a.ID, domain.ApprovalRejected, "Wrong pricing tier"))
	require.NoError(t, err)
	assert.Equal(t, "Wrong pricing tier", got.RejectionReason)
}

func TestApprovalService_Review_OnlyPending(t *testing.T) {
	_, svc, a := newApprovalFixture(t)
	ctx := context.Background()

	_, err := svc.Review(ctx, reviewRequest(a.ID, domain.ApprovalApproved, ""))
	require.NoError(t, err)

	_, err = svc.Review(ctx, reviewRequest(a.ID, domain.ApprovalRejected, "late"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApprovalService_Review_UnknownDecision(t *testing.T) {
	_, svc, a := newApprovalFixture(t)

	_, err := svc.Review(context.Background(), reviewRequest(a.ID, domain.ApprovalPending, ""))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApprovalService_Review_OtherWorkspace(t *testing.T) {
	_, svc, a := newApprovalFixture(t)

	req := reviewRequest(a.ID, domain.ApprovalApproved, "")
	req.Actor.WorkspaceID = "ws-other"
	_, err := svc.Review(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// staleApprovalRepo serves a pre-review snapshot, as if the approval was
// read before another reviewer's decision was written.
type staleApprovalRepo struct {
	repository.ApprovalRepo
	snapshot *domain.OutboundApproval
}

func (r *staleApprovalRepo) GetByID(context.Context, string, string) (*domain.OutboundApproval, error) {
	cp := *r.snapshot
	return &cp, nil
}

func TestApprovalService_Review_StaleReadConflicts(t *testing.T) {
	f, svc, a := newApprovalFixture(t)
	ctx := context.Background()
	repo := repository.NewSQLiteApprovalRepo(f.db)

	snapshot, err := repo.GetByID(ctx, testutil.TestWorkspace, a.ID)
	require.NoError(t, err)

	_, err = svc.Review(ctx, reviewRequest(a.ID, domain.ApprovalApproved, ""))
	require.NoError(t, err)

	late := NewApprovalService(&staleApprovalRepo{ApprovalRepo: repo, snapshot: snapshot}, repository.NewSQLiteAuditRepo(f.db), fixedClock)
	_, err = late.Review(ctx, reviewRequest(a.ID, domain.ApprovalRejected, "late reviewer"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := repo.GetByID(ctx, testutil.TestWorkspace, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, stored.Status)
	assert.Empty(t, stored.RejectionReason)
	assert.Len(t, f.auditEvents(t, "approval", a.ID), 1)
}
