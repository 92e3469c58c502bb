package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingBriefRepo_UpsertKeepsOnePerDeal(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	repo := NewSQLiteMeetingBriefRepo(database)
	n := time.Now().UTC().Truncate(time.Second)
	first := &domain.MeetingBrief{
		ID: uuid.New().String(), WorkspaceID: testutil.TestWorkspace, DealID: deal.ID,
		Summary: "first", PrimaryGoal: "goal one", Objections: []string{"a"}, ProofPoints: []string{"p"},
		CreatedAt: n, UpdatedAt: n,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := *first
	second.ID = uuid.New().String()
	second.Summary = "second"
	second.Objections = []string{"b", "c"}
	second.UpdatedAt = n.Add(time.Minute)
	require.NoError(t, repo.Upsert(ctx, &second))

	got, err := repo.GetByDeal(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "row identity survives re-processing")
	assert.Equal(t, "second", got.Summary)
	assert.Equal(t, []string{"b", "c"}, got.Objections)
	assert.True(t, second.UpdatedAt.Equal(got.UpdatedAt))
}

func TestFollowUpDraftRepo_UpsertAndMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	repo := NewSQLiteFollowUpDraftRepo(database)
	_, err := repo.GetByDeal(ctx, testutil.TestWorkspace, deal.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n := time.Now().UTC().Truncate(time.Second)
	draft := &domain.FollowUpDraft{
		ID: uuid.New().String(), WorkspaceID: testutil.TestWorkspace, DealID: deal.ID,
		Channel: domain.ChannelEmail, Subject: "Recap", Body: "Thanks", CreatedAt: n, UpdatedAt: n,
	}
	require.NoError(t, repo.Upsert(ctx, draft))

	got, err := repo.GetByDeal(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recap", got.Subject)
	assert.Equal(t, domain.ChannelEmail, got.Channel)
}

func TestAuditRepo_AppendAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteAuditRepo(database)
	n := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Append(ctx, &domain.AuditEvent{
		ID: "01J0000000000000000000000A", WorkspaceID: testutil.TestWorkspace, ActorID: testutil.TestUser,
		Action: domain.AuditStrategyPlayExecuted, EntityType: "deal", EntityID: "d1",
		Metadata: map[string]any{"tasksCreated": 3}, CreatedAt: n,
	}))
	require.NoError(t, repo.Append(ctx, &domain.AuditEvent{
		ID: "01J0000000000000000000000B", WorkspaceID: testutil.TestWorkspace, ActorID: testutil.TestUser,
		Action: domain.AuditMeetingNotesProcessed, EntityType: "deal", EntityID: "d1", CreatedAt: n,
	}))

	events, err := repo.ListByEntity(ctx, testutil.TestWorkspace, "deal", "d1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.AuditStrategyPlayExecuted, events[0].Action)
	assert.Equal(t, float64(3), events[0].Metadata["tasksCreated"])
	assert.Empty(t, events[1].Metadata)
}

func TestApprovalRepo_ListByStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	repo := NewSQLiteApprovalRepo(database)
	pending := testutil.NewTestApproval(testutil.TestWorkspace, deal.ID, "pending one")
	reviewed := testutil.NewTestApproval(testutil.TestWorkspace, deal.ID, "reviewed one")
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, reviewed))

	require.NoError(t, reviewed.Review(domain.ApprovalRejected, "too long", "mgr", time.Now().UTC().Truncate(time.Second)))
	require.NoError(t, repo.SaveReview(ctx, reviewed))

	got, err := repo.ListByStatus(ctx, testutil.TestWorkspace, domain.ApprovalPending, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)

	all, err := repo.ListByDeal(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	loaded, err := repo.GetByID(ctx, testutil.TestWorkspace, reviewed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, loaded.Status)
	assert.Equal(t, "too long", loaded.RejectionReason)
}

func TestApprovalRepo_SaveReviewRejectsStaleRead(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	repo := NewSQLiteApprovalRepo(database)
	a := testutil.NewTestApproval(testutil.TestWorkspace, deal.ID, "follow-up")
	require.NoError(t, repo.Create(ctx, a))

	first, err := repo.GetByID(ctx, testutil.TestWorkspace, a.ID)
	require.NoError(t, err)
	stale, err := repo.GetByID(ctx, testutil.TestWorkspace, a.ID)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, first.Review(domain.ApprovalApproved, "", "mgr-1", now))
	require.NoError(t, repo.SaveReview(ctx, first))

	require.NoError(t, stale.Review(domain.ApprovalRejected, "late reviewer", "mgr-2", now.Add(time.Minute)))
	err = repo.SaveReview(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := repo.GetByID(ctx, testutil.TestWorkspace, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, got.Status)
	assert.Equal(t, "mgr-1", got.ReviewedBy)
	assert.Empty(t, got.RejectionReason)
}

func TestApprovalRepo_SaveReviewMissingRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteApprovalRepo(database)

	a := &domain.OutboundApproval{ID: "missing", WorkspaceID: testutil.TestWorkspace, Status: domain.ApprovalPending}
	require.NoError(t, a.Review(domain.ApprovalApproved, "", "mgr-1", time.Now().UTC()))
	err := repo.SaveReview(context.Background(), a)
	assert.ErrorIs(t, err, ErrNotFound)
}
