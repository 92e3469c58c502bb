package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(f dealFixture, rec Recorder) NotificationService {
	return NewNotificationService(NotificationDeps{
		Signals:       repository.NewSQLiteSignalRepo(f.db),
		Deals:         repository.NewSQLiteDealRepo(f.db),
		Notifications: repository.NewSQLiteNotificationRepo(f.db),
		Audit:         repository.NewSQLiteAuditRepo(f.db),
		Recorder:      rec,
		Clock:         fixedClock,
	})
}

func TestNotificationService_List_DerivesFromSignals(t *testing.T) {
	f := newDealFixture(t)
	rec := newCountingRecorder()
	svc := newNotificationService(f, rec)

	f.addSignal(t, domain.SignalFunding, 78, testutil.WithHappenedAt(fixedNow.Add(-1*time.Hour)))
	f.addSignal(t, domain.SignalHiring, 60, testutil.WithHappenedAt(fixedNow.Add(-2*time.Hour)))
	f.addSignal(t, domain.SignalTooling, 59, testutil.WithHappenedAt(fixedNow.Add(-3*time.Hour)))
	f.addSignal(t, domain.SignalEngagement, 90, testutil.WithHappenedAt(fixedNow.Add(-4*time.Hour)))

	views, err := svc.List(context.Background(), testutil.TestActor, 0)
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, "funding", views[0].SignalType)
	assert.Equal(t, "high", views[0].Priority)
	assert.Equal(t, "Escalate the proposal while new budget is being allocated", views[0].RecommendedAction)

	assert.Equal(t, "medium", views[1].Priority)
	assert.Equal(t, "Run a champion check-in on new hires and org changes", views[1].RecommendedAction)

	assert.Equal(t, "low", views[2].Priority)
	assert.Equal(t, "Send migration proof points for their tooling change", views[2].RecommendedAction)

	assert.Equal(t, "high", views[3].Priority)
	assert.Equal(t, "Launch a high-touch sequence while engagement is warm", views[3].RecommendedAction)

	for _, v := range views {
		require.NotNil(t, v.DealID)
		assert.Equal(t, f.deal.ID, *v.DealID)
		assert.Equal(t, "Northwind Expansion", v.DealName)
		assert.Equal(t, "unread", v.Status)
	}
	assert.Equal(t, 2, rec.derived["high"])
}

func TestNotificationService_List_LinksLatestOpenDeal(t *testing.T) {
	f := newDealFixture(t, testutil.WithDealUpdatedAt(fixedNow.Add(-48*time.Hour)))
	ctx := context.Background()
	deals := repository.NewSQLiteDealRepo(f.db)

	newer := testutil.NewTestDeal(testutil.TestWorkspace, f.account.ID, "Renewal",
		testutil.WithDealUpdatedAt(fixedNow.Add(-1*time.Hour)))
	require.NoError(t, deals.Create(ctx, newer))
	closed := testutil.NewTestDeal(testutil.TestWorkspace, f.account.ID, "Lost pilot",
		testutil.WithStage(domain.StageClosedLost), testutil.WithDealUpdatedAt(fixedNow))
	require.NoError(t, deals.Create(ctx, closed))

	f.addSignal(t, domain.SignalHiring, 70)

	views, err := newNotificationService(f, nil).List(ctx, testutil.TestActor, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].DealID)
	assert.Equal(t, newer.ID, *views[0].DealID)
}

func TestNotificationService_List_NoOpenDeal(t *testing.T) {
	f := newDealFixture(t, testutil.WithStage(domain.StageClosedWon))
	f.addSignal(t, domain.SignalHiring, 70)

	views, err := newNotificationService(f, nil).List(context.Background(), testutil.TestActor, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].DealID)
	assert.Empty(t, views[0].DealName)
}

func TestNotificationService_List_IdempotentAndPreservesAck(t *testing.T) {
	f := newDealFixture(t)
	f.addSignal(t, domain.SignalFunding, 85)
	f.addSignal(t, domain.SignalTooling, 40)
	svc := newNotificationService(f, nil)
	ctx := context.Background()

	first, err := svc.List(ctx, testutil.TestActor, 20)
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = svc.Acknowledge(ctx, testutil.TestActor, first[0].ID)
	require.NoError(t, err)

	second, err := svc.List(ctx, testutil.TestActor, 20)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.Equal(t, "acknowledged", second[0].Status)
	assert.Equal(t, testutil.TestUser, second[0].AcknowledgedBy)
	assert.Equal(t, "unread", second[1].Status)
}

func TestNotificationService_List_RespectsLimit(t *testing.T) {
	f := newDealFixture(t)
	for i := 0; i < 5; i++ {
		f.addSignal(t, domain.SignalEngagement, 50+i, testutil.WithHappenedAt(fixedNow.Add(-time.Duration(i)*time.Hour)))
	}

	views, err := newNotificationService(f, nil).List(context.Background(), testutil.TestActor, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestNotificationService_List_ScopedToWorkspace(t *testing.T) {
	f := newDealFixture(t)
	f.addSignal(t, domain.SignalFunding, 85)

	other := domain.Actor{WorkspaceID: "ws-other", UserID: "rep-other"}
	views, err := newNotificationService(f, nil).List(context.Background(), other, 20)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 20},
		{-5, 1},
		{1, 1},
		{50, 50},
		{100, 100},
		{101, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in), "limit %d", tt.in)
	}
}

func TestNotificationService_Acknowledge_KeepsFirstStamp(t *testing.T) {
	f := newDealFixture(t)
	f.addSignal(t, domain.SignalFunding, 85)
	svc := newNotificationService(f, nil)
	ctx := context.Background()

	views, err := svc.List(ctx, testutil.TestActor, 20)
	require.NoError(t, err)
	id := views[0].ID

	first, err := svc.Acknowledge(ctx, testutil.TestActor, id)
	require.NoError(t, err)
	require.NotNil(t, first.AcknowledgedAt)
	assert.Equal(t, fixedNow, *first.AcknowledgedAt)

	again, err := svc.Acknowledge(ctx, domain.Actor{WorkspaceID: testutil.TestWorkspace, UserID: "manager"}, id)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestUser, again.AcknowledgedBy)
	assert.Equal(t, fixedNow, *again.AcknowledgedAt)

	events := f.auditEvents(t, "notification", id)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditNotificationAcknowledged, events[0].Action)
}

func TestNotificationService_Acknowledge_OtherWorkspace(t *testing.T) {
	f := newDealFixture(t)
	f.addSignal(t, domain.SignalFunding, 85)
	svc := newNotificationService(f, nil)
	ctx := context.Background()

	views, err := svc.List(ctx, testutil.TestActor, 20)
	require.NoError(t, err)

	_, err = svc.Acknowledge(ctx, domain.Actor{WorkspaceID: "ws-other", UserID: "x"}, views[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendedAction_UnknownTypeUsesEngagement(t *testing.T) {
	assert.Equal(t, "Launch a high-touch sequence while engagement is warm", RecommendedAction("webinar"))
}

// staleNotificationRepo serves a snapshot on the first read, as if another
// acknowledgement landed between the read and the write.
type staleNotificationRepo struct {
	repository.NotificationRepo
	snapshot *domain.SignalNotification
}

func (r *staleNotificationRepo) GetByID(ctx context.Context, workspaceID, id string) (*domain.SignalNotification, error) {
	if r.snapshot != nil {
		n := r.snapshot
		r.snapshot = nil
		return n, nil
	}
	return r.NotificationRepo.GetByID(ctx, workspaceID, id)
}

func TestNotificationService_Acknowledge_ConcurrentAckKeepsFirstStamp(t *testing.T) {
	f := newDealFixture(t)
	f.addSignal(t, domain.SignalFunding, 85)
	ctx := context.Background()

	views, err := newNotificationService(f, nil).List(ctx, testutil.TestActor, 20)
	require.NoError(t, err)
	id := views[0].ID

	repo := repository.NewSQLiteNotificationRepo(f.db)
	snapshot, err := repo.GetByID(ctx, testutil.TestWorkspace, id)
	require.NoError(t, err)

	alice := NewNotificationService(NotificationDeps{
		Notifications: repo,
		Audit:         repository.NewSQLiteAuditRepo(f.db),
		Clock:         fixedClock,
	})
	_, err = alice.Acknowledge(ctx, domain.Actor{WorkspaceID: testutil.TestWorkspace, UserID: "alice"}, id)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	bob := NewNotificationService(NotificationDeps{
		Notifications: &staleNotificationRepo{NotificationRepo: repo, snapshot: snapshot},
		Audit:         repository.NewSQLiteAuditRepo(f.db),
		Clock:         func() time.Time { return later },
	})
	got, err := bob.Acknowledge(ctx, domain.Actor{WorkspaceID: testutil.TestWorkspace, UserID: "bob"}, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.AcknowledgedBy)
	require.NotNil(t, got.AcknowledgedAt)
	assert.Equal(t, fixedNow, *got.AcknowledgedAt)

	stored, err := repo.GetByID(ctx, testutil.TestWorkspace, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.AcknowledgedBy)
	assert.Equal(t, fixedNow, *stored.AcknowledgedAt)
	assert.Len(t, f.auditEvents(t, "notification", id), 1)
}
