package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type dealFixture struct {
	db      *sql.DB
	account *domain.Account
	deal    *domain.Deal
}

func newDealFixture(t *testing.T, opts ...testutil.DealOption) dealFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	ws := testutil.TestWorkspace

	acct := testutil.NewTestAccount(ws, "Northwind")
	require.NoError(t, repository.NewSQLiteAccountRepo(database).Create(ctx, acct))
	deal := testutil.NewTestDeal(ws, acct.ID, "Northwind Expansion", opts...)
	require.NoError(t, repository.NewSQLiteDealRepo(database).Create(ctx, deal))

	return dealFixture{db: database, account: acct, deal: deal}
}

func (f dealFixture) addSignal(t *testing.T, typ domain.SignalType, score int, opts ...testutil.SignalOption) *domain.Signal {
	t.Helper()
	s := testutil.NewTestSignal(testutil.TestWorkspace, f.account.ID, typ, score, opts...)
	require.NoError(t, repository.NewSQLiteSignalRepo(f.db).Create(context.Background(), s))
	return s
}

func (f dealFixture) auditEvents(t *testing.T, entityType, entityID string) []*domain.AuditEvent {
	t.Helper()
	events, err := repository.NewSQLiteAuditRepo(f.db).ListByEntity(context.Background(), testutil.TestWorkspace, entityType, entityID)
	require.NoError(t, err)
	return events
}

type countingRecorder struct {
	mu        sync.Mutex
	plays     map[string]int
	derived   map[string]int
	processed int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{plays: map[string]int{}, derived: map[string]int{}}
}

func (r *countingRecorder) RecordPlayExecuted(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays[result]++
}

func (r *countingRecorder) RecordNotificationDerived(priority string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.derived[priority]++
}

func (r *countingRecorder) RecordMeetingNotesProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
}
