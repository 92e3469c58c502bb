package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, database *sql.DB, workspaceID string) *domain.Account {
	t.Helper()
	acct := testutil.NewTestAccount(workspaceID, "Acme")
	require.NoError(t, NewSQLiteAccountRepo(database).Create(context.Background(), acct))
	return acct
}

func TestDealRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)

	closeDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Acme Expansion",
		testutil.WithStage(domain.StageProcurement),
		testutil.WithRiskSummary("legal review pending"))
	deal.CloseDate = &closeDate
	require.NoError(t, repo.Create(ctx, deal))

	got, err := repo.GetByID(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Expansion", got.Name)
	assert.Equal(t, domain.StageProcurement, got.Stage)
	assert.Equal(t, "legal review pending", got.RiskSummary)
	require.NotNil(t, got.CloseDate)
	assert.True(t, closeDate.Equal(*got.CloseDate))
	assert.Equal(t, deal.UpdatedAt, got.UpdatedAt)
}

func TestDealRepo_WorkspaceScoped(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)
	ctx := context.Background()
	acct := seedAccount(t, database, "ws-a")

	deal := testutil.NewTestDeal("ws-a", acct.ID, "Scoped")
	require.NoError(t, repo.Create(ctx, deal))

	_, err := repo.GetByID(ctx, "ws-b", deal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDealRepo_LatestOpenForAccount(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	base := time.Now().UTC().Truncate(time.Second)

	older := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Older", testutil.WithDealUpdatedAt(base.Add(-48*time.Hour)))
	newer := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Newer", testutil.WithDealUpdatedAt(base.Add(-24*time.Hour)))
	closed := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Closed",
		testutil.WithStage(domain.StageClosedWon), testutil.WithDealUpdatedAt(base))
	for _, d := range []*domain.Deal{older, newer, closed} {
		require.NoError(t, repo.Create(ctx, d))
	}

	got, err := repo.LatestOpenForAccount(ctx, testutil.TestWorkspace, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "closed deals are never linked even when most recent")
}

func TestDealRepo_LatestOpenForAccount_NoneOpen(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)

	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Lost",
		testutil.WithStage(domain.StageClosedLost))))

	_, err := repo.LatestOpenForAccount(ctx, testutil.TestWorkspace, acct.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealRepo_UpdateMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)

	deal := testutil.NewTestDeal(testutil.TestWorkspace, "acct", "Ghost")
	err := repo.Update(context.Background(), deal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealRepo_ClosedDatabaseIsUnavailable(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(database)
	require.NoError(t, database.Close())

	_, err := repo.GetByID(context.Background(), testutil.TestWorkspace, "any")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}
