package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealService_Pipeline_ExcludesClosed(t *testing.T) {
	f := newDealFixture(t, testutil.WithAmount(100000), testutil.WithConfidence(0.5))
	ctx := context.Background()
	deals := repository.NewSQLiteDealRepo(f.db)

	require.NoError(t, deals.Create(ctx, testutil.NewTestDeal(testutil.TestWorkspace, f.account.ID, "Add-on",
		testutil.WithStage(domain.StageProposal), testutil.WithAmount(20000), testutil.WithConfidence(0.8))))
	require.NoError(t, deals.Create(ctx, testutil.NewTestDeal(testutil.TestWorkspace, f.account.ID, "Won",
		testutil.WithStage(domain.StageClosedWon), testutil.WithAmount(999999))))

	svc := NewDealService(deals)
	got, err := svc.Pipeline(ctx, testutil.TestActor)
	require.NoError(t, err)

	assert.Equal(t, 2, got.OpenDeals)
	assert.Equal(t, int64(120000), got.TotalAmount)
	assert.InDelta(t, 66000.0, got.WeightedAmount, 0.001)
	assert.Equal(t, map[string]int{"evaluation": 1, "proposal": 1}, got.ByStage)

	all, err := svc.List(ctx, testutil.TestActor)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDealService_List_ScopedToWorkspace(t *testing.T) {
	f := newDealFixture(t)
	svc := NewDealService(repository.NewSQLiteDealRepo(f.db))

	got, err := svc.List(context.Background(), domain.Actor{WorkspaceID: "ws-other", UserID: "x"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
