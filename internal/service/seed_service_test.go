package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedService_Seed(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewSeedService(testutil.NewTestUoW(database), fixedClock)

	res, err := svc.Seed(ctx, testutil.TestActor)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Signals)

	deal, err := repository.NewSQLiteDealRepo(database).GetByID(ctx, testutil.TestWorkspace, res.DealID)
	require.NoError(t, err)
	assert.Equal(t, res.AccountID, deal.AccountID)

	signals, err := repository.NewSQLiteSignalRepo(database).ListByAccount(ctx, testutil.TestWorkspace, res.AccountID, 10)
	require.NoError(t, err)
	assert.Len(t, signals, 4)

	activities, err := repository.NewSQLiteActivityRepo(database).ListByDeal(ctx, testutil.TestWorkspace, res.DealID, 10)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
