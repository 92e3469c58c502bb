package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateBatchAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	base := time.Now().UTC().Truncate(time.Second)
	tasks := []*domain.Task{
		testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "second", testutil.WithDueAt(base.Add(48*time.Hour))),
		testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "first", testutil.WithDueAt(base.Add(24*time.Hour)),
			testutil.WithTaskPriority(domain.PriorityHigh)),
	}
	repo := NewSQLiteTaskRepo(database)
	require.NoError(t, repo.CreateBatch(ctx, tasks))

	got, err := repo.ListByDeal(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, domain.PriorityHigh, got[0].Priority)
	assert.Equal(t, domain.OwnerRep, got[0].Owner)
	assert.Equal(t, domain.ChannelEmail, got[0].Channel)
}

func TestTaskRepo_CreateBatchRollsBackInTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: fmt.Errorf("injected insert failure")}
	tasks := []*domain.Task{
		testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "a"),
		testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "b"),
		testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "c"),
	}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteTaskRepo(tx).CreateBatch(ctx, tasks)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 3 of 3")

	got, err := NewSQLiteTaskRepo(database).ListByDeal(ctx, testutil.TestWorkspace, deal.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "no partial batch survives a rollback")
}

func TestTaskRepo_UpdateStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	acct := seedAccount(t, database, testutil.TestWorkspace)
	deal := testutil.NewTestDeal(testutil.TestWorkspace, acct.ID, "Deal")
	require.NoError(t, NewSQLiteDealRepo(database).Create(ctx, deal))

	repo := NewSQLiteTaskRepo(database)
	task := testutil.NewTestTask(testutil.TestWorkspace, deal.ID, "call back")
	require.NoError(t, repo.Create(ctx, task))

	done := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, task.TransitionTo(domain.TaskDone, done))
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.GetByID(ctx, testutil.TestWorkspace, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
}
