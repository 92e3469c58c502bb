package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageCodec_RoundTrip(t *testing.T) {
	for _, s := range StageCodec.Values() {
		stored, err := StageCodec.ToDB(s)
		require.NoError(t, err)
		back, err := StageCodec.FromDB(stored)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestStageCodec_StoredForm(t *testing.T) {
	stored, err := StageCodec.ToDB(StageClosedWon)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED_WON", stored)

	status, err := TaskStatusCodec.ToDB(TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", status)
}

func TestEnumCodec_RejectsUnknown(t *testing.T) {
	_, err := ChannelCodec.Parse("fax")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = PriorityCodec.ToDB(Priority("urgent"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = SignalTypeCodec.FromDB("hiring")
	assert.Error(t, err, "stored form is upper snake case")
}

func TestAllCodecs_Bijective(t *testing.T) {
	check := func(name string, values []string, toDB func(string) (string, error), fromDB func(string) (string, error)) {
		seen := map[string]bool{}
		for _, v := range values {
			stored, err := toDB(v)
			require.NoError(t, err, name)
			assert.False(t, seen[stored], "%s: duplicate stored form %s", name, stored)
			seen[stored] = true
			back, err := fromDB(stored)
			require.NoError(t, err, name)
			assert.Equal(t, v, back, name)
		}
	}
	check("channel", stringsOf(ChannelCodec.Values()),
		func(s string) (string, error) { return ChannelCodec.ToDB(Channel(s)) },
		func(s string) (string, error) { v, err := ChannelCodec.FromDB(s); return string(v), err })
	check("approval", stringsOf(ApprovalStatusCodec.Values()),
		func(s string) (string, error) { return ApprovalStatusCodec.ToDB(ApprovalStatus(s)) },
		func(s string) (string, error) { v, err := ApprovalStatusCodec.FromDB(s); return string(v), err })
	check("notification", stringsOf(NotificationStatusCodec.Values()),
		func(s string) (string, error) { return NotificationStatusCodec.ToDB(NotificationStatus(s)) },
		func(s string) (string, error) { v, err := NotificationStatusCodec.FromDB(s); return string(v), err })
	check("activity", stringsOf(ActivityTypeCodec.Values()),
		func(s string) (string, error) { return ActivityTypeCodec.ToDB(ActivityType(s)) },
		func(s string) (string, error) { v, err := ActivityTypeCodec.FromDB(s); return string(v), err })
	check("owner", stringsOf(TaskOwnerCodec.Values()),
		func(s string) (string, error) { return TaskOwnerCodec.ToDB(TaskOwner(s)) },
		func(s string) (string, error) { v, err := TaskOwnerCodec.FromDB(s); return string(v), err })
}

func stringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func TestStage_IsClosed(t *testing.T) {
	assert.True(t, StageClosedWon.IsClosed())
	assert.True(t, StageClosedLost.IsClosed())
	assert.False(t, StageProcurement.IsClosed())
	assert.False(t, StageDiscovery.IsClosed())
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 0, Priority("").Rank())
}
