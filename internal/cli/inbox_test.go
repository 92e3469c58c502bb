package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/teatest"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifications struct {
	views []contract.NotificationView
	acked []string
	err   error
}

func (s *stubNotifications) List(ctx context.Context, actor domain.Actor, limit int) ([]contract.NotificationView, error) {
	out := make([]contract.NotificationView, len(s.views))
	copy(out, s.views)
	return out, s.err
}

func (s *stubNotifications) Acknowledge(ctx context.Context, actor domain.Actor, id string) (*domain.SignalNotification, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.acked = append(s.acked, id)
	for i := range s.views {
		if s.views[i].ID == id {
			s.views[i].Status = string(domain.NotificationAcknowledged)
		}
	}
	return &domain.SignalNotification{ID: id, Status: domain.NotificationAcknowledged}, nil
}

func inboxNow() time.Time { return time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC) }

func newInboxDriver(t *testing.T, stub *stubNotifications) *teatest.Driver {
	t.Helper()
	m := newInboxModel(context.Background(), stub, testutil.TestActor, 20, inboxNow)
	return teatest.New(t, m).DrainInit()
}

func inboxOf(d *teatest.Driver) inboxModel {
	return d.Model.(inboxModel)
}

func TestInbox_LoadsRows(t *testing.T) {
	stub := &stubNotifications{views: []contract.NotificationView{
		{ID: "n1", DealName: "Northwind", Summary: "Series C", Priority: "high", Status: "unread", HappenedAt: inboxNow().Add(-time.Hour), RecommendedAction: "Send congrats"},
		{ID: "n2", Summary: "Hiring", Priority: "medium", Status: "acknowledged", HappenedAt: inboxNow().Add(-48 * time.Hour)},
	}}
	d := newInboxDriver(t, stub)

	rows := inboxOf(d).table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "HIGH", rows[0][0])
	assert.Equal(t, "(no open deal)", rows[1][2])
	assert.Contains(t, d.View(), "Send congrats")
}

func TestInbox_AckSelectedThenReloads(t *testing.T) {
	stub := &stubNotifications{views: []contract.NotificationView{
		{ID: "n1", Summary: "Series C", Priority: "high", Status: "unread"},
		{ID: "n2", Summary: "Hiring", Priority: "medium", Status: "unread"},
	}}
	d := newInboxDriver(t, stub)

	d.PressDown()
	d.PressKey('a')

	assert.Equal(t, []string{"n2"}, stub.acked)
	m := inboxOf(d)
	assert.Contains(t, m.status, "Acknowledged")
	assert.Equal(t, "new", m.table.Rows()[0][1])
	assert.Equal(t, "ack", m.table.Rows()[1][1])
}

func TestInbox_AckAlreadyAcknowledgedIsNoop(t *testing.T) {
	stub := &stubNotifications{views: []contract.NotificationView{
		{ID: "n1", Summary: "Series C", Priority: "high", Status: "acknowledged"},
	}}
	d := newInboxDriver(t, stub)

	d.PressKey('a')

	assert.Equal(t, "Already acknowledged", inboxOf(d).status)
	assert.Empty(t, stub.acked)
}

func TestInbox_ShowsLoadError(t *testing.T) {
	d := newInboxDriver(t, &stubNotifications{err: errors.New("database is locked")})
	assert.Contains(t, d.View(), "database is locked")
}

func TestInbox_EmptyState(t *testing.T) {
	d := newInboxDriver(t, &stubNotifications{})
	assert.Contains(t, d.View(), "No notifications yet.")
}

func TestInbox_Quit(t *testing.T) {
	d := newInboxDriver(t, &stubNotifications{})

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
