package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/alexanderramin/dealdesk/internal/strategy"
	"github.com/alexanderramin/dealdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	server  *httptest.Server
	deal    *domain.Deal
	account *domain.Account
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	ws := testutil.TestWorkspace

	acct := testutil.NewTestAccount(ws, "Northwind")
	require.NoError(t, repository.NewSQLiteAccountRepo(database).Create(ctx, acct))
	deal := testutil.NewTestDeal(ws, acct.ID, "Northwind Expansion")
	require.NoError(t, repository.NewSQLiteDealRepo(database).Create(ctx, deal))
	require.NoError(t, repository.NewSQLiteSignalRepo(database).Create(ctx,
		testutil.NewTestSignal(ws, acct.ID, domain.SignalFunding, 90)))

	deals := repository.NewSQLiteDealRepo(database)
	signals := repository.NewSQLiteSignalRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	approvals := repository.NewSQLiteApprovalRepo(database)
	audit := repository.NewSQLiteAuditRepo(database)
	uow := testutil.NewTestUoW(database)

	loader := &strategy.ContextLoader{
		Deals:      deals,
		Signals:    signals,
		Tasks:      tasks,
		Approvals:  approvals,
		Activities: repository.NewSQLiteActivityRepo(database),
	}
	gen := strategy.NewRuleBasedGenerator()
	exec := strategy.NewExecutor(loader, gen, uow, approvals, audit)

	router := NewRouter(Services{
		MeetingNotes: service.NewMeetingNotesService(service.MeetingNotesDeps{
			Deals:     deals,
			Drafts:    repository.NewSQLiteFollowUpDraftRepo(database),
			Approvals: approvals,
			Audit:     audit,
			UoW:       uow,
		}),
		Strategy: service.NewStrategyService(loader, gen, exec, nil, nil),
		Notifications: service.NewNotificationService(service.NotificationDeps{
			Signals:       signals,
			Deals:         deals,
			Notifications: repository.NewSQLiteNotificationRepo(database),
			Audit:         audit,
		}),
		Signals:   service.NewSignalService(signals),
		Approvals: service.NewApprovalService(approvals, audit, nil),
		Tasks:     service.NewTaskService(deals, tasks, audit, nil),
		Deals:     service.NewDealService(deals),
	}, nil, http.NotFoundHandler())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return apiFixture{server: srv, deal: deal, account: acct}
}

func (f apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set(HeaderWorkspace, testutil.TestWorkspace)
	req.Header.Set(HeaderActor, testutil.TestUser)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI_ProcessMeetingNotes(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/meeting-notes", map[string]any{
		"notes": "We discussed budget concerns and need legal to review the NDA before next week's follow-up.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decode[contract.ProcessNotesResponse](t, resp)
	assert.Len(t, got.GeneratedTasks, 3)
	assert.Equal(t, "meeting", got.Activity.Type)
	assert.Len(t, got.MeetingBrief.Objections, 2)
}

func TestAPI_ProcessMeetingNotes_TooShort(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/meeting-notes", map[string]any{"notes": "too short"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ProcessMeetingNotes_UnknownField(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/meeting-notes", map[string]any{"text": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ListAndExecutePlays(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/v1/deals/"+f.deal.ID+"/plays", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plays := decode[contract.PlaysResponse](t, resp)
	require.NotEmpty(t, plays.Plays)

	playID := plays.Plays[0].ID
	resp = f.do(t, http.MethodPost, fmt.Sprintf("/v1/deals/%s/plays/%s/execute", f.deal.ID, playID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[contract.ExecutePlayResult](t, resp)
	assert.True(t, res.Success)
	assert.Equal(t, len(plays.Plays[0].Steps), res.TasksCreated)

	resp = f.do(t, http.MethodGet, "/v1/deals/"+f.deal.ID+"/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]contract.TaskView](t, resp), res.TasksCreated)
}

func TestAPI_ExecuteUnknownPlay(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/plays/nope/execute", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	res := decode[contract.ExecutePlayResult](t, resp)
	assert.False(t, res.Success)
	assert.Equal(t, contract.ExecuteErrNotFound, res.ErrorKind)
}

func TestAPI_NotificationsAndAcknowledge(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/v1/notifications?limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	views := decode[[]contract.NotificationView](t, resp)
	require.Len(t, views, 1)
	assert.Equal(t, "high", views[0].Priority)

	resp = f.do(t, http.MethodPost, "/v1/notifications/"+views[0].ID+"/acknowledge", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ack := decode[map[string]any](t, resp)
	assert.Equal(t, "acknowledged", ack["status"])

	resp = f.do(t, http.MethodPost, "/v1/notifications/missing/acknowledge", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/notifications?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SignalAlertsAndPipeline(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/v1/signals/alerts?minPriority=high", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]contract.AlertView](t, resp), 1)

	resp = f.do(t, http.MethodGet, "/v1/pipeline", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[contract.PipelineView](t, resp).OpenDeals)
}

func TestAPI_ApprovalReviewConflict(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/meeting-notes", map[string]any{
		"notes": "Walked through pricing with the CFO; they want a proposal by Friday.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/deals/"+f.deal.ID+"/follow-up/approval", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	approval := decode[contract.ApprovalView](t, resp)

	resp = f.do(t, http.MethodPost, "/v1/approvals/"+approval.ID+"/review", map[string]any{"decision": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/approvals/"+approval.ID+"/review", map[string]any{"decision": "approved"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_RequiresIdentityHeaders(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.server.URL + "/v1/notifications")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestAPI_Healthz(t *testing.T) {
	f := newAPIFixture(t)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
