package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	svc Services
}

type processNotesBody struct {
	Notes      string     `json:"notes"`
	HappenedAt *time.Time `json:"happenedAt,omitempty"`
	Source     string     `json:"source,omitempty"`
}

func (h *handlers) processNotes(w http.ResponseWriter, r *http.Request) {
	var body processNotesBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	req := contract.NewProcessNotesRequest(actorFrom(r), chi.URLParam(r, "dealID"), body.Notes)
	req.HappenedAt = body.HappenedAt
	if body.Source != "" {
		req.Source = body.Source
	}

	resp, err := h.svc.MeetingNotes.Process(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handlers) requestFollowUpApproval(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.MeetingNotes.RequestFollowUpApproval(r.Context(), actorFrom(r), chi.URLParam(r, "dealID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewApprovalView(a))
}

func (h *handlers) listPlays(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Strategy.ListPlays(r.Context(), actorFrom(r), chi.URLParam(r, "dealID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) executePlay(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Strategy.ExecutePlay(r.Context(), actorFrom(r), chi.URLParam(r, "playID"), chi.URLParam(r, "dealID"))
	writeJSON(w, executeStatus(res), res)
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.Tasks.ListByDeal(r.Context(), actorFrom(r), chi.URLParam(r, "dealID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewTaskViews(tasks))
}

type taskStatusBody struct {
	Status string `json:"status"`
}

func (h *handlers) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var body taskStatusBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	t, err := h.svc.Tasks.UpdateStatus(r.Context(), actorFrom(r), chi.URLParam(r, "taskID"), domain.TaskStatus(body.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewTaskView(t))
}

func (h *handlers) listDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.svc.Deals.List(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewDealViews(deals))
}

func (h *handlers) pipeline(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Deals.Pipeline(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.svc.Notifications.List(r.Context(), actorFrom(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handlers) acknowledgeNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Notifications.Acknowledge(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewAcknowledgementView(n))
}

func (h *handlers) signalAlerts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	minPriority := domain.Priority(r.URL.Query().Get("minPriority"))
	alerts, err := h.svc.Signals.Alerts(r.Context(), actorFrom(r), minPriority, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *handlers) listApprovals(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	approvals, err := h.svc.Approvals.ListPending(r.Context(), actorFrom(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]contract.ApprovalView, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, contract.NewApprovalView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

type reviewBody struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

func (h *handlers) reviewApproval(w http.ResponseWriter, r *http.Request) {
	var body reviewBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	a, err := h.svc.Approvals.Review(r.Context(), contract.ReviewApprovalRequest{
		ApprovalID: chi.URLParam(r, "id"),
		Decision:   domain.ApprovalStatus(body.Decision),
		Reason:     body.Reason,
		Actor:      actorFrom(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewApprovalView(a))
}
