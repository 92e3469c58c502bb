// Package httpapi exposes the services over JSON/HTTP. Identity is taken
// from the X-Workspace-ID and X-Actor-ID headers and is not authenticated.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	HeaderWorkspace = "X-Workspace-ID"
	HeaderActor     = "X-Actor-ID"

	maxBodyBytes = 1 << 20
)

// Services are the use cases served over HTTP. Nil services are not routed.
type Services struct {
	MeetingNotes  service.MeetingNotesService
	Strategy      service.StrategyService
	Notifications service.NotificationService
	Signals       service.SignalService
	Approvals     service.ApprovalService
	Tasks         service.TaskService
	Deals         service.DealService
}

// NewRouter builds the /v1 API. metrics, when non-nil, is mounted at /metrics.
func NewRouter(svc Services, logger *slog.Logger, metrics http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(requireActor)

		if svc.MeetingNotes != nil {
			r.Post("/deals/{dealID}/meeting-notes", h.processNotes)
			r.Post("/deals/{dealID}/follow-up/approval", h.requestFollowUpApproval)
		}
		if svc.Strategy != nil {
			r.Get("/deals/{dealID}/plays", h.listPlays)
			r.Post("/deals/{dealID}/plays/{playID}/execute", h.executePlay)
		}
		if svc.Tasks != nil {
			r.Get("/deals/{dealID}/tasks", h.listTasks)
			r.Post("/tasks/{taskID}/status", h.updateTaskStatus)
		}
		if svc.Deals != nil {
			r.Get("/deals", h.listDeals)
			r.Get("/pipeline", h.pipeline)
		}
		if svc.Notifications != nil {
			r.Get("/notifications", h.listNotifications)
			r.Post("/notifications/{id}/acknowledge", h.acknowledgeNotification)
		}
		if svc.Signals != nil {
			r.Get("/signals/alerts", h.signalAlerts)
		}
		if svc.Approvals != nil {
			r.Get("/approvals", h.listApprovals)
			r.Post("/approvals/{id}/review", h.reviewApproval)
		}
	})
	return r
}

type actorKey struct{}

func requireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{
			WorkspaceID: r.Header.Get(HeaderWorkspace),
			UserID:      r.Header.Get(HeaderActor),
		}
		if err := actor.Validate(); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

func actorFrom(r *http.Request) domain.Actor {
	a, _ := r.Context().Value(actorKey{}).(domain.Actor)
	return a
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(domain.ErrValidation, err)
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(domain.ErrValidation, errors.New(key+" must be an integer"))
	}
	return n, nil
}

// executeStatus maps an execution failure kind to its HTTP status.
func executeStatus(res contract.ExecutePlayResult) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.ErrorKind {
	case contract.ExecuteErrNotFound:
		return http.StatusNotFound
	case contract.ExecuteErrInvalid:
		return http.StatusBadRequest
	case contract.ExecuteErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
