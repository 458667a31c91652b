package evaluationshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentos/internal/domain/audit"
	"talentos/internal/domain/auth"
	"talentos/internal/domain/evaluation"
	"talentos/internal/domain/notifications"
	"talentos/internal/platform/metrics"
	"talentos/internal/transport/http/api"
	"talentos/internal/transport/http/middleware"
	"talentos/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *evaluation.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms)).Post("/self", h.handleSubmitSelf)
		r.With(middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms)).Post("/leader", h.handleSubmitLeader)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/{evaluationID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/users/{userID}", h.handleListForUser)
	})
	r.Route("/consensus", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermConsensusWrite, h.Perms)).Post("/", h.handleCreateMeeting)
		r.With(middleware.RequirePermission(auth.PermConsensusWrite, h.Perms)).Put("/{meetingID}/complete", h.handleCompleteConsensus)
	})
}

func (h *Handler) handleSubmitSelf(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, evaluation.KindSelf)
}

func (h *Handler) handleSubmitLeader(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, evaluation.KindLeader)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, kind string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		UserID       string `json:"userId"`
		CycleID      string `json:"cycleId"`
		Competencies []struct {
			Name            string  `json:"name"`
			Category        string  `json:"category"`
			Score           float64 `json:"score"`
			WrittenResponse string  `json:"written_response"`
		} `json:"competencies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	// A self evaluation is always about the author.
	if kind == evaluation.KindSelf || payload.UserID == "" {
		payload.UserID = user.UserID
	}

	competencies := make([]evaluation.Competency, 0, len(payload.Competencies))
	for _, c := range payload.Competencies {
		competencies = append(competencies, evaluation.Competency{
			Name:            c.Name,
			Category:        c.Category,
			Score:           c.Score,
			WrittenResponse: c.WrittenResponse,
		})
	}

	eval, err := h.Service.Submit(r.Context(), kind, payload.UserID, user.UserID, payload.CycleID, competencies)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrNoCompetencies),
			errors.Is(err, evaluation.ErrUnknownCategory),
			errors.Is(err, evaluation.ErrScoreOutOfRange):
			api.Fail(w, http.StatusBadRequest, "invalid_evaluation", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "failed to save evaluation", middleware.GetRequestID(r.Context()))
		}
		return
	}
	h.Metrics.RecordEvaluation()

	if err := h.Audit.Record(r.Context(), user.UserID, "evaluation.submit", "evaluation", eval.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, eval); err != nil {
		slog.Warn("evaluation audit failed", "err", err)
	}
	if kind == evaluation.KindLeader {
		if err := h.Notify.Create(r.Context(), eval.UserID, notifications.TypeEvaluationSubmitted, "Avaliação recebida", "Seu líder submeteu uma avaliação de desempenho."); err != nil {
			slog.Warn("evaluation notification failed", "err", err)
		}
	}

	api.Created(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationID")

	eval, err := h.Service.Get(r.Context(), evaluationID)
	if err != nil {
		if errors.Is(err, evaluation.ErrEvaluationNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evaluation_fetch_failed", "failed to load evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	evals, err := h.Service.ListForUser(r.Context(), userID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, evals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  string `json:"userId"`
		CycleID string `json:"cycleId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("userId", payload.UserID, "user id required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	meeting, err := h.Service.CreateMeeting(r.Context(), payload.UserID, payload.CycleID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "consensus_create_failed", "failed to create consensus meeting", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, meeting, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompleteConsensus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	meetingID := chi.URLParam(r, "meetingID")

	var payload struct {
		PerformanceScore float64 `json:"performanceScore"`
		PotentialScore   float64 `json:"potentialScore"`
		Notes            string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Range("performanceScore", payload.PerformanceScore, 0, 5, "must be between 0 and 5")
	v.Range("potentialScore", payload.PotentialScore, 0, 5, "must be between 0 and 5")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	meeting, err := h.Service.CompleteConsensus(r.Context(), meetingID, payload.PerformanceScore, payload.PotentialScore, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrMeetingNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "consensus meeting not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, evaluation.ErrMeetingCompleted):
			api.Fail(w, http.StatusConflict, "meeting_completed", "consensus meeting already completed", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "consensus_failed", "failed to complete consensus", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "consensus.complete", "consensus_meeting", meetingID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, meeting); err != nil {
		slog.Warn("consensus audit failed", "err", err)
	}
	if err := h.Notify.Create(r.Context(), meeting.UserID, notifications.TypeConsensusCompleted, "Consenso concluído", "Sua reunião de consenso foi concluída."); err != nil {
		slog.Warn("consensus notification failed", "err", err)
	}

	api.Success(w, meeting, middleware.GetRequestID(r.Context()))
}
