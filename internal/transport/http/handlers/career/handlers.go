package careerhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentos/internal/domain/audit"
	"talentos/internal/domain/auth"
	"talentos/internal/domain/career"
	"talentos/internal/domain/notifications"
	"talentos/internal/platform/metrics"
	"talentos/internal/transport/http/api"
	"talentos/internal/transport/http/middleware"
	"talentos/internal/transport/http/shared"
)

type Handler struct {
	Service     *career.Service
	Validator   *career.Validator
	Perms       middleware.PermissionStore
	Notify      *notifications.Service
	Audit       *audit.Service
	Metrics     *metrics.Collector
	Idempotency *middleware.IdempotencyStore
}

func NewHandler(service *career.Service, validator *career.Validator, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector, idem *middleware.IdempotencyStore) *Handler {
	return &Handler{
		Service:     service,
		Validator:   validator,
		Perms:       perms,
		Notify:      notify,
		Audit:       auditSvc,
		Metrics:     collector,
		Idempotency: idem,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/career", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Post("/salary/calculate", h.handleCalculateSalary)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/positions/{positionID}/salary-table", h.handleSalaryTable)
		r.With(middleware.RequirePermission(auth.PermCareerWrite, h.Perms)).Put("/users/{userID}/assign-track", h.handleAssignTrack)
		r.With(middleware.RequirePermission(auth.PermCareerProgress, h.Perms)).Post("/users/{userID}/progress", h.handleProgress)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/users/{userID}/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/tracks", h.handleListTracks)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/tracks/{trackID}/positions", h.handleListPositions)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/levels", h.handleListLevels)
		r.With(middleware.RequirePermission(auth.PermCareerRead, h.Perms)).Get("/rules", h.handleListRules)
	})
}

func (h *Handler) handleCalculateSalary(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TrackPositionID string `json:"trackPositionId"`
		SalaryLevelID   string `json:"salaryLevelId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("trackPositionId", payload.TrackPositionID, "track position id required")
	v.Required("salaryLevelId", payload.SalaryLevelID, "salary level id required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	calc, err := h.Service.CalculateForPosition(r.Context(), payload.TrackPositionID, payload.SalaryLevelID)
	if err != nil {
		h.failLookup(w, r, err, "salary_calculation_failed", "failed to calculate salary")
		return
	}
	api.Success(w, calc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSalaryTable(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	table, err := h.Service.SalaryTableForPosition(r.Context(), positionID)
	if err != nil {
		h.failLookup(w, r, err, "salary_table_failed", "failed to build salary table")
		return
	}
	api.Success(w, table, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAssignTrack(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	userID := chi.URLParam(r, "userID")

	var payload struct {
		TrackPositionID string `json:"trackPositionId"`
		SalaryLevelID   string `json:"salaryLevelId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("trackPositionId", payload.TrackPositionID, "track position id required")
	v.Required("salaryLevelId", payload.SalaryLevelID, "salary level id required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result := h.Validator.ValidateTrackAssignment(r.Context(), userID, payload.TrackPositionID, payload.SalaryLevelID)
	if !result.IsValid {
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "assignment_blocked", "track assignment failed validation", result, middleware.GetRequestID(r.Context()))
		return
	}

	before, err := h.Service.User(r.Context(), userID)
	if err != nil {
		h.failLookup(w, r, err, "assign_track_failed", "failed to assign track")
		return
	}

	updated, err := h.Service.AssignTrack(r.Context(), userID, payload.TrackPositionID, payload.SalaryLevelID)
	if err != nil {
		h.failLookup(w, r, err, "assign_track_failed", "failed to assign track")
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "career.track.assign", "user", userID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, updated); err != nil {
		slog.Warn("assign track audit failed", "err", err)
	}
	if err := h.Notify.Create(r.Context(), userID, notifications.TypeTrackAssigned, "Trilha de carreira atualizada", "Sua posição na trilha de carreira foi atualizada."); err != nil {
		slog.Warn("assign track notification failed", "err", err)
	}

	api.Success(w, map[string]any{"user": updated, "warnings": result.Warnings}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	userID := chi.URLParam(r, "userID")

	var payload struct {
		ToTrackPositionID string `json:"toTrackPositionId"`
		ToSalaryLevelID   string `json:"toSalaryLevelId"`
		ProgressionType   string `json:"progressionType"`
		Reason            string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("toTrackPositionId", payload.ToTrackPositionID, "target position id required")
	v.Required("toSalaryLevelId", payload.ToSalaryLevelID, "target level id required")
	v.Enum("progressionType", payload.ProgressionType,
		[]string{career.ProgressionHorizontal, career.ProgressionVertical, career.ProgressionMerit},
		"must be horizontal, vertical or merit")
	v.Required("progressionType", payload.ProgressionType, "progression type required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	requestHash := ""
	if idemKey != "" {
		raw, _ := json.Marshal(payload)
		requestHash = middleware.RequestHash(append([]byte(userID+":"), raw...))
		if stored, found, err := h.Idempotency.Check(r.Context(), user.UserID, "career.progress", idemKey, requestHash); err != nil {
			if errors.Is(err, middleware.ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key already used with a different payload", middleware.GetRequestID(r.Context()))
				return
			}
			slog.Warn("idempotency check failed", "err", err)
		} else if found {
			var replay any
			_ = json.Unmarshal(stored, &replay)
			api.Success(w, replay, middleware.GetRequestID(r.Context()))
			return
		}
	}

	current, err := h.Service.User(r.Context(), userID)
	if err != nil {
		h.failLookup(w, r, err, "progression_failed", "failed to execute progression")
		return
	}

	result := h.Validator.ValidateProgression(r.Context(), userID, current.TrackPositionID, payload.ToTrackPositionID, payload.ProgressionType)
	if !result.IsValid {
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "progression_blocked", "progression failed validation", result, middleware.GetRequestID(r.Context()))
		return
	}

	history, updated, err := h.Service.Progress(r.Context(), userID, payload.ToTrackPositionID, payload.ToSalaryLevelID, payload.ProgressionType, payload.Reason, user.UserID)
	if err != nil {
		h.failLookup(w, r, err, "progression_failed", "failed to execute progression")
		return
	}
	h.Metrics.RecordProgression()

	response := map[string]any{"history": history, "user": updated, "warnings": result.Warnings}

	if idemKey != "" {
		if raw, err := json.Marshal(response); err == nil {
			if err := h.Idempotency.Save(r.Context(), user.UserID, "career.progress", idemKey, requestHash, raw); err != nil {
				slog.Warn("idempotency save failed", "err", err)
			}
		}
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "career.progression.execute", "user", userID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), current, updated); err != nil {
		slog.Warn("progression audit failed", "err", err)
	}
	if err := h.Notify.Create(r.Context(), userID, notifications.TypeProgressionExecuted, "Progressão executada", "Sua progressão de carreira foi executada."); err != nil {
		slog.Warn("progression notification failed", "err", err)
	}

	api.Success(w, response, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	history, err := h.Service.History(r.Context(), userID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to list progression history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Service.Tracks(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "track_list_failed", "failed to list career tracks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tracks, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "trackID")

	positions, err := h.Service.TrackPositions(r.Context(), trackID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list track positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.Service.Levels(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "level_list_failed", "failed to list salary levels", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, levels, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Service.Rules(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_list_failed", "failed to list progression rules", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rules, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failLookup(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, career.ErrUserNotFound),
		errors.Is(err, career.ErrPositionNotFound),
		errors.Is(err, career.ErrLevelNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, middleware.GetRequestID(r.Context()))
	}
}
