package reportshandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentos/internal/domain/auth"
	"talentos/internal/domain/reports"
	"talentos/internal/platform/jobs"
	"talentos/internal/transport/http/api"
	"talentos/internal/transport/http/middleware"
	"talentos/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
	Jobs    *jobs.Service
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore, runner *jobs.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Jobs: runner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/salary-overview", h.handleSalaryOverview)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/nine-box", h.handleNineBox)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/progressions", h.handleProgressionSummary)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Post("/progressions/{historyID}/letter", h.handleProgressionLetter)
	})
}

func (h *Handler) handleSalaryOverview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.SalaryOverview(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build salary overview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNineBox(w http.ResponseWriter, r *http.Request) {
	cells, err := h.Service.NineBoxDistribution(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build nine-box distribution", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cells, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgressionSummary(w http.ResponseWriter, r *http.Request) {
	since := time.Now().AddDate(-1, 0, 0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_since", "since must be a date in YYYY-MM-DD format", middleware.GetRequestID(r.Context()))
			return
		}
		since = parsed
	}

	summary, err := h.Service.ProgressionSummary(r.Context(), since)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build progression summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgressionLetter(w http.ResponseWriter, r *http.Request) {
	historyID := chi.URLParam(r, "historyID")

	result, err := h.Jobs.RunNow(r.Context(), jobs.JobLetterRender, func(ctx context.Context) (any, error) {
		path, err := h.Service.GenerateProgressionLetterPDF(ctx, historyID)
		if err != nil {
			return nil, err
		}
		return map[string]string{"path": path}, nil
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to generate progression letter", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}
