package pdihandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentos/internal/domain/audit"
	"talentos/internal/domain/auth"
	"talentos/internal/domain/notifications"
	"talentos/internal/domain/pdi"
	"talentos/internal/transport/http/api"
	"talentos/internal/transport/http/middleware"
	"talentos/internal/transport/http/shared"
)

type Handler struct {
	Service *pdi.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
}

func NewHandler(service *pdi.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pdi", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPDIWrite, h.Perms)).Post("/", h.handleCreatePlan)
		r.With(middleware.RequirePermission(auth.PermPDIRead, h.Perms)).Get("/{planID}", h.handleGetPlan)
		r.With(middleware.RequirePermission(auth.PermPDIRead, h.Perms)).Get("/employees/{employeeID}", h.handleListEmployeePlans)
		r.With(middleware.RequirePermission(auth.PermPDIRead, h.Perms)).Get("/employees/{employeeID}/active", h.handleActivePlan)
	})
}

func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		EmployeeID string     `json:"employeeId"`
		CycleID    string     `json:"cycleId"`
		Periodo    string     `json:"periodo"`
		Items      []pdi.Item `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	plan, err := h.Service.CreatePlan(r.Context(), payload.EmployeeID, payload.CycleID, payload.Periodo, user.UserID, payload.Items)
	if err != nil {
		if errors.Is(err, pdi.ErrInvalidItems) {
			api.Fail(w, http.StatusBadRequest, "invalid_items", "development plan items are invalid", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "pdi_create_failed", "failed to create development plan", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "pdi.plan.create", "development_plan", plan.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, plan); err != nil {
		slog.Warn("pdi audit failed", "err", err)
	}
	if err := h.Notify.Create(r.Context(), plan.EmployeeID, notifications.TypePDIAssigned, "Novo PDI", "Um novo plano de desenvolvimento individual foi atribuído a você."); err != nil {
		slog.Warn("pdi notification failed", "err", err)
	}

	api.Created(w, plan, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	plan, err := h.Service.Plan(r.Context(), planID)
	if err != nil {
		if errors.Is(err, pdi.ErrPlanNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "development plan not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "pdi_fetch_failed", "failed to load development plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plan, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployeePlans(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	plans, err := h.Service.PlansForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdi_list_failed", "failed to list development plans", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivePlan(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	plan, err := h.Service.ActivePlan(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, pdi.ErrPlanNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no active development plan", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "pdi_fetch_failed", "failed to load development plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plan, middleware.GetRequestID(r.Context()))
}
