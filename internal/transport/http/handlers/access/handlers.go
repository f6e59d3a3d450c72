package accesshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatelog/internal/domain/access"
	"gatelog/internal/domain/auth"
	"gatelog/internal/domain/members"
	"gatelog/internal/transport/http/api"
	"gatelog/internal/transport/http/middleware"
)

type Handler struct {
	Ledger  *access.Service
	Members *members.Service
}

func NewHandler(ledger *access.Service, memberSvc *members.Service) *Handler {
	return &Handler{Ledger: ledger, Members: memberSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/taps/access", h.handleTap)
	r.Route("/access", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/latest", h.handleLatest)
		r.Get("/reports", h.handleListReports)
		r.Post("/reports", h.handleGenerateReport)
	})
}

type tapRequest struct {
	BadgeID string `json:"badgeId"`
	Granted bool   `json:"granted"`
}

func (h *Handler) handleTap(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload tapRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.BadgeID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_badge", "badgeId is required", reqID)
		return
	}

	member, err := h.Members.FindByBadge(r.Context(), payload.BadgeID)
	if errors.Is(err, members.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "unknown_badge", "badge is not enrolled", reqID)
		return
	}
	if err != nil {
		slog.Error("badge lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "badge lookup failed", reqID)
		return
	}

	if err := h.Ledger.Record(r.Context(), member.Name, payload.BadgeID, payload.Granted); err != nil {
		slog.Error("access tap record failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not record tap", reqID)
		return
	}
	api.Created(w, map[string]any{"personName": member.Name, "granted": payload.Granted}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	records, err := h.Ledger.ListAll(r.Context())
	if err != nil {
		slog.Error("access list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list access log", reqID)
		return
	}
	if records == nil {
		records = []access.Record{}
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	rec, err := h.Ledger.MostRecent(r.Context())
	if errors.Is(err, access.ErrNoRecords) {
		api.Fail(w, http.StatusNotFound, "not_found", "access log is empty", reqID)
		return
	}
	if err != nil {
		slog.Error("access latest failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not read access log", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	reports, err := h.Ledger.ListReports()
	if err != nil {
		slog.Error("access report listing failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list reports", reqID)
		return
	}
	api.Success(w, reports, reqID)
}

func (h *Handler) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	member, ok := middleware.GetMember(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !auth.CanManageMembers(member.Level) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	if err := h.Ledger.GenerateReport(r.Context()); err != nil {
		slog.Error("access report generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "could not generate report", reqID)
		return
	}
	api.Success(w, map[string]string{"result": "archived"}, reqID)
}
