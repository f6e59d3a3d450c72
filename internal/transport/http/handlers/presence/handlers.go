package presencehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatelog/internal/domain/auth"
	"gatelog/internal/domain/members"
	"gatelog/internal/domain/presence"
	"gatelog/internal/transport/http/api"
	"gatelog/internal/transport/http/middleware"
)

type Handler struct {
	Ledger  *presence.Service
	Members *members.Service
}

func NewHandler(ledger *presence.Service, memberSvc *members.Service) *Handler {
	return &Handler{Ledger: ledger, Members: memberSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/taps/presence", h.handleTap)
	r.Route("/presence", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/today/{name}", h.handleFindToday)
		r.Get("/reports", h.handleListReports)
		r.Post("/reports", h.handleGenerateReport)
	})
}

type tapRequest struct {
	BadgeID string `json:"badgeId"`
	Valid   bool   `json:"valid"`
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

	kind, err := h.Ledger.Tap(r.Context(), member.Name, payload.Valid)
	if err != nil {
		slog.Error("presence tap failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not record tap", reqID)
		return
	}
	api.Created(w, map[string]any{"personName": member.Name, "tap": kind}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	records, err := h.Ledger.ListAll(r.Context())
	if err != nil {
		slog.Error("presence list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list presence log", reqID)
		return
	}
	if records == nil {
		records = []presence.Record{}
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleFindToday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")

	rec, err := h.Ledger.FindToday(r.Context(), name)
	if errors.Is(err, presence.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "no presence record for person today", reqID)
		return
	}
	if err != nil {
		slog.Error("presence lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not read presence log", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	reports, err := h.Ledger.ListReports()
	if err != nil {
		slog.Error("presence report listing failed", "err", err)
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
		slog.Error("presence report generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "could not generate report", reqID)
		return
	}
	api.Success(w, map[string]string{"result": "archived"}, reqID)
}
