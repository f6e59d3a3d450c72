package reportshandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatelog/internal/domain/archive"
	"gatelog/internal/transport/http/api"
	"gatelog/internal/transport/http/middleware"
)

// Handler serves the archived report catalog and the report files themselves
// under /reports/archive/<kind>/<file>.
type Handler struct {
	Catalog *archive.Catalog
}

func NewHandler(catalog *archive.Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/archive", func(r chi.Router) {
		r.Get("/{kind}", h.handleList)
		r.Get("/{kind}/{file}", h.handleServe)
	})
}

func ledgerKind(value string) (archive.Kind, bool) {
	switch archive.Kind(value) {
	case archive.KindAccess:
		return archive.KindAccess, true
	case archive.KindPresence:
		return archive.KindPresence, true
	}
	return "", false
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	kind, ok := ledgerKind(chi.URLParam(r, "kind"))
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "ledger kind must be access or presence", reqID)
		return
	}

	reports, err := h.Catalog.List(kind)
	if err != nil {
		slog.Error("report catalog listing failed", "kind", kind, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list reports", reqID)
		return
	}
	api.Success(w, reports, reqID)
}

func (h *Handler) handleServe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	kind, ok := ledgerKind(chi.URLParam(r, "kind"))
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "ledger kind must be access or presence", reqID)
		return
	}

	path, ok := h.Catalog.FilePath(kind, chi.URLParam(r, "file"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "report not found", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
