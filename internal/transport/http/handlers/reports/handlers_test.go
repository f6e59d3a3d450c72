package reportshandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"gatelog/internal/domain/archive"
)

func newTestRouter(t *testing.T, dir string) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	NewHandler(archive.NewCatalog(dir)).RegisterRoutes(router)
	return router
}

func TestListReportsEmptyCatalog(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/reports/archive/access", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Success bool             `json:"success"`
		Data    []archive.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(envelope.Data))
	}
}

func TestListReportsInvalidKind(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/reports/archive/payroll", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServeReport(t *testing.T) {
	dir := t.TempDir()
	kindDir := filepath.Join(dir, "presence")
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(kindDir, "report.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	router := newTestRouter(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/reports/archive/presence/report.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", rec.Header().Get("Content-Type"))
	}

	req = httptest.NewRequest(http.MethodGet, "/reports/archive/presence/missing.pdf", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing report, got %d", rec.Code)
	}
}
