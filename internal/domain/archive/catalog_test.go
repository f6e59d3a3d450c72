package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogListMissingDir(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "nowhere"))

	reports, err := catalog.List(KindAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(reports))
	}
}

func TestCatalogListReports(t *testing.T) {
	dir := t.TempDir()
	kindDir := filepath.Join(dir, "presence")
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"presence_2025-01-01_to_2025-01-31.pdf", "presence_2025-02-01_to_2025-02-28.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(kindDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	reports, err := NewCatalog(dir).List(KindPresence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 pdf reports, got %d", len(reports))
	}
	if reports[0].FileName != "presence_2025-01-01_to_2025-01-31.pdf" {
		t.Fatalf("unexpected first report %q", reports[0].FileName)
	}
	if reports[0].Route != "/reports/archive/presence/presence_2025-01-01_to_2025-01-31.pdf" {
		t.Fatalf("unexpected route %q", reports[0].Route)
	}
}

func TestCatalogFilePath(t *testing.T) {
	dir := t.TempDir()
	kindDir := filepath.Join(dir, "access")
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(kindDir, "report.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	catalog := NewCatalog(dir)

	if _, ok := catalog.FilePath(KindAccess, "report.pdf"); !ok {
		t.Fatal("expected existing report to resolve")
	}
	if _, ok := catalog.FilePath(KindAccess, "missing.pdf"); ok {
		t.Fatal("missing report must not resolve")
	}
	if _, ok := catalog.FilePath(KindAccess, "../access/report.pdf"); ok {
		t.Fatal("path traversal must not resolve")
	}
	if _, ok := catalog.FilePath(KindAccess, "report.txt"); ok {
		t.Fatal("non-pdf name must not resolve")
	}
}
