package archive

import (
	"context"
	"fmt"
	"log/slog"
)

// Renderer turns a ledger snapshot into a report document.
type Renderer interface {
	Render(snap Snapshot) ([]byte, error)
}

// ReportStore persists a rendered report under a kind's catalog directory.
type ReportStore interface {
	Save(kind Kind, fileName string, doc []byte) error
}

// Pipeline performs the archive-then-purge rotation of a ledger. The ordering
// is the correctness invariant: the purge runs only after the report has been
// rendered and persisted. A render or persist failure leaves the ledger
// untouched; the rotation is retried on the next triggering write.
type Pipeline struct {
	renderer Renderer
	reports  ReportStore
}

func NewPipeline(renderer Renderer, reports ReportStore) *Pipeline {
	return &Pipeline{renderer: renderer, reports: reports}
}

// Run archives the snapshot and then purges the ledger via the supplied
// callback. An empty snapshot is a no-op: nothing is rendered, persisted or
// purged.
func (p *Pipeline) Run(ctx context.Context, kind Kind, snap Snapshot, purge func(context.Context) error) error {
	if len(snap.Rows) == 0 {
		return nil
	}

	doc, err := p.renderer.Render(snap)
	if err != nil {
		return fmt.Errorf("render %s report: %w", kind, err)
	}

	fileName := FileName(kind, snap.Oldest, snap.Newest)
	if err := p.reports.Save(kind, fileName, doc); err != nil {
		return fmt.Errorf("persist %s report %s: %w", kind, fileName, err)
	}

	if err := purge(ctx); err != nil {
		return fmt.Errorf("purge %s ledger after archival: %w", kind, err)
	}

	slog.Info("ledger archived", "ledger", kind, "report", fileName, "rows", len(snap.Rows))
	return nil
}
