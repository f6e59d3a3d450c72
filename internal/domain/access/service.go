package access

import (
	"context"
	"log/slog"
	"sync"

	"gatelog/internal/domain/archive"
	"gatelog/internal/domain/retention"
	"gatelog/internal/platform/clock"
	"gatelog/internal/platform/metrics"
)

// Service is the access ledger: an append-only log of door taps with
// automatic archival once the oldest retained record crosses the retention
// window. The mutex serializes the read-oldest / archive / insert sequence so
// two concurrent taps cannot both rotate the ledger.
type Service struct {
	store    Store
	clock    clock.Clock
	monitor  *retention.Monitor
	pipeline *archive.Pipeline
	catalog  *archive.Catalog
	metrics  *metrics.Metrics

	mu sync.Mutex
}

func NewService(store Store, clk clock.Clock, monitor *retention.Monitor, pipeline *archive.Pipeline, catalog *archive.Catalog, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		clock:    clk,
		monitor:  monitor,
		pipeline: pipeline,
		catalog:  catalog,
		metrics:  m,
	}
}

// Record appends one tap. If the ledger is due for rotation the archival runs
// first, so the new record always lands in an already-rotated ledger.
func (s *Service) Record(ctx context.Context, personName, badgeID string, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archiveIfDue(ctx)

	now := s.clock.Now()
	rec := Record{
		PersonName: personName,
		BadgeID:    badgeID,
		Granted:    granted,
		OccurredOn: clock.Day(now),
		OccurredAt: now,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return err
	}
	s.metrics.IncrementTap(string(archive.KindAccess))
	return nil
}

// ListAll returns every retained record, newest first, with display dates.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i] = records[i].Display()
	}
	return records, nil
}

// MostRecent returns the newest record or ErrNoRecords on an empty ledger.
func (s *Service) MostRecent(ctx context.Context) (Record, error) {
	rec, err := s.store.MostRecent(ctx)
	if err != nil {
		return Record{}, err
	}
	return rec.Display(), nil
}

// GenerateReport archives and purges the ledger regardless of the retention
// window. An empty ledger is a no-op.
func (s *Service) GenerateReport(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runArchival(ctx)
}

// ListReports enumerates previously archived access reports.
func (s *Service) ListReports() ([]archive.Report, error) {
	return s.catalog.List(archive.KindAccess)
}

// archiveIfDue checks the retention window and rotates the ledger when due.
// A failed oldest-record read fails safe: no archival, the tap still lands.
func (s *Service) archiveIfDue(ctx context.Context) {
	oldest, found, err := s.store.OldestDate(ctx)
	if err != nil {
		slog.Warn("access ledger oldest-record read failed, skipping archival check", "err", err)
		return
	}
	if !s.monitor.Due(oldest, found) {
		return
	}
	if err := s.runArchival(ctx); err != nil {
		s.metrics.IncrementArchivalFailure(string(archive.KindAccess))
		slog.Error("access ledger archival failed, ledger left intact", "err", err)
	}
}

func (s *Service) runArchival(ctx context.Context) error {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	snap := archive.Snapshot{
		Title:   "Access history",
		Columns: []string{"Name", "Badge", "Granted", "Date", "Time"},
		// ListAll is newest first, so the bounds are first and last rows.
		Newest: records[0].OccurredOn,
		Oldest: records[len(records)-1].OccurredOn,
	}
	for _, rec := range records {
		rec = rec.Display()
		granted := "denied"
		if rec.Granted {
			granted = "granted"
		}
		snap.Rows = append(snap.Rows, []string{rec.PersonName, rec.BadgeID, granted, rec.Date, rec.Time})
	}

	if err := s.pipeline.Run(ctx, archive.KindAccess, snap, s.store.DeleteAll); err != nil {
		return err
	}
	s.metrics.IncrementArchival(string(archive.KindAccess))
	return nil
}
