package presence

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"gatelog/internal/domain/archive"
	"gatelog/internal/domain/retention"
	"gatelog/internal/platform/clock"
	"gatelog/internal/platform/metrics"
)

// Service is the presence ledger: entry/exit intervals per person per day,
// rotated into an archived report once the oldest retained day crosses the
// retention window. The mutex serializes every mutation against the archival
// sequence, keeping the single-open-interval invariant and preventing a
// double rotation from concurrent taps.
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

// Tap resolves a badge scan into an entry or an exit. A person with no
// interval today, or whose latest interval is already closed, opens a new
// one; an open interval is closed. A tap after a closed interval therefore
// starts a second session on the same day.
func (s *Service) Tap(ctx context.Context, personName string, valid bool) (TapKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := clock.Day(s.clock.Now())
	current, err := s.store.FindByDay(ctx, personName, today)
	switch {
	case errors.Is(err, ErrNotFound):
		return TapEntry, s.recordEntry(ctx, personName, valid)
	case err != nil:
		return "", err
	case current.Open():
		return TapExit, s.recordExit(ctx, personName, valid)
	default:
		return TapEntry, s.recordEntry(ctx, personName, valid)
	}
}

// RecordEntry opens a new interval for the person today.
func (s *Service) RecordEntry(ctx context.Context, personName string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordEntry(ctx, personName, valid)
}

// RecordExit closes the person's open interval for today. With nothing open
// it returns ErrNoOpenEntry. After a successful close the retention window is
// checked against the ledger's oldest day and an archival runs when due.
func (s *Service) RecordExit(ctx context.Context, personName string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordExit(ctx, personName, valid)
}

func (s *Service) recordEntry(ctx context.Context, personName string, valid bool) error {
	now := s.clock.Now()
	rec := Record{
		PersonName: personName,
		Day:        clock.Day(now),
		EnteredAt:  now,
		EntryValid: valid,
	}
	if err := s.store.InsertEntry(ctx, rec); err != nil {
		return err
	}
	s.metrics.IncrementTap(string(archive.KindPresence))
	return nil
}

func (s *Service) recordExit(ctx context.Context, personName string, valid bool) error {
	now := s.clock.Now()
	affected, err := s.store.CloseEntry(ctx, personName, clock.Day(now), now, valid)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoOpenEntry
	}
	s.metrics.IncrementTap(string(archive.KindPresence))

	s.archiveIfDue(ctx)
	return nil
}

// FindToday returns the person's latest interval for today, open or closed.
func (s *Service) FindToday(ctx context.Context, personName string) (Record, error) {
	rec, err := s.store.FindByDay(ctx, personName, clock.Day(s.clock.Now()))
	if err != nil {
		return Record{}, err
	}
	return rec.Display(), nil
}

// ListAll returns every retained interval, newest day first.
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

// GenerateReport archives and purges the ledger regardless of the retention
// window. An empty ledger is a no-op.
func (s *Service) GenerateReport(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runArchival(ctx)
}

// ListReports enumerates previously archived presence reports.
func (s *Service) ListReports() ([]archive.Report, error) {
	return s.catalog.List(archive.KindPresence)
}

func (s *Service) archiveIfDue(ctx context.Context) {
	oldest, found, err := s.store.OldestDate(ctx)
	if err != nil {
		slog.Warn("presence ledger oldest-record read failed, skipping archival check", "err", err)
		return
	}
	if !s.monitor.Due(oldest, found) {
		return
	}
	if err := s.runArchival(ctx); err != nil {
		s.metrics.IncrementArchivalFailure(string(archive.KindPresence))
		slog.Error("presence ledger archival failed, ledger left intact", "err", err)
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
		Title:   "Presence history",
		Columns: []string{"Name", "Date", "Entry", "Entry valid", "Exit", "Exit valid"},
		Newest:  records[0].Day,
		Oldest:  records[len(records)-1].Day,
	}
	for _, rec := range records {
		rec = rec.Display()
		exitValid := ""
		if rec.ExitValid != nil {
			exitValid = validity(*rec.ExitValid)
		}
		snap.Rows = append(snap.Rows, []string{
			rec.PersonName, rec.Date, rec.EntryTime, validity(rec.EntryValid), rec.ExitTime, exitValid,
		})
	}

	if err := s.pipeline.Run(ctx, archive.KindPresence, snap, s.store.DeleteAll); err != nil {
		return err
	}
	s.metrics.IncrementArchival(string(archive.KindPresence))
	return nil
}

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
