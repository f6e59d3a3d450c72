package retention

import (
	"time"

	"gatelog/internal/platform/clock"
)

// Monitor decides whether a ledger's oldest retained record has crossed the
// retention window and the ledger is due for archival. It holds no state of
// its own: the age is recomputed from the ledger on every write, so the check
// always sees the true oldest record.
type Monitor struct {
	threshold int
	clock     clock.Clock
}

// New creates a monitor with the retention window in days.
func New(thresholdDays int, clk clock.Clock) *Monitor {
	return &Monitor{threshold: thresholdDays, clock: clk}
}

// Due reports whether the ledger must be archived before the next write.
// found is false when the ledger is empty; an empty ledger is never due.
// A zero oldest date means the read produced no usable value, which also
// must never trigger an archival.
func (m *Monitor) Due(oldest time.Time, found bool) bool {
	if !found || oldest.IsZero() {
		return false
	}
	return m.ageInDays(oldest) > m.threshold
}

// ageInDays counts calendar days between the oldest record's date and today.
// Each instant contributes its own calendar date; normalizing both to UTC
// midnights keeps the subtraction exact across timezones and DST shifts.
func (m *Monitor) ageInDays(oldest time.Time) int {
	now := m.clock.Now()
	oldestDay := time.Date(oldest.Year(), oldest.Month(), oldest.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(oldestDay).Hours() / 24)
}
