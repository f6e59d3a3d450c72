package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the tap and archival activity of both ledgers.
type Metrics struct {
	TapsTotal        *prometheus.CounterVec
	ArchivalsTotal   *prometheus.CounterVec
	ArchivalFailures *prometheus.CounterVec
}

// New creates and registers all ledger metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		TapsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatelog_taps_total",
			Help: "Total number of taps recorded, by ledger",
		}, []string{"ledger"}),
		ArchivalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatelog_archivals_total",
			Help: "Total number of completed archive-then-purge rotations, by ledger",
		}, []string{"ledger"}),
		ArchivalFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatelog_archival_failures_total",
			Help: "Total number of archival attempts aborted before purge, by ledger",
		}, []string{"ledger"}),
	}
}

// IncrementTap records one tap against a ledger.
func (m *Metrics) IncrementTap(ledger string) {
	if m == nil {
		return
	}
	m.TapsTotal.WithLabelValues(ledger).Inc()
}

// IncrementArchival records one successful rotation of a ledger.
func (m *Metrics) IncrementArchival(ledger string) {
	if m == nil {
		return
	}
	m.ArchivalsTotal.WithLabelValues(ledger).Inc()
}

// IncrementArchivalFailure records one aborted rotation of a ledger.
func (m *Metrics) IncrementArchivalFailure(ledger string) {
	if m == nil {
		return
	}
	m.ArchivalFailures.WithLabelValues(ledger).Inc()
}
