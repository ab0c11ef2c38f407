// Package metrics exports scan processing counters to Prometheus. ScanMetrics is a
// ports.StateObserver: the scan handler reports every processed scan to it.
package metrics

import (
	"context"

	"picking/internal/core/domain/model/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanMetrics holds the scan counters.
//
// Metrics:
//   - picking_scans_total{outcome} - processed scans by outcome
//   - picking_rollovers_total - documents validated because they were full
//   - picking_document_lines - line count of the document after each scan
type ScanMetrics struct {
	ScansTotal     *prometheus.CounterVec
	RolloversTotal prometheus.Counter
	DocumentLines  prometheus.Histogram
}

// NewScanMetrics registers the metrics with reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func NewScanMetrics(reg prometheus.Registerer) *ScanMetrics {
	factory := promauto.With(reg)
	return &ScanMetrics{
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picking_scans_total",
				Help: "Total number of processed scans",
			},
			[]string{"outcome"}, // handled, rejected, rolled_over, failed
		),
		RolloversTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "picking_rollovers_total",
			Help: "Total number of full documents validated and replaced by a successor",
		}),
		DocumentLines: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "picking_document_lines",
			Help:    "Number of lines of the scanned document after each scan",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

func (m *ScanMetrics) StateChanged(_ context.Context, snapshot session.Snapshot) {
	m.ScansTotal.WithLabelValues(string(snapshot.Outcome)).Inc()
	if snapshot.Outcome == session.OutcomeRolledOver {
		m.RolloversTotal.Inc()
	}
	m.DocumentLines.Observe(float64(snapshot.LineCount))
}
