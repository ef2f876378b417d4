// Package metrics provides observability for the assessment module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the assessment module.
type Metrics struct {
	// Source fetch latencies by source and outcome kind.
	SourceLatency *prometheus.HistogramVec

	// Assessment outcomes by completeness and tier.
	Outcomes *prometheus.CounterVec

	// Overall assessment latency including fan-out and scoring.
	AssessLatency prometheus.Histogram
}

// New creates a Metrics instance with all assessment metrics registered.
func New() *Metrics {
	return &Metrics{
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assay_source_fetch_duration_seconds",
			Help:    "Duration of source fetch operations by source and outcome",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "status"}),

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "assay_assessments_total",
			Help: "Total assessment outcomes by completeness and tier",
		}, []string{"completeness", "tier"}),

		AssessLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "assay_assessment_duration_seconds",
			Help:    "Duration of full assessments including fan-out and scoring",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// ObserveSourceLatency records the duration of one source fetch.
func (m *Metrics) ObserveSourceLatency(source, status string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source, status).Observe(d.Seconds())
	}
}

// IncrementOutcome records an assessment outcome.
func (m *Metrics) IncrementOutcome(completeness, tier string) {
	if m != nil {
		m.Outcomes.WithLabelValues(completeness, tier).Inc()
	}
}

// ObserveAssessLatency records the total assessment duration.
func (m *Metrics) ObserveAssessLatency(d time.Duration) {
	if m != nil {
		m.AssessLatency.Observe(d.Seconds())
	}
}
