// Package metrics defines the Prometheus collectors for an analysis run and
// writes them in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one termex process.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsAnalyzed prometheus.Counter
	DocumentsSkipped  prometheus.Counter
	DocumentsFailed   prometheus.Counter
	TermInstances     *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
	Cancellations     prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termex_documents_analyzed_total",
			Help: "Documents whose analysis completed.",
		}),
		DocumentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termex_documents_skipped_total",
			Help: "Documents left as-is because they were unchanged since the last run.",
		}),
		DocumentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termex_documents_failed_total",
			Help: "Documents that could not be loaded or stored.",
		}),
		TermInstances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "termex_term_instances_total",
			Help: "Term instances extracted, by analyzer.",
		}, []string{"analyzer"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "termex_document_analysis_seconds",
			Help:    "Time spent analyzing a single document.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termex_runs_cancelled_total",
			Help: "Corpus runs stopped by cancellation before every document was analyzed.",
		}),
	}

	m.registry.MustRegister(
		m.DocumentsAnalyzed,
		m.DocumentsSkipped,
		m.DocumentsFailed,
		m.TermInstances,
		m.AnalysisDuration,
		m.Cancellations,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
