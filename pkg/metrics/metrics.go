// Package metrics defines the Prometheus metric collectors used by the
// aligner and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the aligner.
type Metrics struct {
	DocumentsReadTotal *prometheus.CounterVec
	TransformDuration  prometheus.Histogram
	QueueDepth         prometheus.Gauge
	PairsScoredTotal   prometheus.Counter
	HitsTotal          prometheus.Counter
	DegenerateTotal    prometheus.Counter
	ScoreLatency       prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		DocumentsReadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docalign_documents_read_total",
				Help: "Total documents read by corpus side (reference, candidate).",
			},
			[]string{"side"},
		),
		TransformDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docalign_transform_duration_seconds",
				Help:    "TF-IDF transform latency per document in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docalign_queue_depth",
				Help: "Number of candidate documents buffered in the work queue.",
			},
		),
		PairsScoredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docalign_pairs_scored_total",
				Help: "Total (reference, candidate) pairs scored.",
			},
		),
		HitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docalign_hits_total",
				Help: "Total pairs whose score met the threshold.",
			},
		),
		DegenerateTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docalign_degenerate_documents_total",
				Help: "Documents rejected for an empty vocabulary or word vector.",
			},
		),
		ScoreLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docalign_candidate_scoring_seconds",
				Help:    "Time to score one candidate against the full reference corpus.",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
			},
		),
	}

	prometheus.MustRegister(
		m.DocumentsReadTotal,
		m.TransformDuration,
		m.QueueDepth,
		m.PairsScoredTotal,
		m.HitsTotal,
		m.DegenerateTotal,
		m.ScoreLatency,
	)

	return m
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
