package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ImportsStaged    prometheus.Counter
	ImportsConfirmed prometheus.Counter
	LegsInserted     prometheus.Counter
	LegsSkipped      prometheus.Counter
	SwapBatches      *prometheus.CounterVec
	SwapResponses    *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ImportsStaged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_staged_total",
			Help:      "The total number of roster imports staged for review",
		}),
		ImportsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_confirmed_total",
			Help:      "The total number of roster imports confirmed",
		}),
		LegsInserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legs_inserted_total",
			Help:      "The total number of flight legs inserted by imports",
		}),
		LegsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legs_skipped_total",
			Help:      "The total number of duplicate flight legs skipped by imports",
		}),
		SwapBatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_batches_total",
			Help:      "The total number of swap batch submissions by outcome",
		}, []string{"outcome"}),
		SwapResponses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_responses_total",
			Help:      "The total number of swap request responses by decision",
		}, []string{"decision"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
