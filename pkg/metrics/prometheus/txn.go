// Package prometheus implements the txfs metrics interfaces with Prometheus
// collectors. Importing this package (a blank import suffices) registers the
// implementation with pkg/metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/txfs/pkg/metrics"
	"github.com/marmos91/txfs/pkg/txn"
)

var (
	commitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txfs_commits_total",
		Help: "Total number of unit-of-work commits by outcome.",
	}, []string{"outcome"})

	commitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "txfs_commit_duration_seconds",
		Help:    "Duration of unit-of-work commits including rollback time.",
		Buckets: prometheus.DefBuckets,
	})

	committedOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txfs_committed_operations_total",
		Help: "Operations applied by successful commits, by kind.",
	}, []string{"kind"})

	rollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txfs_rollbacks_total",
		Help: "Total number of rollbacks executed after failed commits.",
	})

	compensatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txfs_compensated_entries_total",
		Help: "Entries successfully restored to their pre-commit state by rollback.",
	})

	compensationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txfs_compensation_failures_total",
		Help: "Compensating operations that failed during rollback, leaving backend state for manual repair.",
	})
)

// txnMetrics implements txn.Metrics on the package-level collectors.
type txnMetrics struct{}

func (txnMetrics) RecordCommit(creates, deletes int, duration time.Duration, err error) {
	commitDuration.Observe(duration.Seconds())
	if err != nil {
		commitsTotal.WithLabelValues("failure").Inc()
		return
	}
	commitsTotal.WithLabelValues("success").Inc()
	committedOps.WithLabelValues("create").Add(float64(creates))
	committedOps.WithLabelValues("delete").Add(float64(deletes))
}

func (txnMetrics) RecordRollback(compensated, failed int) {
	rollbacksTotal.Inc()
	compensatedTotal.Add(float64(compensated))
	compensationFailures.Add(float64(failed))
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	metrics.RegisterTxnMetricsConstructor(func() txn.Metrics {
		return txnMetrics{}
	})
}
