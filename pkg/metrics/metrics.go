// Package metrics provides optional metrics collection for txfs.
//
// Metrics are disabled by default and enabled explicitly at startup. When
// disabled, constructors return nil and instrumented code paths carry zero
// overhead (the txn package treats a nil Metrics as a no-op).
//
// The Prometheus implementation lives in pkg/metrics/prometheus and registers
// itself through RegisterTxnMetricsConstructor during package init; importing
// that package (blank import is enough) wires it up. The indirection keeps
// this package free of a prometheus dependency for library consumers that
// never enable metrics.
package metrics

import (
	"sync/atomic"

	"github.com/marmos91/txfs/pkg/txn"
)

var enabled atomic.Bool

// Init enables metrics collection. Call before constructing units of work
// that should be instrumented.
func Init() {
	enabled.Store(true)
}

// IsEnabled reports whether metrics collection is enabled.
func IsEnabled() bool {
	return enabled.Load()
}

// NewTxnMetrics returns a Prometheus-backed txn.Metrics instance, or nil
// when metrics are disabled or no implementation is registered. A nil return
// is safe to pass to txn.NewWithMetrics.
func NewTxnMetrics() txn.Metrics {
	if !IsEnabled() || newPrometheusTxnMetrics == nil {
		return nil
	}
	return newPrometheusTxnMetrics()
}

var newPrometheusTxnMetrics func() txn.Metrics

// RegisterTxnMetricsConstructor registers the Prometheus metrics constructor.
// Called by pkg/metrics/prometheus during package initialization.
func RegisterTxnMetricsConstructor(constructor func() txn.Metrics) {
	newPrometheusTxnMetrics = constructor
}
