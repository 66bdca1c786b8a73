package metrics

import (
	"github.com/marmos91/txfs/pkg/blob"
)

// NewStoreMetrics returns a Prometheus-backed blob.StoreMetrics instance, or
// nil when metrics are disabled or no implementation is registered. A nil
// return is safe to pass to blob.NewInstrumented.
func NewStoreMetrics() blob.StoreMetrics {
	if !IsEnabled() || newPrometheusStoreMetrics == nil {
		return nil
	}
	return newPrometheusStoreMetrics()
}

var newPrometheusStoreMetrics func() blob.StoreMetrics

// RegisterStoreMetricsConstructor registers the Prometheus store metrics
// constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterStoreMetricsConstructor(constructor func() blob.StoreMetrics) {
	newPrometheusStoreMetrics = constructor
}
