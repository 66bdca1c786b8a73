package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/txfs/pkg/blob"
	"github.com/marmos91/txfs/pkg/metrics"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txfs_store_operations_total",
		Help: "Total number of storage backend operations by operation and status.",
	}, []string{"operation", "status"})

	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "txfs_store_operation_duration_milliseconds",
		Help: "Duration of storage backend operations in milliseconds.",
		Buckets: []float64{
			1,    // in-memory and local filesystem calls
			10,   // local database calls
			50,   // fast network calls
			100,  // typical object storage latency
			500,  // slow object storage calls
			1000, // 1s
			5000, // 5s, large payloads
		},
	}, []string{"operation"})

	storeBytesTransferred = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txfs_store_bytes_transferred_total",
		Help: "Total payload bytes moved through the storage backend.",
	}, []string{"operation"})
)

// storeMetrics implements blob.StoreMetrics on the package-level collectors.
type storeMetrics struct{}

func (storeMetrics) ObserveOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(operation, status).Inc()
	storeOperationDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}

func (storeMetrics) RecordBytes(operation string, bytes int64) {
	storeBytesTransferred.WithLabelValues(operation).Add(float64(bytes))
}

func init() {
	metrics.RegisterStoreMetricsConstructor(func() blob.StoreMetrics {
		return storeMetrics{}
	})
}
