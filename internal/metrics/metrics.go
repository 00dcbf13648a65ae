// Package metrics exposes the Prometheus registry the orchestrator and
// store report into, in the register/observe style
// minis/50-mini-service-all-features/internal/middleware/metrics.go uses
// against its own internal/metrics.Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	BlocksProcessed   prometheus.Counter
	RowsInserted      *prometheus.CounterVec
	BatchInsertSeconds *prometheus.HistogramVec
	LineageCacheSize  prometheus.Gauge
	LineageCacheMiss  prometheus.Counter
	RerunQueueDepth   prometheus.Gauge
}

// New registers every metric against the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		BlocksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "indexer_blocks_processed_total",
			Help: "Number of blocks fully processed.",
		}),
		RowsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_rows_inserted_total",
			Help: "Number of rows inserted, per table.",
		}, []string{"table"}),
		BatchInsertSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indexer_batch_insert_seconds",
			Help:    "Batched INSERT latency, per table.",
			Buckets: prometheus.DefBuckets,
		}, []string{"table"}),
		LineageCacheSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "indexer_lineage_cache_size",
			Help: "Current number of entries in the lineage cache.",
		}),
		LineageCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "indexer_lineage_cache_misses_total",
			Help: "Number of lineage lookups that missed the cache and fell back to the database.",
		}),
		RerunQueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "indexer_rerun_queue_depth",
			Help: "Number of blocks recorded in _blocks_to_rerun since process start.",
		}),
	}
}

// Handler serves the registered metrics over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
