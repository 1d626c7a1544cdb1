// Package metrics defines server and snapshot-sink metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Server counters
var (
	EstimateCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "estimate_cache_hits_total",
		Help:      "Total estimate cache hits",
	})

	EstimateCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "estimate_cache_misses_total",
		Help:      "Total estimate cache misses",
	})

	SnapshotPublishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "snapshot_publish_total",
		Help:      "Total snapshot publish attempts by status",
	}, []string{"status"})
)

// Server gauges
var (
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "draw_odds",
		Name:      "websocket_clients",
		Help:      "Number of connected snapshot stream clients",
	})
)

// RecordCacheHit records an estimate served from cache.
func RecordCacheHit() {
	EstimateCacheHitsTotal.Inc()
}

// RecordCacheMiss records an estimate that had to be computed.
func RecordCacheMiss() {
	EstimateCacheMissesTotal.Inc()
}

// RecordSnapshotPublish records a publish attempt.
// status should be one of: "success", "failure"
func RecordSnapshotPublish(status string) {
	SnapshotPublishTotal.WithLabelValues(status).Inc()
}

// UpdateWebsocketClients updates the connected client gauge.
func UpdateWebsocketClients(count float64) {
	WebsocketClients.Set(count)
}
