// Package metrics defines dataset-loading metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Load counter vectors
var (
	SourceRecordsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "source_records_loaded_total",
		Help:      "Total records accepted from each tabular source",
	}, []string{"source"})

	SourceRecordsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "source_records_dropped_total",
		Help:      "Total rows dropped during normalization by source",
	}, []string{"source"})

	SourceFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "source_failures_total",
		Help:      "Total source load failures by source",
	}, []string{"source"})

	AnomaliesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "anomalies_total",
		Help:      "Total reported data anomalies by kind",
	}, []string{"kind"})

	DatasetRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "dataset_refresh_total",
		Help:      "Total dataset refresh attempts by status",
	}, []string{"status"})
)

// Load gauges
var (
	DatasetLastRefresh = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "draw_odds",
		Name:      "dataset_last_refresh_timestamp_seconds",
		Help:      "Unix time of the last successful dataset load",
	})
)

// Anomaly kind labels.
const (
	AnomalyRowDropped      = "row_dropped"
	AnomalySourceDegraded  = "source_degraded"
	AnomalyUnknownRoomType = "unknown_room_type"
	AnomalyZeroCapacity    = "zero_capacity"
	AnomalyClaimantSkipped = "claimant_skipped"
	AnomalyKeptWithoutID   = "kept_without_identity"
)

// RecordSourceLoad records one source's accepted and dropped row counts.
func RecordSourceLoad(source string, loaded, dropped int) {
	SourceRecordsLoaded.WithLabelValues(source).Add(float64(loaded))
	SourceRecordsDropped.WithLabelValues(source).Add(float64(dropped))
}

// RecordSourceFailure records a source that could not be loaded.
func RecordSourceFailure(source string) {
	SourceFailuresTotal.WithLabelValues(source).Inc()
}

// RecordAnomaly records one reported anomaly.
func RecordAnomaly(kind string) {
	AnomaliesTotal.WithLabelValues(kind).Inc()
}

// RecordDatasetRefresh records a refresh attempt.
// status should be one of: "success", "failure"
func RecordDatasetRefresh(status string) {
	DatasetRefreshTotal.WithLabelValues(status).Inc()
}

// UpdateLastRefresh marks the time of the last successful dataset load.
func UpdateLastRefresh(unixSeconds float64) {
	DatasetLastRefresh.Set(unixSeconds)
}
