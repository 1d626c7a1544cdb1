// Package metrics provides the centralized Prometheus metrics registry for
// the draw estimator.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Outcome labels for estimation runs.
const (
	OutcomeSuccess        = "success"
	OutcomeTargetNotFound = "target_not_found"
	OutcomeNoDataset      = "no_dataset"
	OutcomeError          = "error"
)

// Counter metrics
var (
	EstimationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_odds",
		Name:      "estimation_runs_total",
		Help:      "Total number of estimation runs by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	PrimaryPoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "draw_odds",
		Name:      "primary_pool_size",
		Help:      "Number of ranked participants in the loaded primary pool",
	})
	ScarceSpotsAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "draw_odds",
		Name:      "scarce_spots_available",
		Help:      "Count of scarce-type rooms in the loaded dataset",
	})
)

// Histogram metrics
var (
	EstimationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "draw_odds",
		Name:      "estimation_duration_seconds",
		Help:      "Duration of estimation runs in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	ProbabilityEstimates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "draw_odds",
		Name:      "probability_estimates_percent",
		Help:      "Distribution of produced probability percentages",
		Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register estimation metrics
		registry.MustRegister(EstimationRunsTotal)
		registry.MustRegister(PrimaryPoolSize)
		registry.MustRegister(ScarceSpotsAvailable)
		registry.MustRegister(EstimationDuration)
		registry.MustRegister(ProbabilityEstimates)

		// Register dataset load metrics
		registry.MustRegister(SourceRecordsLoaded)
		registry.MustRegister(SourceRecordsDropped)
		registry.MustRegister(SourceFailuresTotal)
		registry.MustRegister(AnomaliesTotal)
		registry.MustRegister(DatasetRefreshTotal)
		registry.MustRegister(DatasetLastRefresh)

		// Register server metrics
		registry.MustRegister(EstimateCacheHitsTotal)
		registry.MustRegister(EstimateCacheMissesTotal)
		registry.MustRegister(SnapshotPublishTotal)
		registry.MustRegister(WebsocketClients)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEstimationRun records one estimation run and its duration.
func RecordEstimationRun(outcome string, durationSeconds float64) {
	EstimationRunsTotal.WithLabelValues(outcome).Inc()
	EstimationDuration.Observe(durationSeconds)
}

// RecordProbability records a produced probability percentage.
func RecordProbability(percent int) {
	ProbabilityEstimates.Observe(float64(percent))
}

// UpdateDatasetGauges updates the pool size and scarce spot gauges after a
// dataset load.
func UpdateDatasetGauges(poolSize, scarceSpots int) {
	PrimaryPoolSize.Set(float64(poolSize))
	ScarceSpotsAvailable.Set(float64(scarceSpots))
}
