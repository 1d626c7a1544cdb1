package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordEstimationRun(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		outcome string
	}{
		{
			name:    "successful run",
			outcome: OutcomeSuccess,
		},
		{
			name:    "target not found",
			outcome: OutcomeTargetNotFound,
		},
		{
			name:    "no dataset loaded",
			outcome: OutcomeNoDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordEstimationRun(tt.outcome, 0.002)
			})
		})
	}
}

func TestRecordProbability(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		percent int
	}{
		{
			name:    "zero probability",
			percent: 0,
		},
		{
			name:    "middle probability",
			percent: 50,
		},
		{
			name:    "certain allocation",
			percent: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordProbability(tt.percent)
			})
		})
	}
}

func TestUpdateDatasetGauges(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateDatasetGauges(1200, 14)
	})
}

func TestLoadMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSourceLoad("UpperclassTimeOrder2025.csv", 1200, 3)
	})

	assert.NotPanics(t, func() {
		RecordSourceFailure("AvailableRoomsList2025.csv")
	})

	assert.NotPanics(t, func() {
		RecordAnomaly(AnomalyRowDropped)
	})

	assert.NotPanics(t, func() {
		RecordDatasetRefresh("success")
	})

	assert.NotPanics(t, func() {
		UpdateLastRefresh(float64(time.Now().Unix()))
	})
}

func TestServerMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCacheHit()
	})

	assert.NotPanics(t, func() {
		RecordCacheMiss()
	})

	assert.NotPanics(t, func() {
		RecordSnapshotPublish("success")
	})

	assert.NotPanics(t, func() {
		UpdateWebsocketClients(3)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordEstimationRun(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordEstimationRun(OutcomeSuccess, 0.002)
	}
}

func BenchmarkRecordAnomaly(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordAnomaly(AnomalyRowDropped)
	}
}
