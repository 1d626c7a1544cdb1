package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/draw-odds/internal/models"
)

func cachedResult() *models.EstimationResult {
	return &models.EstimationResult{
		RunID:           uuid.New(),
		TargetFirstName: "Dana",
		TargetLastName:  "Diaz",
		Probability:     76,
	}
}

func TestEstimateCacheStoresAndReturns(t *testing.T) {
	cache := NewEstimateCache(time.Minute)

	result := cachedResult()
	cache.Set("Dana", "Diaz", result)

	got := cache.Get("Dana", "Diaz")
	require.NotNil(t, got)
	assert.Equal(t, result.RunID, got.RunID)

	assert.Nil(t, cache.Get("Someone", "Else"))
}

func TestEstimateCacheNormalizesKeys(t *testing.T) {
	cache := NewEstimateCache(time.Minute)

	result := cachedResult()
	cache.Set("Dana", "Diaz", result)

	tests := []struct {
		name  string
		first string
		last  string
	}{
		{"lowercase", "dana", "diaz"},
		{"uppercase", "DANA", "DIAZ"},
		{"padded", "  Dana  ", " Diaz "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.Get(tt.first, tt.last)
			require.NotNil(t, got)
			assert.Equal(t, result.RunID, got.RunID)
		})
	}
}

func TestEstimateCacheClear(t *testing.T) {
	cache := NewEstimateCache(time.Minute)

	cache.Set("Dana", "Diaz", cachedResult())
	cache.Set("Ben", "Bowen", cachedResult())
	require.Equal(t, 2, cache.ItemCount())

	cache.Clear()

	assert.Equal(t, 0, cache.ItemCount())
	assert.Nil(t, cache.Get("Dana", "Diaz"))
}

func TestEstimateCacheDefaultTTL(t *testing.T) {
	cache := NewEstimateCache(0)

	cache.Set("Dana", "Diaz", cachedResult())
	assert.NotNil(t, cache.Get("Dana", "Diaz"))
}
