package snapshot

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/draw-odds/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleResult() *models.EstimationResult {
	return &models.EstimationResult{
		RunID:           uuid.New(),
		TargetFirstName: "Dana",
		TargetLastName:  "Diaz",
		DrawTime:        "4/2/24 10:15 AM",
		RawRank:         42,
		PoolSize:        380,
		InitialAhead:    41,
		TotalRemoved:    9,
		FilteredAhead:   32,
		AvailableSpots:  25,
		Probability:     76,
		GeneratedAt:     time.Now().UTC(),
	}
}

func TestFileWriterWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard", "latest.json")
	writer := NewFileWriter(path, quietLogger())

	result := sampleResult()
	require.NoError(t, writer.Write(result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.EstimationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.RunID, decoded.RunID)
	assert.Equal(t, result.Probability, decoded.Probability)
	assert.Equal(t, result.TargetFirstName, decoded.TargetFirstName)

	// No staging files should survive a successful write
	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".snapshot-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileWriterReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	writer := NewFileWriter(path, quietLogger())

	first := sampleResult()
	require.NoError(t, writer.Write(first))

	second := sampleResult()
	second.Probability = 12
	require.NoError(t, writer.Write(second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.EstimationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, second.RunID, decoded.RunID)
	assert.Equal(t, 12, decoded.Probability)
}

func TestFileWriterRequiresPath(t *testing.T) {
	writer := NewFileWriter("", quietLogger())
	err := writer.Write(sampleResult())
	assert.Error(t, err)
}
