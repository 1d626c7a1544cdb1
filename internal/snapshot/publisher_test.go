package snapshot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/models"
)

func publisherConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Snapshot.PublishEnabled = true
	cfg.Snapshot.PublishURL = url
	cfg.Snapshot.PublishToken = "secret-token"
	cfg.Snapshot.PublishTimeoutSeconds = 5
	return cfg
}

func TestPublisherPostsResult(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotType   string
		gotBody   models.EstimationResult
	)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	publisher := NewPublisher(publisherConfig(ts.URL), quietLogger())
	defer publisher.Close()

	result := sampleResult()
	require.NoError(t, publisher.Publish(context.Background(), result))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, result.RunID, gotBody.RunID)
	assert.Equal(t, result.Probability, gotBody.Probability)
}

func TestPublisherRejectedByEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	publisher := NewPublisher(publisherConfig(ts.URL), quietLogger())
	defer publisher.Close()

	err := publisher.Publish(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPublisherRequiresURL(t *testing.T) {
	publisher := NewPublisher(publisherConfig(""), quietLogger())
	defer publisher.Close()

	err := publisher.Publish(context.Background(), sampleResult())
	assert.Error(t, err)
}
