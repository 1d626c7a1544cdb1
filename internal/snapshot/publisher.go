package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
	"github.com/yourusername/draw-odds/internal/rowsource"
)

// Publisher POSTs estimation results to a configured dashboard endpoint.
// Delivery failures are reported and counted but never abort a run.
type Publisher struct {
	url    string
	token  string
	client *rowsource.RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewPublisher creates a publisher from the snapshot configuration
func NewPublisher(cfg *config.Config, logger *logrus.Logger) *Publisher {
	if logger == nil {
		logger = logrus.New()
	}

	httpCfg := rowsource.DefaultHTTPClientConfig()
	if cfg.Snapshot.PublishTimeoutSeconds > 0 {
		httpCfg.Timeout = cfg.PublishTimeout()
	}
	if cfg.Snapshot.PublishRetryMax > 0 {
		httpCfg.MaxRetries = cfg.Snapshot.PublishRetryMax
	}
	if cfg.Snapshot.PublishRateLimit > 0 {
		httpCfg.RateLimit = cfg.Snapshot.PublishRateLimit
	}

	return &Publisher{
		url:    cfg.Snapshot.PublishURL,
		token:  cfg.Snapshot.PublishToken,
		client: rowsource.NewRateLimitedHTTPClient("snapshot-publisher", httpCfg, logger),
		logger: logger,
	}
}

// Publish sends one estimation result to the configured URL
func (p *Publisher) Publish(ctx context.Context, result *models.EstimationResult) error {
	if p.url == "" {
		return fmt.Errorf("publish URL is required")
	}

	body, err := json.Marshal(result)
	if err != nil {
		metrics.RecordSnapshotPublish("failure")
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		metrics.RecordSnapshotPublish("failure")
		return fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		metrics.RecordSnapshotPublish("failure")
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordSnapshotPublish("failure")
		return fmt.Errorf("publish endpoint returned status %d", resp.StatusCode)
	}

	metrics.RecordSnapshotPublish("success")
	p.logger.WithFields(logrus.Fields{
		"url":    p.url,
		"run_id": result.RunID,
	}).Debug("Snapshot published")

	return nil
}

// Close releases the underlying HTTP client resources
func (p *Publisher) Close() error {
	return p.client.Close()
}
