package rowsource

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/config"
)

// Factory builds Sources from configured references. A reference is either
// an http(s) URL or a glob pattern resolved against the data directory.
type Factory struct {
	locator *Locator
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewFactory creates a source factory for the configured data directory.
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		locator: NewLocator(cfg.Sources.DataDir),
		client:  newClientFromConfig(cfg, logger),
		logger:  logger,
	}
}

func newClientFromConfig(cfg *config.Config, logger *logrus.Logger) *RateLimitedHTTPClient {
	clientCfg := DefaultHTTPClientConfig()
	if cfg.Sources.HTTPTimeoutSeconds > 0 {
		clientCfg.Timeout = cfg.HTTPTimeout()
	}
	if cfg.Sources.HTTPRetryMax > 0 {
		clientCfg.MaxRetries = cfg.Sources.HTTPRetryMax
	}
	if cfg.Sources.HTTPRateLimit > 0 {
		clientCfg.RateLimit = cfg.Sources.HTTPRateLimit
	}
	return NewRateLimitedHTTPClient("row-source", clientCfg, logger)
}

// New builds a Source for one configured reference.
func (f *Factory) New(reference string) (Source, error) {
	if IsURL(reference) {
		return NewHTTPSource(reference, f.client), nil
	}

	path, err := f.locator.Resolve(reference)
	if err != nil {
		return nil, err
	}
	f.logger.WithFields(logrus.Fields{
		"pattern": reference,
		"path":    path,
	}).Debug("Resolved source pattern")
	return NewFileSource(path), nil
}

// Close releases the shared HTTP client.
func (f *Factory) Close() error {
	return f.client.Close()
}

// IsURL reports whether the reference is an http(s) URL rather than a file
// pattern.
func IsURL(reference string) bool {
	return strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://")
}
