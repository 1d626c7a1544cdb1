package rowsource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
)

// HTTPSource loads a CSV export from a URL, for registrars that publish the
// draw lists instead of distributing files.
type HTTPSource struct {
	name   string
	url    string
	client *RateLimitedHTTPClient
}

// NewHTTPSource creates a source for the given CSV URL.
func NewHTTPSource(rawURL string, client *RateLimitedHTTPClient) *HTTPSource {
	return &HTTPSource{
		name:   sourceNameFromURL(rawURL),
		url:    rawURL,
		client: client,
	}
}

// Name returns the URL's file name, or the full URL when it has none.
func (s *HTTPSource) Name() string {
	return s.name
}

// Load fetches and parses the CSV body.
func (s *HTTPSource) Load(ctx context.Context) (*Table, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, NewSourceError(s.name, ErrCodeHTTP, "request failed for "+s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewSourceError(s.name, ErrCodeNotFound, "no export at "+s.url, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(s.name, ErrCodeHTTP,
			fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, s.url), nil)
	}

	table, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, NewSourceError(s.name, ErrCodeParse, "failed to parse CSV body", err)
	}
	return table, nil
}

func sourceNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if base := path.Base(parsed.Path); base != "." && base != "/" && base != "" {
		return base
	}
	return rawURL
}
