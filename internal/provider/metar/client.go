// Package metar probes the aviationweather.gov METAR API for live-weather
// availability.
package metar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://aviationweather.gov"
	defaultTimeout = 10 * time.Second
)

// Client answers one question per ident: does the provider publish METAR data
// for it. A non-empty result set means yes.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	logger      *slog.Logger
}

// Options configures the client.
type Options struct {
	BaseURL string // override for tests; defaults to https://aviationweather.gov
	Logger  *slog.Logger
}

// New creates a METAR client. aviationweather.gov is unauthenticated, so the
// limiter stays conservative at 2 requests per second.
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
		baseURL:     baseURL,
		logger:      opts.Logger,
	}
}

// MetarAvailable reports whether the provider returns any METAR records for
// the ident.
func (c *Client) MetarAvailable(ctx context.Context, ident string) (bool, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("ids", ident)
	params.Set("format", "json")
	reqURL := c.baseURL + "/api/data/metar?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("metar request", "ident", ident)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("metar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("metar failed: status %d", resp.StatusCode)
	}

	var result any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("parse response: %w", err)
	}

	switch v := result.(type) {
	case []any:
		return len(v) > 0, nil
	case map[string]any:
		return len(v) > 0, nil
	default:
		return false, nil
	}
}
