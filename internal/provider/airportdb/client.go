// Package airportdb provides a rate-limited client for the airportdb.io
// airport details API.
package airportdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://airportdb.io"
	defaultTimeout = 10 * time.Second
)

// Sentinel errors returned by the client.
var (
	// ErrNotConfigured means no API key is set; the client never makes a
	// request in that state.
	ErrNotConfigured = errors.New("airportdb: api key not configured")
	// ErrNotFound means the provider has no record for the ident.
	ErrNotFound = errors.New("airportdb: airport not found")
	// ErrRateLimited means the provider rejected the request with 429.
	ErrRateLimited = errors.New("airportdb: rate limited")
)

// Client calls the airportdb.io details endpoint. All failures surface as
// errors; the enrichment engine decides what a failure means.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	logger      *slog.Logger
}

// Options configures the client.
type Options struct {
	APIKey  string
	BaseURL string // override for tests; defaults to https://airportdb.io
	Logger  *slog.Logger
}

// New creates an airportdb client. Rate limited to 2 requests per second with
// a small burst, which keeps a full Western-Europe pass well under the
// provider's quota.
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
		apiKey:      opts.APIKey,
		logger:      opts.Logger,
	}
}

// Details fetches the enrichment payload for an airport ident. The payload is
// the decoded JSON object as-is; callers own the merge semantics.
func (c *Client) Details(ctx context.Context, ident string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	reqURL := c.baseURL + "/api/v1/airport/" + url.PathEscape(ident)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	c.logger.Debug("airportdb request", "ident", ident)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("details request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("details failed: status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("airportdb response", "ident", ident, "fields", len(payload))
	return payload, nil
}
