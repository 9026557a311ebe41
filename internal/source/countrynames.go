package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultNamesURL is the country-code to display-name mapping.
const DefaultNamesURL = "https://country.io/names.json"

// Names maps ISO country codes to display names.
type Names map[string]string

// DisplayName returns the display name for a code, falling back to the bare
// code when unknown.
func (n Names) DisplayName(code string) string {
	if name, ok := n[code]; ok {
		return name
	}
	return code
}

// CountryNames fetches the code → name mapping. A failure here degrades
// display names to bare codes; it never fails a run.
type CountryNames struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewCountryNames creates a lookup client for the given URL.
func NewCountryNames(url string, logger *slog.Logger) *CountryNames {
	if url == "" {
		url = DefaultNamesURL
	}
	return &CountryNames{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url:    url,
		logger: logger,
	}
}

// Fetch downloads the mapping.
func (c *CountryNames) Fetch(ctx context.Context) (Names, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch country names: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch country names: status %d", resp.StatusCode)
	}

	var names Names
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("parse country names: %w", err)
	}

	c.logger.Info("country names loaded", "count", len(names))
	return names, nil
}
