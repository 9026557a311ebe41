// Package source obtains the system's inputs: the airport-codes CSV feed and
// the country display-name mapping.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/airatlasapp/airatlas-server/internal/airport"
)

// DefaultFeedURL is the public airport-codes dataset.
const DefaultFeedURL = "https://raw.githubusercontent.com/datasets/airport-codes/main/data/airport-codes.csv"

const downloadTimeout = 30 * time.Second

// Feed downloads and decodes the source CSV. A feed failure is fatal for a
// run; there is nothing to process without it.
type Feed struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewFeed creates a feed reader for the given CSV URL.
func NewFeed(url string, logger *slog.Logger) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Feed{
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
		url:    url,
		logger: logger,
	}
}

// Download fetches and parses the feed, returning rows in file order.
func (f *Feed) Download(ctx context.Context) ([]airport.Row, error) {
	f.logger.Info("downloading airport feed", "url", f.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download feed: status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	var rows []airport.Row
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	f.logger.Info("airport feed downloaded", "rows", len(rows))
	return rows, nil
}
