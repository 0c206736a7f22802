// Package opendata fetches CSV exports from the NYC Open Data portal.
package opendata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tiannaparris/nypd-shooting-report/internal/dataset"
)

// FetchError reports a failed download or an unparseable payload. Loading
// is a single attempt; callers treat any FetchError as fatal to the run.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client downloads a CSV export over HTTP and parses it into a table.
type Client struct {
	http   *resty.Client
	url    string
	logger *slog.Logger
}

// NewClient creates a portal client for the given export URL. The response
// body streams straight into the CSV parser; the full historic export runs
// tens of megabytes.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetDoNotParseResponse(true)

	return &Client{http: httpClient, url: url, logger: logger}
}

// LoadTable downloads the export and parses it. One attempt, no retries: the
// report either gets the whole dataset or the run fails.
func (c *Client) LoadTable(ctx context.Context) (*dataset.Table, error) {
	start := time.Now()

	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("status %d", resp.StatusCode())}
	}

	table, err := dataset.ReadCSV(body)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}

	c.logger.Info("dataset fetched",
		"url", c.url,
		"rows", table.Len(),
		"columns", len(table.Columns()),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return table, nil
}
