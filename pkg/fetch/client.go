// Package fetch retrieves the raw market data the analysis consumes:
// price history and quote basics from the Yahoo chart API, statement
// tables and key statistics scraped from the quote pages, and the
// company news feed from the search endpoint. Every fetch degrades to an
// error the caller can absorb with a manual override; nothing here is
// fatal to a session.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	defaultChartBase  = "https://query1.finance.yahoo.com"
	defaultSearchBase = "https://query1.finance.yahoo.com"
	defaultPagesBase  = "https://finance.yahoo.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client fetches market data from the Yahoo surface. The zero value is
// not usable; construct with NewClient.
type Client struct {
	httpClient *http.Client

	chartBase  string
	searchBase string
	pagesBase  string

	requestMu       sync.Mutex
	lastRequestTime time.Time
	minInterval     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRequestSpacing adjusts the minimum gap between outbound requests.
func WithRequestSpacing(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithBaseURLs points the client at alternative endpoints. Empty strings
// keep the defaults. Used by tests to serve fixtures.
func WithBaseURLs(chart, search, pages string) Option {
	return func(c *Client) {
		if chart != "" {
			c.chartBase = chart
		}
		if search != "" {
			c.searchBase = search
		}
		if pages != "" {
			c.pagesBase = pages
		}
	}
}

// NewClient creates a market data client with a 10 second timeout and
// polite request spacing.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		chartBase:   defaultChartBase,
		searchBase:  defaultSearchBase,
		pagesBase:   defaultPagesBase,
		minInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a spaced, browser-like GET and returns the body on 200.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// throttle enforces the minimum spacing between outbound requests so a
// burst of section fetches does not trip rate limiting.
func (c *Client) throttle() {
	c.requestMu.Lock()
	defer c.requestMu.Unlock()

	if wait := c.minInterval - time.Since(c.lastRequestTime); wait > 0 {
		time.Sleep(wait)
	}
	c.lastRequestTime = time.Now()
}
