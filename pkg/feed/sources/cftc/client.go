// Package cftc fetches the regulator's published weekly futures report as
// plain text and extracts the configured instrument's reading from it.
package cftc

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultReportURL   = "https://www.cftc.gov/dea/newcot/deafut.txt"
	defaultHTTPTimeout = 30 * time.Second

	// statusBodyLimit bounds the body excerpt carried by StatusError.
	statusBodyLimit = 200
)

// StatusError reports a non-success HTTP status from the report host. The
// fetch is not retried; the run fails with this error.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cftc: http status %d fetching %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client fetches the published report text.
type Client struct {
	reportURL  string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithReportURL overrides the default report URL.
func WithReportURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.reportURL = url
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a report client.
func NewClient(opts ...Option) *Client {
	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	client := &Client{
		reportURL:  defaultReportURL,
		httpClient: httpClient,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = httpClient
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	return client
}

// FetchReportLines performs the single GET of the report and returns its
// body split into lines. There is no retry: a failed fetch fails the run.
func (c *Client) FetchReportLines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cftc: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("cftc: fetch report: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cftc: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: c.reportURL, Body: excerpt(body)}
	}

	c.logf("cftc: fetched report, %d bytes", len(body))
	return splitLines(string(body)), nil
}

// logf prints debug output when a logger is configured.
func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func splitLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Split(body, "\n")
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > statusBodyLimit {
		return s[:statusBodyLimit] + "..."
	}
	return s
}
