// Package datalink reads weekly positioning readings from the Nasdaq Data
// Link dataset API, the alternate source used when scraping the published
// report text is undesirable. An API key is required for meaningful
// request volumes; a missing key is allowed at build time so the caller
// can decide between reusing the prior snapshot and failing the run.
package datalink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://data.nasdaq.com"
	// defaultDataset is the legacy futures-only series for the E-mini
	// Nasdaq-100 contract.
	defaultDataset       = "CFTC/209742_F_ALL"
	defaultHTTPTimeout   = 30 * time.Second
	defaultRatePerMinute = 30
	statusMessageLimit   = 200
)

// APIError represents a non-success response from the dataset API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("datalink: http status %d from %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Client is a Nasdaq Data Link dataset client.
type Client struct {
	baseURL    string
	apiKey     string
	dataset    string
	httpClient *http.Client
	logger     *log.Logger
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithDataset overrides the default dataset code.
func WithDataset(code string) Option {
	return func(c *Client) {
		if code != "" {
			c.dataset = code
		}
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
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

// WithRateLimit paces requests to the given budget per minute.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
		}
	}
}

// NewClient creates a dataset client. An empty apiKey builds a client
// whose requests will be rejected by the API; see Provider.HasCredential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		dataset:    defaultDataset,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     log.Default(),
		limiter:    rate.NewLimiter(rate.Every(time.Minute/defaultRatePerMinute), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// GetDataset fetches the configured dataset, newest rows first.
func (c *Client) GetDataset(ctx context.Context) (*Dataset, error) {
	endpoint := "/api/v3/datasets/" + c.dataset + ".json"

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("datalink: rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	// One row is enough for the latest reading; the API still returns
	// column names for mapping.
	params.Set("rows", "1")

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("datalink: build request: %w", err)
	}

	c.logf("datalink: GET %s", c.baseURL+endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("datalink: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		msg := string(body)
		if len(msg) > statusMessageLimit {
			msg = msg[:statusMessageLimit] + "..."
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Endpoint: endpoint}
	}

	var envelope datasetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("datalink: decode response: %w", err)
	}
	return &envelope.Dataset, nil
}

// logf prints debug output when a logger is configured.
func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
