package datalink

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketmood/pkg/cot"
	"marketmood/pkg/feed"
)

const defaultProviderTimeout = 45 * time.Second

// Provider adapts the dataset client to the feed.Provider contract.
type Provider struct {
	client     *Client
	timeout    time.Duration
	market     string
	providerID string
}

type providerConfig struct {
	timeout      time.Duration
	clientConfig []Option
}

// ProviderOption customises the dataset provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-fetch timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying dataset client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a dataset provider. market labels the resulting
// records; the dataset itself identifies the instrument.
func NewProvider(apiKey, market string, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{
		timeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Provider{
		client:  NewClient(apiKey, cfg.clientConfig...),
		timeout: cfg.timeout,
		market:  market,
	}
}

func init() {
	feed.RegisterSource("datalink", func(name string, cfg *feed.ProviderConfig, instrument feed.InstrumentConfig) (feed.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Dataset != "" {
			clientOptions = append(clientOptions, WithDataset(cfg.Dataset))
		}
		if cfg.RatePerMinute > 0 {
			clientOptions = append(clientOptions, WithRateLimit(cfg.RatePerMinute))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		provider := NewProvider(cfg.APIKey, instrument.Name, opts...)
		provider.providerID = name
		return provider, nil
	})
}

// Name implements feed.Provider.
func (p *Provider) Name() string {
	if strings.TrimSpace(p.providerID) != "" {
		return p.providerID
	}
	return "datalink"
}

// HasCredential reports whether an API key is configured. The caller uses
// this to pick a strategy before any request is made.
func (p *Provider) HasCredential() bool {
	return strings.TrimSpace(p.client.apiKey) != ""
}

// FetchLatest implements feed.Provider by mapping the newest dataset row.
func (p *Provider) FetchLatest(ctx context.Context) (*cot.Record, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.latestRecord(ctx, p.market)
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}
