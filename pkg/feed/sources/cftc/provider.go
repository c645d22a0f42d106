package cftc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/pkg/cot"
	"marketmood/pkg/feed"
)

const defaultProviderTimeout = 45 * time.Second

// Provider adapts the report client to the feed.Provider contract.
type Provider struct {
	client     *Client
	locator    cot.Locator
	timeout    time.Duration
	providerID string
}

type providerConfig struct {
	timeout      time.Duration
	clientConfig []Option
}

// ProviderOption customises the report provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-fetch timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying report client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a report provider for one instrument.
func NewProvider(locator cot.Locator, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{
		timeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Provider{
		client:  NewClient(cfg.clientConfig...),
		locator: locator,
		timeout: cfg.timeout,
	}
}

func init() {
	feed.RegisterSource("cftc", func(name string, cfg *feed.ProviderConfig, instrument feed.InstrumentConfig) (feed.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithReportURL(cfg.BaseURL))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		provider := NewProvider(instrument.Locator(), opts...)
		provider.providerID = name
		return provider, nil
	})
}

// Name implements feed.Provider.
func (p *Provider) Name() string {
	if strings.TrimSpace(p.providerID) != "" {
		return p.providerID
	}
	return "cftc"
}

// FetchLatest implements feed.Provider: one GET, locate the instrument
// line, parse it.
func (p *Provider) FetchLatest(ctx context.Context) (*cot.Record, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	lines, err := p.client.FetchReportLines(ctx)
	if err != nil {
		return nil, err
	}
	match, err := p.locator.Locate(lines)
	if err != nil {
		return nil, err
	}
	if match.Fuzzy {
		logx.WithContext(ctx).Infof("cftc: fuzzy match %q selected line %q", match.Pattern, match.Line)
	}
	return cot.ParseRecordLine(match.Line)
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}
