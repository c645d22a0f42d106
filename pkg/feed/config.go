package feed

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"marketmood/pkg/confkit"
	"marketmood/pkg/cot"
)

// Fallback behaviors when the default provider cannot run (for example a
// missing API key). Empty means fail.
const (
	FallbackReuse = "reuse"
	FallbackFail  = "fail"
)

// Config describes the report sources available to the collector.
type Config struct {
	Default    string                     `yaml:"default"`
	Fallback   string                     `yaml:"fallback"`
	Instrument InstrumentConfig           `yaml:"instrument"`
	Providers  map[string]*ProviderConfig `yaml:"providers"`
}

// InstrumentConfig identifies the report row to extract. Patterns are
// exact match candidates in priority order; Anchor and Qualifier feed the
// fuzzy fallback.
type InstrumentConfig struct {
	Name      string   `yaml:"name"`
	Patterns  []string `yaml:"patterns"`
	Anchor    string   `yaml:"anchor"`
	Qualifier string   `yaml:"qualifier"`
}

// Locator builds the line matcher for this instrument.
func (i InstrumentConfig) Locator() cot.Locator {
	return cot.Locator{
		Patterns:  i.Patterns,
		Anchor:    i.Anchor,
		Qualifier: i.Qualifier,
	}
}

// ProviderConfig represents configuration for a single report source.
type ProviderConfig struct {
	Type string `yaml:"type"`

	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Dataset string `yaml:"dataset"`
	Path    string `yaml:"path"`

	TimeoutRaw     string        `yaml:"timeout"`
	Timeout        time.Duration `yaml:"-"`
	HTTPTimeoutRaw string        `yaml:"http_timeout"`
	HTTPTimeout    time.Duration `yaml:"-"`
	RatePerMinute  int           `yaml:"rate_per_min"`
}

// SourceBuilder constructs a Provider from configuration.
type SourceBuilder func(name string, cfg *ProviderConfig, instrument InstrumentConfig) (Provider, error)

var (
	sourceRegistry   = make(map[string]SourceBuilder)
	sourceRegistryMu sync.RWMutex
)

// RegisterSource registers a report source constructor.
func RegisterSource(typeName string, builder SourceBuilder) {
	sourceRegistryMu.Lock()
	defer sourceRegistryMu.Unlock()
	sourceRegistry[strings.ToLower(strings.TrimSpace(typeName))] = builder
}

func lookupSourceBuilder(typeName string) (SourceBuilder, bool) {
	sourceRegistryMu.RLock()
	defer sourceRegistryMu.RUnlock()
	builder, ok := sourceRegistry[strings.ToLower(strings.TrimSpace(typeName))]
	return builder, ok
}

// LoadConfig reads feed configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads feed configuration from the default project location and
// panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/feed.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal feed config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default instrument: the E-mini Nasdaq-100 row of the futures-only
// report, including the naming used by older report revisions.
var defaultInstrument = InstrumentConfig{
	Name: "E-mini Nasdaq-100",
	Patterns: []string{
		"E-MINI NASDAQ-100 STOCK INDEX",
		"NASDAQ-100 STOCK INDEX (MINI)",
		"NASDAQ MINI",
	},
	Anchor:    "NASDAQ",
	Qualifier: "MINI",
}

func (c *Config) normalise() error {
	c.Default = strings.TrimSpace(os.ExpandEnv(c.Default))
	c.Fallback = strings.ToLower(strings.TrimSpace(os.ExpandEnv(c.Fallback)))
	c.Instrument.applyDefaults()
	if c.Providers == nil {
		c.Providers = make(map[string]*ProviderConfig)
	}
	for name, provider := range c.Providers {
		if provider == nil {
			provider = &ProviderConfig{}
			c.Providers[name] = provider
		}
		provider.expandEnv()
		if err := provider.parseDurations(name); err != nil {
			return err
		}
	}
	return nil
}

func (i *InstrumentConfig) applyDefaults() {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		i.Name = defaultInstrument.Name
	}
	if len(i.Patterns) == 0 {
		i.Patterns = append([]string(nil), defaultInstrument.Patterns...)
	}
	if strings.TrimSpace(i.Anchor) == "" {
		i.Anchor = defaultInstrument.Anchor
	}
	if strings.TrimSpace(i.Qualifier) == "" {
		i.Qualifier = defaultInstrument.Qualifier
	}
}

func (p *ProviderConfig) expandEnv() {
	p.Type = strings.TrimSpace(os.ExpandEnv(p.Type))
	p.BaseURL = strings.TrimSpace(os.ExpandEnv(p.BaseURL))
	p.APIKey = strings.TrimSpace(os.ExpandEnv(p.APIKey))
	p.Dataset = strings.TrimSpace(os.ExpandEnv(p.Dataset))
	p.Path = strings.TrimSpace(os.ExpandEnv(p.Path))
	p.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(p.TimeoutRaw))
	p.HTTPTimeoutRaw = strings.TrimSpace(os.ExpandEnv(p.HTTPTimeoutRaw))
}

func (p *ProviderConfig) parseDurations(name string) error {
	if p.TimeoutRaw != "" {
		d, err := time.ParseDuration(p.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("feed provider %s: invalid timeout %q: %w", name, p.TimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("feed provider %s: timeout must be positive, got %s", name, d)
		}
		p.Timeout = d
	}
	if p.HTTPTimeoutRaw != "" {
		d, err := time.ParseDuration(p.HTTPTimeoutRaw)
		if err != nil {
			return fmt.Errorf("feed provider %s: invalid http_timeout %q: %w", name, p.HTTPTimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("feed provider %s: http_timeout must be positive, got %s", name, d)
		}
		p.HTTPTimeout = d
	}
	return nil
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("feed config: providers cannot be empty")
	}
	if c.Default == "" {
		return fmt.Errorf("feed config: default provider must be set")
	}
	if _, ok := c.Providers[c.Default]; !ok {
		return fmt.Errorf("feed config: default provider %q not defined", c.Default)
	}
	switch c.Fallback {
	case "", FallbackReuse, FallbackFail:
	default:
		return fmt.Errorf("feed config: unsupported fallback %q", c.Fallback)
	}
	for name, provider := range c.Providers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("feed config: provider name cannot be empty")
		}
		if err := provider.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (p *ProviderConfig) validate(name string) error {
	if p == nil {
		return fmt.Errorf("feed config: provider %s is nil", name)
	}
	if strings.TrimSpace(p.Type) == "" {
		return fmt.Errorf("feed config: provider %s must specify type", name)
	}
	if _, ok := lookupSourceBuilder(p.Type); !ok {
		return fmt.Errorf("feed config: provider %s has unsupported type %q", name, p.Type)
	}
	return nil
}

// BuildProviders instantiates report sources according to configuration.
func (c *Config) BuildProviders() (map[string]Provider, error) {
	result := make(map[string]Provider, len(c.Providers))
	for name, providerCfg := range c.Providers {
		builder, ok := lookupSourceBuilder(providerCfg.Type)
		if !ok {
			return nil, fmt.Errorf("feed provider %s: unsupported type %q", name, providerCfg.Type)
		}
		provider, err := builder(name, providerCfg, c.Instrument)
		if err != nil {
			return nil, fmt.Errorf("feed provider %s: %w", name, err)
		}
		result[name] = provider
	}
	return result, nil
}
