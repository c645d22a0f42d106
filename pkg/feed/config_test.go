package feed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	feed "marketmood/pkg/feed"
	_ "marketmood/pkg/feed/sources/file"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFeedConfig(t *testing.T) {
	path := writeConfig(t, `
default: local
fallback: reuse
instrument:
  name: E-mini Nasdaq-100
  patterns:
    - E-MINI NASDAQ-100 STOCK INDEX
  anchor: NASDAQ
  qualifier: MINI
providers:
  local:
    type: file
    path: testdata/deafut.txt
    timeout: 6s
`)

	cfg, err := feed.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Default != "local" {
		t.Fatalf("unexpected default: %s", cfg.Default)
	}
	if cfg.Fallback != feed.FallbackReuse {
		t.Fatalf("unexpected fallback: %s", cfg.Fallback)
	}
	if cfg.Providers["local"].Timeout.String() != "6s" {
		t.Fatalf("timeout not parsed: %s", cfg.Providers["local"].Timeout)
	}

	providers, err := cfg.BuildProviders()
	if err != nil {
		t.Fatalf("BuildProviders error: %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if _, ok := providers["local"]; !ok {
		t.Fatalf("provider map missing local")
	}
	if providers["local"].Name() != "local" {
		t.Fatalf("provider name not propagated: %s", providers["local"].Name())
	}
}

func TestFeedConfigInvalidType(t *testing.T) {
	path := writeConfig(t, `
default: demo
providers:
  demo:
    type: foobar
`)

	_, err := feed.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestFeedConfigMissingDefault(t *testing.T) {
	path := writeConfig(t, `
providers:
  local:
    type: file
    path: testdata/deafut.txt
`)

	_, err := feed.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "default provider must be set") {
		t.Fatalf("expected missing default error, got %v", err)
	}
}

func TestFeedConfigUnknownDefault(t *testing.T) {
	path := writeConfig(t, `
default: remote
providers:
  local:
    type: file
    path: testdata/deafut.txt
`)

	_, err := feed.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("expected unknown default error, got %v", err)
	}
}

func TestFeedConfigBadFallback(t *testing.T) {
	path := writeConfig(t, `
default: local
fallback: sometimes
providers:
  local:
    type: file
    path: testdata/deafut.txt
`)

	_, err := feed.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported fallback") {
		t.Fatalf("expected fallback error, got %v", err)
	}
}

// Instrument matching falls back to the built-in E-mini Nasdaq-100 block
// when the config leaves it out.
func TestFeedConfigInstrumentDefaults(t *testing.T) {
	path := writeConfig(t, `
default: local
providers:
  local:
    type: file
    path: testdata/deafut.txt
`)

	cfg, err := feed.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Instrument.Name != "E-mini Nasdaq-100" {
		t.Fatalf("instrument name default missing: %q", cfg.Instrument.Name)
	}
	if len(cfg.Instrument.Patterns) == 0 {
		t.Fatalf("instrument patterns default missing")
	}
	if cfg.Instrument.Anchor != "NASDAQ" || cfg.Instrument.Qualifier != "MINI" {
		t.Fatalf("fuzzy tokens default missing: %q %q", cfg.Instrument.Anchor, cfg.Instrument.Qualifier)
	}
}
