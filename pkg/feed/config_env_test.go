package feed_test

import (
	"testing"

	feed "marketmood/pkg/feed"
	_ "marketmood/pkg/feed/sources/datalink"
)

// Ensures env placeholders are expanded and durations parsed.
func TestFeedConfig_EnvExpansionAndDurations(t *testing.T) {
	t.Setenv("DATALINK_API_KEY", "expanded-key")
	t.Setenv("DATALINK_BASE", "https://data.nasdaq.test")
	t.Setenv("FEED_TOUT", "9s")
	t.Setenv("FEED_HTTP_TOUT", "13s")

	path := writeConfig(t, `
default: dl
providers:
  dl:
    type: datalink
    base_url: ${DATALINK_BASE}
    api_key: ${DATALINK_API_KEY}
    dataset: CFTC/209742_F_ALL
    timeout: ${FEED_TOUT}
    http_timeout: ${FEED_HTTP_TOUT}
`)

	cfg, err := feed.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	p := cfg.Providers["dl"]
	if p == nil {
		t.Fatalf("provider dl missing")
	}
	if p.BaseURL != "https://data.nasdaq.test" {
		t.Fatalf("BaseURL not expanded, got %q", p.BaseURL)
	}
	if p.APIKey != "expanded-key" {
		t.Fatalf("APIKey not expanded, got %q", p.APIKey)
	}
	if p.Timeout.String() != "9s" || p.HTTPTimeout.String() != "13s" {
		t.Fatalf("durations not parsed, timeout=%s http_timeout=%s", p.Timeout, p.HTTPTimeout)
	}

	providers, err := cfg.BuildProviders()
	if err != nil {
		t.Fatalf("BuildProviders: %v", err)
	}
	if _, ok := providers["dl"]; !ok {
		t.Fatalf("provider map missing dl")
	}

	aware, ok := providers["dl"].(feed.CredentialAware)
	if !ok {
		t.Fatalf("datalink provider should report credential state")
	}
	if !aware.HasCredential() {
		t.Fatalf("expanded api key should count as a credential")
	}
}

// An empty expansion leaves the key blank, which must still build so the
// strategy layer can decide between reuse and fail.
func TestFeedConfig_MissingCredentialStillBuilds(t *testing.T) {
	t.Setenv("DATALINK_API_KEY", "")

	path := writeConfig(t, `
default: dl
fallback: reuse
providers:
  dl:
    type: datalink
    api_key: ${DATALINK_API_KEY}
`)

	cfg, err := feed.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	providers, err := cfg.BuildProviders()
	if err != nil {
		t.Fatalf("BuildProviders: %v", err)
	}

	aware, ok := providers["dl"].(feed.CredentialAware)
	if !ok {
		t.Fatalf("datalink provider should report credential state")
	}
	if aware.HasCredential() {
		t.Fatalf("blank api key should not count as a credential")
	}
}
