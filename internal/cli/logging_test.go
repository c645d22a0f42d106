package cli

import (
	"strings"
	"testing"

	"marketmood/internal/config"
	"marketmood/pkg/confkit"
	feedpkg "marketmood/pkg/feed"
)

func TestConfigSummaryLines(t *testing.T) {
	cfg := &config.Config{
		Env: "prod",
		Artifact: config.ArtifactConf{
			Path:  "data/sentiment.json",
			Maxes: config.MaxesConf{Net: 50000, Long: 100000, Short: 100000},
		},
		Postgres: config.PostgresConf{DSN: "postgres://localhost/marketmood"},
		Cron:     config.CronConf{Schedule: "30 19 * * 5"},
		Feed:     confkit.Section[feedpkg.Config]{File: "feed.yaml"},
	}

	lines := ConfigSummaryLines(cfg)
	joined := strings.Join(lines, "\n")

	for _, want := range []string{
		"Environment: prod",
		"Artifact path: data/sentiment.json",
		"Postgres mirror: configured",
		"Run log: not configured",
		"Cron schedule: 30 19 * * 5",
		"Feed config: feed.yaml",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("summary missing %q:\n%s", want, joined)
		}
	}
}

func TestConfigSummaryLinesNil(t *testing.T) {
	lines := ConfigSummaryLines(nil)
	if len(lines) != 1 || lines[0] != "Configuration: <nil>" {
		t.Fatalf("unexpected nil summary: %v", lines)
	}
}
