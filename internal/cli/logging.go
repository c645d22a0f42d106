package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/internal/config"
	"marketmood/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Artifact path: %s", cfg.Artifact.Path),
		fmt.Sprintf("Row maxes (net/long/short): %.0f / %.0f / %.0f",
			cfg.Artifact.Maxes.Net, cfg.Artifact.Maxes.Long, cfg.Artifact.Maxes.Short),
		fmt.Sprintf("Postgres mirror: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Run log: %s", presence(strings.TrimSpace(cfg.RunLogDir) != "")),
		fmt.Sprintf("Cron schedule: %s", cfg.Cron.Schedule),
		sectionLine("Feed config", cfg.Feed),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
