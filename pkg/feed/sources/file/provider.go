// Package file reads a weekly report from a local file through the same
// locate/parse path as the network source. It serves fixtures in tests
// and offline development runs.
package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/pkg/cot"
	"marketmood/pkg/feed"
)

// Provider extracts the instrument reading from a report file on disk.
type Provider struct {
	path       string
	locator    cot.Locator
	providerID string
}

// NewProvider constructs a file-backed report provider.
func NewProvider(path string, locator cot.Locator) *Provider {
	return &Provider{path: path, locator: locator}
}

func init() {
	feed.RegisterSource("file", func(name string, cfg *feed.ProviderConfig, instrument feed.InstrumentConfig) (feed.Provider, error) {
		if strings.TrimSpace(cfg.Path) == "" {
			return nil, fmt.Errorf("file source requires path")
		}
		provider := NewProvider(cfg.Path, instrument.Locator())
		provider.providerID = name
		return provider, nil
	})
}

// Name implements feed.Provider.
func (p *Provider) Name() string {
	if strings.TrimSpace(p.providerID) != "" {
		return p.providerID
	}
	return "file"
}

// FetchLatest implements feed.Provider against the local report file.
func (p *Provider) FetchLatest(ctx context.Context) (*cot.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("file: read report: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	match, err := p.locator.Locate(lines)
	if err != nil {
		return nil, err
	}
	if match.Fuzzy {
		logx.WithContext(ctx).Infof("file: fuzzy match %q selected line %q", match.Pattern, match.Line)
	}
	return cot.ParseRecordLine(match.Line)
}
