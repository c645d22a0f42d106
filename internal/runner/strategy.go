package runner

import (
	"fmt"

	"marketmood/internal/artifact"
	"marketmood/pkg/cot"
	feedpkg "marketmood/pkg/feed"
)

// Strategy is how a run obtains its weekly reading. It is chosen up front
// from credential availability and the configured fallback, never from
// ambient state mid-run.
type Strategy int

const (
	// StrategyLive fetches a fresh reading from the provider.
	StrategyLive Strategy = iota
	// StrategyReuse rebuilds the reading from the prior artifact.
	StrategyReuse
	// StrategyFail aborts the run before any fetch.
	StrategyFail
)

func (s Strategy) String() string {
	switch s {
	case StrategyLive:
		return "live"
	case StrategyReuse:
		return "reuse"
	case StrategyFail:
		return "fail"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ChooseStrategy picks the run strategy for a provider. Providers that
// carry no credential requirement always run live. A credential-aware
// provider without its key falls back per the feed config: "reuse" serves
// the prior artifact again, anything else fails.
func ChooseStrategy(p feedpkg.Provider, fallback string) Strategy {
	ca, ok := p.(feedpkg.CredentialAware)
	if !ok || ca.HasCredential() {
		return StrategyLive
	}
	if fallback == feedpkg.FallbackReuse {
		return StrategyReuse
	}
	return StrategyFail
}

// recordFromPrior reconstructs the weekly reading from the prior
// artifact's positioning rows. Reusing the same week means the
// reconciler sees no new period, so no prev values are fabricated.
func recordFromPrior(prior *artifact.Artifact) (*cot.Record, error) {
	if prior == nil || prior.Cot.WeekEnding == "" {
		return nil, fmt.Errorf("runner: no prior artifact to reuse")
	}
	long, ok := prior.Cot.Row(artifact.LabelLong)
	if !ok {
		return nil, fmt.Errorf("runner: prior artifact has no %s row", artifact.LabelLong)
	}
	short, ok := prior.Cot.Row(artifact.LabelShort)
	if !ok {
		return nil, fmt.Errorf("runner: prior artifact has no %s row", artifact.LabelShort)
	}
	return &cot.Record{
		Market:       prior.Cot.Instrument,
		ReportDate:   prior.Cot.WeekEnding,
		NonCommLong:  long.Value,
		NonCommShort: short.Value,
	}, nil
}
