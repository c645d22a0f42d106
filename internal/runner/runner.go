// Package runner sequences a single collector run: load the prior
// artifact, obtain the weekly reading, reconcile, assemble and write.
// Runs are strictly sequential; nothing here fetches or parses
// concurrently.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/internal/artifact"
	"marketmood/internal/runlog"
	"marketmood/internal/sentiment"
	"marketmood/internal/svc"
	"marketmood/pkg/cot"
)

// timeNow is swapped in tests for deterministic artifacts.
var timeNow = time.Now

// Result summarises a successful run.
type Result struct {
	Artifact *artifact.Artifact
	Path     string
	Source   string
	Strategy Strategy
}

// Run executes one collection cycle against the default feed provider.
// Every fatal condition returns before the artifact is written; no
// partial output exists on any error path.
func Run(ctx context.Context, sc *svc.ServiceContext) (res *Result, err error) {
	path := sc.Config.Artifact.Path
	provider := sc.DefaultProvider
	strategy := ChooseStrategy(provider, sc.FeedConfig.Fallback)

	defer func() {
		writeRunRecord(sc, res, err, strategy)
	}()

	prior, err := artifact.Load(path)
	if err != nil {
		return nil, err
	}

	var rec *cot.Record
	switch strategy {
	case StrategyLive:
		rec, err = provider.FetchLatest(ctx)
		if err != nil {
			return nil, err
		}
	case StrategyReuse:
		rec, err = recordFromPrior(prior)
		if err != nil {
			return nil, err
		}
		logx.WithContext(ctx).Infof("runner: provider %s has no credential, reusing prior artifact dated %s",
			provider.Name(), rec.ReportDate)
	default:
		return nil, fmt.Errorf("runner: provider %s has no credential and fallback is %q", provider.Name(), sc.FeedConfig.Fallback)
	}

	prevs := artifact.PreviousValues(prior, rec.ReportDate)
	art := &artifact.Artifact{
		Cot: artifact.CotBlock{
			WeekEnding: rec.ReportDate,
			Source:     provider.Name(),
			Instrument: sc.FeedConfig.Instrument.Name,
			Rows:       artifact.CotRows(rec.Net(), rec.NonCommLong, rec.NonCommShort, prevs, sc.Config.Artifact.RowMaxes()),
		},
		Aaii:    sentiment.FromEnv(),
		Updated: timeNow().UTC().Format(time.RFC3339),
		Version: artifact.Version,
	}

	if err := artifact.Write(path, art); err != nil {
		return nil, err
	}

	// Mirror failures are logged, not fatal: the file just written is the
	// source of truth.
	if mirrorErr := sc.Board.RecordLatest(ctx, art); mirrorErr != nil {
		logx.WithContext(ctx).Errorf("runner: mirror latest artifact: %v", mirrorErr)
	}

	return &Result{
		Artifact: art,
		Path:     path,
		Source:   provider.Name(),
		Strategy: strategy,
	}, nil
}

func writeRunRecord(sc *svc.ServiceContext, res *Result, runErr error, strategy Strategy) {
	if sc.RunLog == nil {
		return
	}
	rec := &runlog.Record{
		Strategy:   strategy.String(),
		Instrument: sc.FeedConfig.Instrument.Name,
		Source:     sc.DefaultProvider.Name(),
		Success:    runErr == nil,
	}
	if res != nil {
		rec.WeekEnding = res.Artifact.Cot.WeekEnding
		rec.OutputPath = res.Path
	}
	if runErr != nil {
		rec.ErrorMessage = runErr.Error()
	}
	if _, err := sc.RunLog.WriteRun(rec); err != nil {
		logx.Errorf("runner: write run record: %v", err)
	}
}
