package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/internal/cli"
	"marketmood/internal/config"
	"marketmood/internal/runner"
	"marketmood/internal/svc"
)

const runTimeout = 2 * time.Minute

var configFile = flag.String("f", "etc/collector.yaml", "the config file")

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting collector scheduler...")

	cfg := config.MustLoad(*configFile)
	for _, line := range cli.ConfigSummaryLines(cfg) {
		log.Printf("  - %s", line)
	}

	sc := svc.NewServiceContext(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SkipIfStillRunning keeps runs strictly sequential: a slow fetch is
	// never overlapped by the next tick.
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := c.AddFunc(cfg.Cron.Schedule, func() { runOnce(ctx, sc) }); err != nil {
		log.Fatalf("[main] Invalid cron schedule %q: %v", cfg.Cron.Schedule, err)
	}

	// One run at startup, then on schedule.
	runOnce(ctx, sc)
	c.Start()
	log.Printf("[main] Scheduler started with %q. Press Ctrl+C to stop.", cfg.Cron.Schedule)

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping scheduler...")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("[main] Scheduler stopped")
}

func runOnce(parentCtx context.Context, sc *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, runTimeout)
	defer cancel()

	start := time.Now()
	res, err := runner.Run(ctx, sc)
	elapsed := time.Since(start)
	if err != nil {
		logx.Errorf("[run] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	log.Printf("[run] [OK] source=%s strategy=%s week_ending=%s wrote %s, took %dms",
		res.Source, res.Strategy, res.Artifact.Cot.WeekEnding, res.Path, elapsed.Milliseconds())
}
