package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zeromicro/go-zero/core/logx"

	"marketmood/internal/cli"
	"marketmood/internal/config"
	"marketmood/internal/runner"
	"marketmood/internal/svc"
)

var configFile = flag.String("f", "etc/collector.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	sc := svc.NewServiceContext(cfg)

	res, err := runner.Run(context.Background(), sc)
	if err != nil {
		logx.Errorf("collector run failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("wrote sentiment artifact: %s\n", res.Path)
}
