// Package main runs the seedrand CLI: seeded draws, expander words, dice rolls
// and Lua scripts, all reproducible from a seed string.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	seedrandcmd "github.com/louisbranch/seedrand/internal/cmd/seedrand"
	"github.com/louisbranch/seedrand/internal/platform/config"
	"github.com/louisbranch/seedrand/internal/platform/logging"
)

func main() {
	cfg, err := seedrandcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		config.Exitf("configure logging: %v", err)
	}
	logger = logger.With().Str("service", "seedrand").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedrandcmd.Run(ctx, cfg, os.Stdout, logger); err != nil {
		stop()
		logger.Fatal().Err(err).Str("mode", cfg.Mode).Msg("seedrand failed")
	}
}
