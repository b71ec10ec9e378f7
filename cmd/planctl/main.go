// README: Entry point; loads config, wires stores and services, runs one subcommand.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/CodeCary80/obviousplan/internal/config"
	"github.com/CodeCary80/obviousplan/internal/infra"
)

const usage = `planctl — evening-plan catalog and generation tool

Usage:
  planctl generate   -energy ... -budget ... -company ... [-lat -lng -share]
  planctl fetch      -hash ...
  planctl shuffle    -hash ... -target restaurant|activity
  planctl confirm    -hash ...
  planctl seed       [-dir migrations]
  planctl geocode
  planctl draft-tips -activity-type ... -budget ... -energy ... [-count n]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, command string, args []string) error {
	switch command {
	case "generate":
		return runGenerate(ctx, cfg, logger, args)
	case "fetch":
		return runFetch(ctx, cfg, logger, args)
	case "shuffle":
		return runShuffle(ctx, cfg, logger, args)
	case "confirm":
		return runConfirm(ctx, cfg, logger, args)
	case "seed":
		return runSeed(ctx, cfg, logger, args)
	case "geocode":
		return runGeocode(ctx, cfg, logger, args)
	case "draft-tips":
		return runDraftTips(ctx, cfg, logger, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
