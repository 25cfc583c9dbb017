// Package main queries one token, prints its profile and exits.
// The exit status is non-zero when the token lookup fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"solana-token-scope/internal/config"
	"solana-token-scope/internal/gateway"
	"solana-token-scope/internal/logging"
	"solana-token-scope/internal/pipeline"
	"solana-token-scope/internal/render"
)

func main() {
	cfg := config.Load()

	contract := flag.String("address", "", "Token contract (mint) address")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	chainFMCookie := flag.String("chainfm-cookie", cfg.ChainFMCookie, "chain.fm session cookie")
	deadline := flag.Duration("timeout", 2*time.Minute, "Overall deadline")
	showActivity := flag.Bool("activity", false, "Print the activity log")
	flag.Parse()

	cfg.ChainFMCookie = *chainFMCookie

	if *contract == "" {
		fmt.Fprintln(os.Stderr, "--address is required")
		os.Exit(2)
	}

	logger, err := logging.New(*logLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *deadline)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, *contract, *showActivity, logger))
}

func run(ctx context.Context, cfg *config.Config, contract string, showActivity bool, logger logrus.FieldLogger) int {
	providers := gateway.NewProviders(cfg, logger)

	finished := make(chan pipeline.Event, 1)
	ctrl := pipeline.New(pipeline.Options{
		Registry:     providers.PumpFun,
		Trades:       providers.Debot,
		History:      providers.PumpFun,
		Transactions: providers.ChainFM,
		Social:       providers.PumpNews,
		Logger:       logger,
		HistoryLimit: cfg.HistoryLimit,
		Listener: func(e pipeline.Event) {
			if e.Kind == pipeline.EventStageChanged && e.State.Terminal() {
				select {
				case finished <- e:
				default:
				}
			}
		},
	})

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go ctrl.Run(loopCtx)

	if _, err := ctrl.Submit(ctx, contract); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	select {
	case <-finished:
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "timed out:", ctx.Err())
	}

	snap, err := ctrl.Snapshot(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := render.Snapshot(os.Stdout, snap); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if showActivity {
		fmt.Println()
		if err := render.Activity(os.Stdout, ctrl.Activity().Entries()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if snap.State != pipeline.StateDone {
		return 1
	}
	return 0
}
