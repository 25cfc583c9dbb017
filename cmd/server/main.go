// Package main runs the token-scope dashboard backend: the stage pipeline
// behind an HTTP API, a websocket feed and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-token-scope/internal/config"
	"solana-token-scope/internal/gateway"
	"solana-token-scope/internal/logging"
	"solana-token-scope/internal/pipeline"
	"solana-token-scope/internal/server"
)

func main() {
	// Loads .env, env vars become flag defaults
	cfg := config.Load()

	listenAddr := flag.String("listen", cfg.ListenAddr, "HTTP listen address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", cfg.LogFormat, "Log format (text, json)")
	chainFMCookie := flag.String("chainfm-cookie", cfg.ChainFMCookie, "chain.fm session cookie")
	timeout := flag.Duration("http-timeout", cfg.HTTPTimeout, "Per-request provider timeout")
	rps := flag.Float64("provider-rps", cfg.ProviderRPS, "Requests per second per provider (0 = unlimited)")
	flag.Parse()

	cfg.ListenAddr = *listenAddr
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	cfg.ChainFMCookie = *chainFMCookie
	cfg.HTTPTimeout = *timeout
	cfg.ProviderRPS = *rps

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.Component(logger, "server")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.ChainFMCookie == "" {
		log.Warn("CHAINFM_COOKIE not set; smart money stage will report unauthenticated")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers := gateway.NewProviders(cfg, logger)
	hub := server.NewHub(logger)

	ctrl := pipeline.New(pipeline.Options{
		Registry:     providers.PumpFun,
		Trades:       providers.Debot,
		History:      providers.PumpFun,
		Transactions: providers.ChainFM,
		Social:       providers.PumpNews,
		Listener:     hub.PublishEvent,
		Logger:       logger,
		HistoryLimit: cfg.HistoryLimit,
	})

	entries, unsubscribe := ctrl.Activity().Subscribe(256)
	defer unsubscribe()
	go hub.ForwardActivity(ctx, entries)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Run(ctx)
	}()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(ctrl, ctrl.Activity(), hub, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
			cancel()
		}
	}()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Received signal, shutting down")
	case <-ctx.Done():
	}

	cancel()
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP shutdown error")
	}

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("pipeline error")
	}
	log.Info("Shutdown complete")
}
