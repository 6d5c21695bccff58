// Package main implements the volscope viewer.
// volscope generates synthetic dev and prod volume series, filters them to
// one component, and serves an interactive scrollable chart over HTTP.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeene/volscope/cmd/volscope/config"
	"github.com/akeene/volscope/cmd/volscope/logger"
	"github.com/akeene/volscope/cmd/volscope/metrics"
	"github.com/akeene/volscope/cmd/volscope/router"
	"github.com/akeene/volscope/pkg/chart"
	"github.com/akeene/volscope/pkg/httpx"
	"github.com/akeene/volscope/pkg/series"
	"github.com/akeene/volscope/pkg/view"
)

// serveURL builds the browser URL hint for a listen address. Wildcard and
// empty hosts map to localhost.
func serveURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen + "/"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func main() {
	cfg := config.ParseFlags()

	logger := logger.New(cfg)
	slog.SetDefault(logger)

	logger.Info("starting volscope",
		"version", "v0.1.0",
		"component", cfg.Component,
		"seed", cfg.Seed,
	)

	gen := series.NewGenerator(series.Components, cfg.Presence, cfg.Seed)
	dev, prod := gen.Generate(cfg.Count, cfg.Start, cfg.Cadence)

	v, err := view.NewComponentView(dev, prod, cfg.Component, cfg.WindowSize)
	switch {
	case errors.Is(err, view.ErrNoData):
		fmt.Printf("No data available for component: %s\n", cfg.Component)
		return
	case errors.Is(err, view.ErrNoTimestamps):
		fmt.Printf("No valid timestamps for component: %s\n", cfg.Component)
		return
	case err != nil:
		logger.Error("failed to build component view", "error", err)
		os.Exit(1)
	}

	logger.Info("component view ready",
		"component", cfg.Component,
		"dev_points", v.Dev.Len(),
		"prod_points", v.Prod.Len(),
		"timestamps", v.Window().Count(),
		"max_offset", v.Window().MaxOffset(),
	)

	m := metrics.New()
	renderer := chart.NewRenderer()
	handler := router.SetupRoutes(v, renderer, m, logger)
	httpServer := httpx.NewServer(cfg.Listen, handler, logger)

	fmt.Printf("Serving chart for %s at %s\n", cfg.Component, serveURL(cfg.Listen))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	}

	logger.Info("shutting down")

	if err := httpServer.Stop(10 * time.Second); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
