// Package main is the entry point for the grid viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/config"
	"github.com/Faultbox/gridview/internal/game"
	"github.com/Faultbox/gridview/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if config.DumpRequested() {
		if _, err := cfg.WriteTo(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Grid Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
