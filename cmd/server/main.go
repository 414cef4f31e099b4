// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/festy23/team_invite/internal/app"
	"github.com/festy23/team_invite/internal/config"
	"github.com/festy23/team_invite/pkg/logger"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize server", "error", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		sugar.Errorw("server stopped", "error", err)
		return
	}
	sugar.Infow("server stopped")
}
