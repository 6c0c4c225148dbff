package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory/internal/app"
	"inventory/internal/config"
	"inventory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{ServiceName: "inventory"})
		bootLog.Fatalf("invalid configuration: %v", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "inventory",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := log.WithField(context.Background(), "env", cfg.App.Env)

	// --- Storage, events, handlers ---
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start inventory service", err)
		os.Exit(1)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Listen()
	}()

	exitCode := 0
	select {
	case <-quit:
		log.Info(ctx, "shutting down server")
	case err := <-serverErr:
		if err != nil {
			log.Error(ctx, "server failed", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "error during shutdown", err)
	}

	log.Info(ctx, "server gracefully stopped")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
