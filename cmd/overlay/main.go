package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/config"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/feed"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/logging"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/overlay"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *overlay.Server, sub *feed.Subscription) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if err := sub.Close(); err != nil {
			slog.Error("Failed to close feed subscription", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.OverlayPort)

	display, err := overlay.NewDisplay()
	if err != nil {
		slog.Error("Failed to create display", "error", err)
		os.Exit(1)
	}

	sub, err := feed.Subscribe(cfg.FeedURL, display.OnMessage)
	if err != nil {
		slog.Error("Failed to subscribe to track feed", "url", cfg.FeedURL, "error", err)
		os.Exit(1)
	}

	srv, err := overlay.NewServer(cfg, display)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, sub)

	slog.Info("Overlay serving", "port", cfg.OverlayPort, "feed", cfg.FeedURL)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
