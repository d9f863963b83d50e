package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/jonboulle/clockwork"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/broadcast"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/config"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/loadfeed"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/logging"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/metadata"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/metrics"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupFeedClient(cfg *config.Config, hub *broadcast.Hub, connected *atomic.Bool) *loadfeed.Client {
	handler := func(deckID int, path string) {
		track, err := metadata.FromFile(deckID, filepath.Join(cfg.MusicPath, path))
		if err != nil {
			metrics.MetadataErrorsTotal.Inc()
			slog.Error("Failed to read track metadata", "deck", deckID, "path", path, "error", err)
			return
		}

		slog.Info("Track loaded", "deck", deckID, "title", track.Title, "artist", track.Artist)
		hub.Publish(track)
	}

	client, err := loadfeed.Dial(cfg.BroadcastAddr, handler)
	if err != nil {
		slog.Error("Failed to connect to load feed", "addr", cfg.BroadcastAddr, "error", err)
		os.Exit(1)
	}
	connected.Store(true)

	go func() {
		if err := client.Run(); err != nil {
			slog.Error("Load feed connection lost", "error", err)
		}
		connected.Store(false)
	}()

	return client
}

func setupZeroconf(cfg *config.Config) *zeroconf.Server {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		slog.Warn("Skipping mDNS advertisement, port is not numeric", "port", cfg.Port)
		return nil
	}

	zc, err := zeroconf.Register("trackload", "_trackload._tcp", "local.", port, nil, nil)
	if err != nil {
		slog.Warn("Failed to advertise service over mDNS", "error", err)
		return nil
	}

	return zc
}

func runGracefulShutdown(srv *server.Server, hub *broadcast.Hub, client *loadfeed.Client, zc *zeroconf.Server) <-chan struct{} {
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

		hub.Stop()

		if err := client.Close(); err != nil {
			slog.Error("Failed to close load feed client", "error", err)
		}

		if zc != nil {
			zc.Shutdown()
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	if cfg.MusicPath == "" {
		slog.Error("MUSIC_PATH must be set to the track library root")
		os.Exit(1)
	}

	hub := broadcast.NewHub(clock, cfg.MaxClients)

	var feedConnected atomic.Bool
	client := setupFeedClient(cfg, hub, &feedConnected)

	zc := setupZeroconf(cfg)

	srv := server.NewServer(cfg, hub, feedConnected.Load)

	done := runGracefulShutdown(srv, hub, client, zc)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
