package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/cdj"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/config"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/loadfeed"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/logging"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/metrics"
)

const snapshotLength = 65536

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupCapture(cfg *config.Config) *pcap.Handle {
	handle, err := pcap.OpenLive(cfg.CaptureInterface, snapshotLength, true, pcap.BlockForever)
	if err != nil {
		slog.Error("Failed to open capture interface", "interface", cfg.CaptureInterface, "error", err)
		os.Exit(1)
	}

	// CDJ link traffic is TCP; everything else is noise
	if err := handle.SetBPFFilter("tcp"); err != nil {
		handle.Close()
		slog.Error("Failed to set capture filter", "error", err)
		os.Exit(1)
	}

	return handle
}

// watchPackets feeds captured TCP payloads through the CDJ exchange pairer
// and load sequence, publishing each completed track load onto the feed.
func watchPackets(handle *pcap.Handle, feed *loadfeed.Server) {
	pairer := cdj.NewPairer()
	sequence := &cdj.LoadSequence{}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range source.Packets() {
		transport := packet.TransportLayer()
		if transport == nil {
			continue
		}

		payload := transport.LayerPayload()
		if len(payload) == 0 {
			continue
		}
		metrics.CapturePacketsTotal.Inc()

		exchange := pairer.Pair(payload)
		if exchange == nil || !sequence.Advance(exchange) {
			continue
		}

		deckID, path, err := cdj.LoadDetails(exchange)
		if err != nil {
			slog.Warn("Failed to extract load details", "error", err)
			continue
		}

		slog.Info("Track load detected", "deck", deckID, "path", path)
		feed.Publish(deckID, path)
	}
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "addr", cfg.BroadcastAddr)

	feed := loadfeed.NewServer(cfg.BroadcastAddr, cfg.BroadcastBasePath)
	if err := feed.Start(); err != nil {
		slog.Error("Failed to start load feed server", "addr", cfg.BroadcastAddr, "error", err)
		os.Exit(1)
	}

	handle := setupCapture(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		handle.Close()
		if err := feed.Stop(); err != nil {
			slog.Error("Failed to stop load feed server", "error", err)
		}
	}()

	slog.Info("Watching for CDJ track loads", "interface", cfg.CaptureInterface)
	watchPackets(handle, feed)
}
