package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries settings for all three binaries. Each binary reads the
// slice of fields it cares about; fields only one binary needs stay optional
// here and are validated at startup by that binary.
type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Trackload server
	Port          string // HTTP/WebSocket listen port
	BroadcastAddr string // line feed address to subscribe to
	MusicPath     string // root directory of the track files
	MaxClients    int

	// Broadcast server
	BroadcastBasePath string // prefix stripped from captured paths
	CaptureInterface  string

	// Overlay
	FeedURL     string // WebSocket feed the overlay subscribes to
	OverlayPort string
}

func Load() (*Config, error) {
	// A .env file is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		Port:              getEnv("PORT", "8008"),
		BroadcastAddr:     getEnv("BROADCAST_ADDR", "localhost:19000"),
		MusicPath:         getEnv("MUSIC_PATH", ""),
		BroadcastBasePath: getEnv("BROADCAST_BASE_PATH", ""),
		CaptureInterface:  getEnv("CAPTURE_INTERFACE", "any"),
		FeedURL:           getEnv("FEED_URL", "ws://localhost:8008/ws"),
		OverlayPort:       getEnv("OVERLAY_PORT", "8080"),
	}

	maxClients := getEnv("MAX_CLIENTS", "50")
	n, err := strconv.Atoi(maxClients)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("MAX_CLIENTS must be a positive integer, got %q", maxClients)
	}
	cfg.MaxClients = n

	if !strings.HasPrefix(cfg.FeedURL, "ws://") && !strings.HasPrefix(cfg.FeedURL, "wss://") {
		return nil, fmt.Errorf("FEED_URL must be a ws:// or wss:// URL, got %q", cfg.FeedURL)
	}

	if !strings.Contains(cfg.BroadcastAddr, ":") {
		return nil, fmt.Errorf("BROADCAST_ADDR must be host:port, got %q", cfg.BroadcastAddr)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
