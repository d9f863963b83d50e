package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Capture / load feed metrics
var (
	// CapturePacketsTotal tracks TCP payloads fed into the CDJ pairer
	CapturePacketsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capture_packets_total",
			Help: "Total TCP payloads inspected for CDJ traffic",
		},
	)

	// TrackLoadsTotal tracks detected track loads by deck
	TrackLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "track_loads_total",
			Help: "Total track loads detected, by deck id",
		},
		[]string{"deck"},
	)

	// MetadataErrorsTotal tracks tag extraction failures
	MetadataErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_errors_total",
			Help: "Total failures reading tags from loaded track files",
		},
	)
)

// Hub metrics
var (
	// HubConnectedClients tracks the number of connected WebSocket clients
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Number of connected WebSocket overlay clients",
		},
	)

	// HubMessagesPublishedTotal tracks track messages fanned out to clients
	HubMessagesPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_messages_published_total",
			Help: "Total track messages published to the hub",
		},
	)

	// HubSlowClientsEvicted tracks slow clients dropped due to a full buffer
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total slow WebSocket clients evicted due to buffer full",
		},
	)

	// HubStopTimeoutsTotal tracks hub stops that exceeded the timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stop_timeouts_total",
			Help: "Hub stops that exceeded the shutdown timeout",
		},
	)

	// WebSocketMessageSendDuration tracks per-message write latency
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// WebSocketPingFailures tracks failed keepalive pings
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total failed WebSocket keepalive pings",
		},
	)
)

// Overlay metrics
var (
	// FeedMessagesTotal tracks messages received on the overlay feed
	FeedMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_messages_total",
			Help: "Total messages received on the track feed",
		},
	)

	// FeedDecodeErrorsTotal tracks discarded malformed feed payloads
	FeedDecodeErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_decode_errors_total",
			Help: "Total malformed feed payloads discarded",
		},
	)

	// OverlayRendersTotal tracks re-renders of the overlay surface
	OverlayRendersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overlay_renders_total",
			Help: "Total re-renders of the overlay surface",
		},
	)
)
