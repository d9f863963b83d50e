// Package server implements the HTTP server using Echo framework.
//
// Routes: WebSocket push of track-load metadata (/ws), health probes,
// Prometheus metrics, version. Handlers split by concern: handlers_ws.go,
// handlers_health.go.
package server
