package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	if s.feedReady != nil && !s.feedReady() {
		return c.JSON(503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "feed",
		})
	}

	return c.JSON(200, map[string]any{
		"status":  "ready",
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
