package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/broadcast"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/config"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	hub       *broadcast.Hub
	feedReady func() bool
	startTime time.Time
}

// NewServer builds the metadata push server. feedReady reports whether the
// track-load feed connection is up; it backs the readiness probe and may be
// nil when there is no feed to wait for.
func NewServer(cfg *config.Config, hub *broadcast.Hub, feedReady func() bool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		config:    cfg,
		hub:       hub,
		feedReady: feedReady,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
