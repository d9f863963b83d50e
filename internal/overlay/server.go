package overlay

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/config"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/version"
)

// pageTemplate wraps the overlay surface in a minimal document for the
// browser source. Visual styling is supplied externally by the broadcast
// scene; the refresh keeps the surface current between track loads.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="1">
<link rel="stylesheet" href="overlay.css">
<title>Now Playing</title>
</head>
<body>
{{.Surface}}
</body>
</html>
`

// Server hosts the rendered overlay surface over HTTP.
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	display   *Display
	page      *template.Template
	startTime time.Time
}

func NewServer(cfg *config.Config, display *Display) (*Server, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay page template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		config:    cfg,
		display:   display,
		page:      page,
		startTime: time.Now(),
	}

	e.GET("/", srv.handleIndex)
	e.GET("/health/live", srv.handleLiveness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/version", srv.handleVersion)

	return srv, nil
}

func (s *Server) handleIndex(c echo.Context) error {
	data := map[string]any{
		// The surface is produced by our own template; re-escaping it here
		// would mangle the markup.
		"Surface": template.HTML(s.display.Rendered()),
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(200)
	return s.page.Execute(c.Response(), data)
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.OverlayPort))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
