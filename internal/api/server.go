// Package api exposes the runnerd HTTP surface: synchronous command and
// script execution plus file fetch out of the fixed working directory.
package api

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/runnerhq/runnerd/internal/metrics"
	"github.com/runnerhq/runnerd/internal/runner"
	"github.com/runnerhq/runnerd/pkg/types"
)

// Server holds the API server dependencies.
type Server struct {
	echo   *echo.Echo
	runner *runner.Runner
	info   types.InfoResponse
}

// NewServer creates the API server with all routes configured. The info
// response is computed here, once, and never changes afterwards.
func NewServer(r *runner.Runner, version string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "{unknown}"
	}

	s := &Server{
		echo:   e,
		runner: r,
		info: types.InfoResponse{
			Version:    version,
			APIVersion: types.APIVersion,
			Hostname:   hostname,
			OS:         runtime.GOOS,
			WorkDir:    r.Root().Path(),
		},
	}

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(metrics.EchoMiddleware())

	// Liveness probe for container healthchecks (no body contract).
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	api.GET("/info", s.getInfo)
	api.POST("/run", s.runCommand)
	api.POST("/runscript", s.runScript)
	api.GET("/file", s.getFile)

	return s
}

// Start starts the HTTP server on the given address and blocks.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server, letting in-flight runs finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) getInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.info)
}
