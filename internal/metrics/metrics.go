// Package metrics defines the prometheus collectors for runnerd and the
// /metrics handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runnerd_runs_total",
			Help: "Total run and runscript requests by outcome",
		},
		[]string{"kind", "status"},
	)

	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runnerd_run_duration_seconds",
			Help:    "Wall time from spawn to exit of executed commands",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 60.0, 300.0},
		},
		[]string{"kind"},
	)

	FilesServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runnerd_files_served_total",
			Help: "Total /api/file requests by outcome",
		},
		[]string{"status"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runnerd_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		RunsTotal,
		RunDuration,
		FilesServedTotal,
		HTTPRequestsTotal,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// EchoMiddleware returns Echo middleware that counts HTTP requests.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()
			return err
		}
	}
}

// ObserveRun records one completed run request.
func ObserveRun(kind, status string, elapsed time.Duration) {
	RunsTotal.WithLabelValues(kind, status).Inc()
	RunDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
