package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"httpbridge/internal/bridge"
	"httpbridge/internal/config"
	"httpbridge/internal/metrics"
)

// RegisterRoutes wires the bridge stage and the native route handlers onto
// the Echo instance. The bridge runs for every request and terminates the
// exchange unless the legacy side reports no route matched, in which case the
// native routes below get their turn.
func RegisterRoutes(e *echo.Echo, b *bridge.Bridge, health *HealthHandler, m *metrics.Metrics, cfg *config.Config) {
	e.Use(b.Middleware())

	e.GET("/healthz", health.Healthz)
	e.GET("/bridge/status", health.Status)

	if cfg.Metrics.Enabled && m != nil {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(
			promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
		))
	}
}
