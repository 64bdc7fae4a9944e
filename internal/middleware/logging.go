// Package middleware provides Echo middleware for logging and security.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger returns an Echo middleware that logs each exchange with slog.
// Server-side failures are logged at error level.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"remote_ip", c.RealIP(),
				"bytes_out", res.Size,
			}
			if err != nil {
				attrs = append(attrs, "err", err)
			}

			// When a handler returns an error the response has not been
			// written yet; Echo's central error handler does that later, so
			// res.Status alone is not enough to spot a failure here.
			if err != nil || res.Status >= http.StatusInternalServerError {
				logger.Error("exchange", attrs...)
			} else {
				logger.Info("exchange", attrs...)
			}

			return err
		}
	}
}
