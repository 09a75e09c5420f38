package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lavka/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// observability counts and times every request by route pattern.
func observability(collectors *metrics.Collectors, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			elapsed := time.Since(start)
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			collectors.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			collectors.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())

			logger.InfoContext(c.Request().Context(), "http request",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", method,
				"path", path,
				"status", c.Response().Status,
				"duration", elapsed,
			)
			return nil
		}
	}
}

// rateLimiterConfig limits every client IP to requestsPerSecond.
func rateLimiterConfig(requestsPerSecond float64, collectors *metrics.Collectors) middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/ping", "/health", "/metrics":
				return true
			}
			return false
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(requestsPerSecond),
				ExpiresIn: time.Minute,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden).SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			collectors.RateLimitExceeded.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests).SetInternal(err)
		},
	}
}
