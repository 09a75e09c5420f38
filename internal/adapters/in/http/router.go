package http

import (
	"log/slog"

	"lavka/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds what NewRouter needs besides the server itself.
type RouterConfig struct {
	Logger            *slog.Logger
	Metrics           *metrics.Collectors
	Gatherer          prometheus.Gatherer
	RequestsPerSecond float64
}

// NewRouter builds the echo instance with middleware and every route registered.
// A non-positive RequestsPerSecond disables rate limiting.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	v, err := NewCustomValidator()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(observability(cfg.Metrics, cfg.Logger))
	if cfg.RequestsPerSecond > 0 {
		e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig(cfg.RequestsPerSecond, cfg.Metrics)))
	}

	e.GET("/ping", server.Ping)
	e.GET("/health", server.Health)
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	e.POST("/couriers", server.CreateCouriers)
	e.GET("/couriers", server.GetCouriers)
	e.GET("/couriers/:courier_id", server.GetCourier)
	e.GET("/couriers/meta-info/:courier_id", server.GetCourierMetaInfo)
	e.GET("/couriers/assignments", server.GetCourierAssignments)

	e.POST("/orders", server.CreateOrders)
	e.GET("/orders", server.GetOrders)
	e.GET("/orders/:order_id", server.GetOrder)
	e.POST("/orders/complete", server.CompleteOrders)
	e.POST("/orders/assign", server.AssignOrders)

	return e, nil
}
