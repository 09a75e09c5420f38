package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lavka/cmd"
	httpin "lavka/internal/adapters/in/http"
	"lavka/internal/adapters/out/postgres"
	"lavka/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	config, err := cmd.LoadConfig(".env", os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, config, logger)
	stop()
	if err != nil {
		log.Fatalf("lavka stopped: %v", err)
	}
}

func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(config.LogLevel)),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	registry := prometheus.NewRegistry()
	collectors, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, config, gormDB, collectors, logger)
	if err != nil {
		return err
	}

	e, err := httpin.NewRouter(app.CreateHTTPServer(), httpin.RouterConfig{
		Logger:            logger,
		Metrics:           collectors,
		Gatherer:          registry,
		RequestsPerSecond: config.RateLimit,
	})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(config.LogLevel))

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return startWebServer(e, config.HTTPPort, logger)
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func startWebServer(e *echo.Echo, port string, logger *slog.Logger) error {
	address := fmt.Sprintf("0.0.0.0:%s", port)
	logger.Info("http server started", "address", address)

	if err := e.Start(address); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func gormLogLevel(level slog.Level) gormlogger.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return gormlogger.Info
	case level <= slog.LevelWarn:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

func echoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
