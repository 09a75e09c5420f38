package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// defaultAssignmentSchedule assigns the backlog every day at 06:00.
const defaultAssignmentSchedule = "0 0 6 * * *"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	FootCapacity int
	BikeCapacity int
	AutoCapacity int

	AssignmentSchedule string
	AssignmentTimeout  time.Duration

	// RateLimit is requests per second per client IP; zero disables limiting.
	RateLimit       float64
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads configuration in order: envFile (if present), environment, args.
// Later sources override earlier ones.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("env file not loaded", "file", envFile, "error", err)
		}
	}

	var (
		cfg       Config
		logLevel  string
		parseErrs []error
	)

	intEnv := func(key string, def int) int {
		v, err := envInt(key, def)
		parseErrs = append(parseErrs, err)
		return v
	}

	fs := pflag.NewFlagSet("lavka", pflag.ContinueOnError)
	fs.StringVar(&cfg.HTTPPort, "http-port", envString("HTTP_PORT", "8080"), "HTTP port to listen on")
	fs.StringVar(&cfg.DBHost, "db-host", envString("DB_HOST", "localhost"), "PostgreSQL host")
	fs.StringVar(&cfg.DBPort, "db-port", envString("DB_PORT", "5432"), "PostgreSQL port")
	fs.StringVar(&cfg.DBUser, "db-user", envString("DB_USER", "postgres"), "PostgreSQL user")
	fs.StringVar(&cfg.DBPassword, "db-password", envString("DB_PASSWORD", "password"), "PostgreSQL password")
	fs.StringVar(&cfg.DBName, "db-name", envString("DB_NAME", "lavka"), "PostgreSQL database")
	fs.StringVar(&cfg.DBSslMode, "db-sslmode", envString("DB_SSLMODE", "disable"), "PostgreSQL sslmode")
	fs.IntVar(&cfg.FootCapacity, "foot-capacity", intEnv("FOOT_CAPACITY", 2), "orders per FOOT courier per assignment")
	fs.IntVar(&cfg.BikeCapacity, "bike-capacity", intEnv("BIKE_CAPACITY", 4), "orders per BIKE courier per assignment")
	fs.IntVar(&cfg.AutoCapacity, "auto-capacity", intEnv("AUTO_CAPACITY", 7), "orders per AUTO courier per assignment")
	schedule, ok := os.LookupEnv("ASSIGNMENT_SCHEDULE")
	if !ok {
		schedule = defaultAssignmentSchedule
	}
	fs.StringVar(&cfg.AssignmentSchedule, "assignment-schedule", schedule,
		"cron schedule (with seconds) of the assignment job, empty disables it")

	timeout, err := envDuration("ASSIGNMENT_TIMEOUT", 30*time.Second)
	parseErrs = append(parseErrs, err)
	fs.DurationVar(&cfg.AssignmentTimeout, "assignment-timeout", timeout, "time limit of a scheduled assignment run")

	rateLimit, err := envFloat("RATE_LIMIT", 10)
	parseErrs = append(parseErrs, err)
	fs.Float64Var(&cfg.RateLimit, "rate-limit", rateLimit, "requests per second per client, 0 disables the limit")

	fs.StringVar(&logLevel, "log-level", envString("LOG_LEVEL", "info"), "debug, info, warn or error")

	shutdown, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	parseErrs = append(parseErrs, err)
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", shutdown, "graceful shutdown limit")

	if err = errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	if err = fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if err = cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT: %q", c.HTTPPort))
	}
	for name, capacity := range map[string]int{
		"FOOT_CAPACITY": c.FootCapacity,
		"BIKE_CAPACITY": c.BikeCapacity,
		"AUTO_CAPACITY": c.AutoCapacity,
	} {
		if capacity < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative: %d", name, capacity))
		}
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must not be negative: %v", c.RateLimit))
	}

	return errors.Join(errs...)
}

func envString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
