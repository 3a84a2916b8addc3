package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for a service process.
type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	NATS      NATSConfig
	Readiness ReadinessConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	ShutdownGrace int
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

type NATSConfig struct {
	URL                  string
	OrdersCreatedSubject string
}

type ReadinessConfig struct {
	MaxAttempts   int
	RetryInterval time.Duration
}

type TelemetryConfig struct {
	LogLevel      string
	OTLPEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

// Defaults carries the per-service values the shared loader cannot
// guess: both binaries read the same variables but fall back
// differently.
type Defaults struct {
	ServiceName    string
	HTTPPort       int
	MigrationsPath string
}

const (
	defaultShutdownGrace        = 15
	defaultNATSPort             = 4222
	defaultOrdersCreatedSubject = "orders.created"
	defaultSchemaMaxAttempts    = 10
	defaultSchemaRetryInterval  = 3 * time.Second
	defaultServiceVersion       = "0.1.0"
	defaultLogLevel             = "info"
	defaultOTelSampleRate       = 1.0
)

// Load reads configuration from environment variables, applying
// defaults when needed. A .env file is honored when present.
func Load(defaults Defaults) (*Config, error) {
	_ = godotenv.Load()

	httpCfg, err := loadHTTPConfig(defaults.HTTPPort)
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	readinessCfg, err := loadReadinessConfig()
	if err != nil {
		return nil, fmt.Errorf("loading readiness config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Database:  loadDatabaseConfig(defaults.MigrationsPath),
		NATS:      loadNATSConfig(),
		Readiness: readinessCfg,
		Telemetry: telCfg,
		Service:   loadServiceConfig(defaults.ServiceName),
	}, nil
}

func loadHTTPConfig(defaultPort int) (HTTPConfig, error) {
	port := defaultPort
	if value, ok := os.LookupEnv("HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid HTTP_PORT: %w", err)
		}
		port = parsed
	}

	shutdownGrace := defaultShutdownGrace
	if value, ok := os.LookupEnv("SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		shutdownGrace = parsed
	}

	return HTTPConfig{
		Port:          port,
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadDatabaseConfig(defaultMigrationsPath string) DatabaseConfig {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = buildDatabaseURL()
	}

	return DatabaseConfig{
		URL:            databaseURL,
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}
}

func loadNATSConfig() NATSConfig {
	url := os.Getenv("NATS_URL")
	if url == "" {
		host := getEnvOrDefault("NATS_HOST", "localhost")
		url = fmt.Sprintf("nats://%s:%d", host, defaultNATSPort)
	}

	return NATSConfig{
		URL:                  url,
		OrdersCreatedSubject: getEnvOrDefault("ORDERS_CREATED_SUBJECT", defaultOrdersCreatedSubject),
	}
}

func loadReadinessConfig() (ReadinessConfig, error) {
	maxAttempts := defaultSchemaMaxAttempts
	if value, ok := os.LookupEnv("SCHEMA_MAX_ATTEMPTS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return ReadinessConfig{}, fmt.Errorf("invalid SCHEMA_MAX_ATTEMPTS: %w", err)
		}
		maxAttempts = parsed
	}

	retryInterval := defaultSchemaRetryInterval
	if value, ok := os.LookupEnv("SCHEMA_RETRY_INTERVAL"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return ReadinessConfig{}, fmt.Errorf("invalid SCHEMA_RETRY_INTERVAL: %w", err)
		}
		retryInterval = parsed
	}

	return ReadinessConfig{
		MaxAttempts:   maxAttempts,
		RetryInterval: retryInterval,
	}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTLPEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig(defaultName string) ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("SERVICE_NAME", defaultName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: os.Getenv("ENVIRONMENT"),
	}
}

func buildDatabaseURL() string {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "orders")
	sslMode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbName, sslMode,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
