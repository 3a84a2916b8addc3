package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingadapters "github.com/dejobratic/orderbilling/internal/billing/adapters"
	billingpostgres "github.com/dejobratic/orderbilling/internal/billing/adapters/postgres"
	billingapp "github.com/dejobratic/orderbilling/internal/billing/app"
	billingmetrics "github.com/dejobratic/orderbilling/internal/billing/metrics"
	"github.com/dejobratic/orderbilling/internal/config"
	"github.com/dejobratic/orderbilling/internal/database"
	"github.com/dejobratic/orderbilling/internal/health"
	natsadapter "github.com/dejobratic/orderbilling/internal/nats"
	"github.com/dejobratic/orderbilling/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load(config.Defaults{
		ServiceName:    "billing",
		HTTPPort:       8081,
		MigrationsPath: "migrations/billing",
	})
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTLPEndpoint != "" {
		tel, err := telemetry.Initialize(ctx, telemetry.Config{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Environment:    cfg.Service.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
			EnableTracing:  cfg.Telemetry.EnableTracing,
			EnableMetrics:  cfg.Telemetry.EnableMetrics,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			logger.Error("failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	err = database.AwaitSchema(ctx, logger, cfg.Readiness.MaxAttempts, cfg.Readiness.RetryInterval, func() error {
		if err := database.CheckHealth(ctx, pool); err != nil {
			return err
		}
		return database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath)
	})
	if err != nil {
		logger.Error("store never became ready", "error", err)
		os.Exit(1)
	}

	conn, err := natsadapter.Connect(cfg.NATS.URL, cfg.Service.Name)
	if err != nil {
		logger.Error("failed to connect to nats", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	meter := otel.Meter("github.com/dejobratic/orderbilling/cmd/billing")

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	consumerMetrics, err := billingmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create billing metrics", "error", err)
		os.Exit(1)
	}

	subscription, err := natsadapter.Subscribe(conn, cfg.NATS.OrdersCreatedSubject)
	if err != nil {
		logger.Error("failed to subscribe", "subject", cfg.NATS.OrdersCreatedSubject, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := subscription.Unsubscribe(); err != nil {
			logger.Error("unsubscribe failed", "error", err)
		}
	}()

	bills := billingadapters.NewObservableRepository(billingpostgres.NewRepository(pool), dbMetrics)
	consumer := billingapp.NewConsumer(subscription, bills, logger, consumerMetrics)

	go func() {
		if err := consumer.Run(ctx); err != nil {
			logger.Error("billing consumer stopped", "error", err)
			stop()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", health.Handler(cfg.Service.Environment))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}
