package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountshttp "github.com/s-urunov-dev/bookstore/internal/accounts/adapters/http"
	accountspostgres "github.com/s-urunov-dev/bookstore/internal/accounts/adapters/postgres"
	accountsapp "github.com/s-urunov-dev/bookstore/internal/accounts/app"
	"github.com/s-urunov-dev/bookstore/internal/auth"
	cataloghttp "github.com/s-urunov-dev/bookstore/internal/catalog/adapters/http"
	catalogpostgres "github.com/s-urunov-dev/bookstore/internal/catalog/adapters/postgres"
	catalogapp "github.com/s-urunov-dev/bookstore/internal/catalog/app"
	"github.com/s-urunov-dev/bookstore/internal/config"
	"github.com/s-urunov-dev/bookstore/internal/database"
	idempostgres "github.com/s-urunov-dev/bookstore/internal/idempotency/postgres"
	"github.com/s-urunov-dev/bookstore/internal/kafka"
	"github.com/s-urunov-dev/bookstore/internal/orders/adapters"
	ordershttp "github.com/s-urunov-dev/bookstore/internal/orders/adapters/http"
	orderspostgres "github.com/s-urunov-dev/bookstore/internal/orders/adapters/postgres"
	ordersapp "github.com/s-urunov-dev/bookstore/internal/orders/app"
	ordersmetrics "github.com/s-urunov-dev/bookstore/internal/orders/metrics"
	statshttp "github.com/s-urunov-dev/bookstore/internal/stats/adapters/http"
	statspostgres "github.com/s-urunov-dev/bookstore/internal/stats/adapters/postgres"
	"github.com/s-urunov-dev/bookstore/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
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

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed successfully")
	}

	meter := otel.Meter(cfg.Service.Name)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create kafka metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := ordershttp.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	accountsRepo := accountspostgres.NewRepository(pool)
	accountsService := accountsapp.NewService(accountsRepo, tokenIssuer, logger)
	authMiddleware := auth.NewMiddleware(tokenIssuer, accountsService)

	catalogRepo := catalogpostgres.NewRepository(pool)
	catalogService := catalogapp.NewService(catalogRepo, logger)

	ordersRepo := adapters.NewObservableRepository(orderspostgres.NewRepository(pool), dbMetrics)
	eventBus := adapters.NewObservableEventBus(kafka.NewNoopEventBus(), kafkaMetrics)
	idemStore := idempostgres.NewStore(pool)
	ordersService := ordersapp.NewService(ordersRepo, eventBus, idemStore, logger, orderMetrics)

	statsRepo := statspostgres.NewRepository(pool)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	})

	accountshttp.NewHandler(accountsService).Register(mux, authMiddleware)
	cataloghttp.NewHandler(catalogService).Register(mux, authMiddleware)
	ordershttp.NewHandler(ordersService).Register(mux, authMiddleware)
	statshttp.NewHandler(statsRepo).Register(mux, authMiddleware)

	handler := withRecovery(withLogging(ordershttp.WithMetrics(mux, httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
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

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.Info("http request", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
