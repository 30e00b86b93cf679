package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"go-bars-app/internal/adapter/api/rest"
	"go-bars-app/internal/adapter/cache/redis"
	"go-bars-app/internal/adapter/identity"
	"go-bars-app/internal/adapter/places/google"
	repo "go-bars-app/internal/adapter/storage/postgres"
	"go-bars-app/internal/config"
	"go-bars-app/internal/core/service"
	"go-bars-app/internal/observability"
)

// -- MAIN --

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Init Tracing
	tpShutdown, err := observability.InitTracerProvider(ctx, "bars-service", cfg.OtelExporterEndpoint)
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tpShutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Init DB
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Run Migrations (Apply on Startup)
	if err := repo.RunMigrations(ctx, dbPool, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Metrics: DB Stats Poller
	observability.StartDBStatsCollector(ctx, dbPool)

	// Init Cache
	redisAdapter := redis.NewAdapter(cfg.RedisAddr)
	defer redisAdapter.Close()
	cacheSvc := observability.NewInstrumentedCache(redisAdapter)

	// Maps provider
	gateway, err := google.NewGateway(cfg.GooglePlacesAPIKey, logger)
	if err != nil {
		logger.Error("failed to init places gateway", "error", err)
		os.Exit(1)
	}

	// Token verification: our own JWTs first, then Google ID tokens when configured
	verifiers := identity.Chain{identity.NewJWTVerifier(cfg.JWTSecret)}
	if cfg.GoogleClientID != "" {
		verifiers = append(verifiers, identity.NewGoogleVerifier(cfg.GoogleClientID))
	}

	// Repository Init
	favRepo := observability.NewInstrumentedRepository(repo.NewRepository(dbPool))
	userRepo := repo.NewUserRepository(dbPool)

	// Service Init
	workflow := observability.NewInstrumentedWorkflow(
		service.NewWorkflow(favRepo, logger, service.WithTimeout(cfg.WorkflowTimeout)),
	)
	barSvc := service.NewService(favRepo, userRepo, gateway, workflow, cacheSvc, logger)

	// Init Handlers
	handler := rest.NewHandler(barSvc, rest.ContextIdentity{}, logger)

	// Init Router
	router := rest.NewRouter(handler, verifiers, rest.RequestID, rest.Logger(logger), observability.Middleware)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		hctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := dbPool.Ping(hctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := redisAdapter.Ping(hctx); err != nil {
			http.Error(w, "cache unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(mux, "bars-service"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
