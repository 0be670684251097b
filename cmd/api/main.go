// Package main is the entry point for the DynoTrip API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dynotrip/backend/internal/ai"
	"github.com/dynotrip/backend/internal/config"
	"github.com/dynotrip/backend/internal/handler"
	"github.com/dynotrip/backend/internal/middleware"
	"github.com/dynotrip/backend/internal/repo"
	"github.com/dynotrip/backend/internal/service"
	"github.com/dynotrip/backend/internal/session"
	"github.com/dynotrip/backend/internal/share"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Session storage --------------------------------------------------
	// Postgres is optional: without DATABASE_URL, session state lives only in
	// process memory and is lost on restart. Fine for the demo deployment.
	var kv repo.SessionKV
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")
		kv = repo.NewSessionKV(pool)
	} else {
		slog.Warn("DATABASE_URL not set; session state is in-memory only")
		kv = repo.NewMemorySessionKV()
	}
	sessions := session.NewContainer(kv, logger)

	// --- Share store ------------------------------------------------------
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	var shares share.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("redis connection established")
		shares = share.NewRedisStore(rdb, cfg.ShareTTL)
	} else {
		slog.Warn("REDIS_URL not set; share links are in-memory only")
		mem := share.NewMemoryStore(cfg.ShareTTL)
		go share.RunSweeper(sweepCtx, mem, cfg.SweepInterval, logger)
		shares = mem
	}

	// --- Generators -------------------------------------------------------
	mock := ai.NewMockGenerator()
	var gen ai.Generator = mock
	if cfg.AIServiceURL != "" {
		gen = ai.NewHTTPGenerator(cfg.AIServiceURL, nil)
	} else {
		slog.Warn("AI_SERVICE_URL not set; serving deterministic plans")
	}

	// --- Services and handlers --------------------------------------------
	trips := service.NewTripService(sessions, gen, mock)
	shareSvc := service.NewShareService(shares, sessions)
	exportSvc := service.NewExportService(sessions)
	srv := handler.NewServer(trips, shareSvc, exportSvc, cfg.PublicBaseURL)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// rate limit → body cap. RealIP must precede the rate limiter so proxied
	// clients are keyed on their originating address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimitHandler(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The write timeout leaves room for a slow upstream generation call.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
