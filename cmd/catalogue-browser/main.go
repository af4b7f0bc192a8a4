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

	"github.com/terra-clan/catalogue-browser/internal/api"
	"github.com/terra-clan/catalogue-browser/internal/catalog"
	"github.com/terra-clan/catalogue-browser/internal/cleanup"
	"github.com/terra-clan/catalogue-browser/internal/config"
	"github.com/terra-clan/catalogue-browser/internal/models"
	"github.com/terra-clan/catalogue-browser/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting catalogue-browser",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"catalogue_source", cfg.Catalogue.Source,
		"session_backend", cfg.Session.Backend,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	courses, err := loadCatalogue(initCtx, cfg)
	if err != nil {
		slog.Error("failed to load catalogue", "error", err)
		os.Exit(1)
	}
	store := catalog.New(courses)
	slog.Info("catalogue ready", "courses", store.Len())

	sessionStore, err := newSessionStore(initCtx, cfg)
	if err != nil {
		slog.Error("failed to create session store", "error", err)
		os.Exit(1)
	}
	sessions := session.NewManager(sessionStore, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis expires keys itself; only sweepable stores need the worker
	if sweeper, ok := sessionStore.(session.Sweeper); ok {
		cleanup.NewCleaner(sweeper, cfg.Cleanup.Interval).Start(ctx)
	}

	server := api.NewServer(cfg.Server, store, sessions)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := sessionStore.Close(); err != nil {
		slog.Error("session store close error", "error", err)
	}

	slog.Info("catalogue-browser stopped")
}

// loadCatalogue reads the course catalogue once from the configured source
func loadCatalogue(ctx context.Context, cfg *config.Config) ([]models.Course, error) {
	if cfg.Catalogue.Source != config.SourcePostgres {
		return catalog.Load(cfg.Catalogue.Path)
	}

	source, err := catalog.NewPostgresSource(ctx, catalog.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxLifetime:  cfg.Database.MaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	// the catalogue is immutable after load, so the pool is not kept
	defer source.Close()

	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := catalog.RunMigrations(ctx, source.Pool(), cfg.Database.MigrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return source.LoadCourses(ctx)
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.Session.Backend == config.BackendRedis {
		return session.NewRedisStore(ctx, session.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Session.TTL)
	}
	return session.NewMemoryStore(cfg.Session.TTL), nil
}
