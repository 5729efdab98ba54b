package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/page-comments-api/internal/api"
	"github.com/page-comments-api/internal/config"
	"github.com/page-comments-api/internal/database"
	"github.com/page-comments-api/internal/kvstore"
	"github.com/page-comments-api/internal/metrics"
	"github.com/page-comments-api/internal/repository"
	"github.com/page-comments-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

// kvStores are the two expiring namespaces plus whatever must run or close alongside them
type kvStores struct {
	tokens    kvstore.Store
	cooldowns kvstore.Store
	start     func(ctx context.Context)
	close     func()
}

func newKVStores(cfg *config.Config, db *database.DB, log zerolog.Logger) (*kvStores, error) {
	switch cfg.Comments.KVBackend {
	case config.KVBackendPostgres:
		sweeper := kvstore.NewSweeper(db, cfg.Comments.KVSweepInterval, log)
		return &kvStores{
			tokens:    kvstore.NewPostgresStore(db, kvstore.NamespaceTokens),
			cooldowns: kvstore.NewPostgresStore(db, kvstore.NamespaceCooldowns),
			start:     func(ctx context.Context) { go sweeper.Start(ctx) },
			close:     sweeper.Stop,
		}, nil
	case config.KVBackendRedis:
		client := kvstore.NewRedisClient(&cfg.Redis)
		tokens := kvstore.NewRedisStore(client, kvstore.NamespaceTokens)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
		defer cancel()
		if err := tokens.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")

		return &kvStores{
			tokens:    tokens,
			cooldowns: kvstore.NewRedisStore(client, kvstore.NamespaceCooldowns),
			start:     func(context.Context) {},
			close:     func() { client.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown KV backend %q", cfg.Comments.KVBackend)
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, log, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Msg("Starting page comments server...")

	// Run migrations
	if cfg.Server.AutoMigrate {
		if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	// Expiring key-value store for tokens and cooldowns
	kv, err := newKVStores(cfg, db, log)
	if err != nil {
		return err
	}
	defer kv.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv.start(ctx)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	repos := repository.New(db)
	reg.MustRegister(metrics.NewStoredCommentsGauge(repos.Comment.Count, 2*time.Second, log))

	// Initialize services
	services := service.NewServices(service.Deps{
		Tokens:    kv.tokens,
		Cooldowns: kv.cooldowns,
		Repos:     repos,
		Metrics:   collector,
		Config:    cfg.Comments,
		Log:       log,
	})

	// Initialize router
	router := api.NewRouter(api.RouterDeps{
		Services: services,
		Config:   cfg,
		Log:      log,
		Metrics:  collector,
		Gatherer: reg,
		HealthCheckers: map[string]api.HealthChecker{
			"database": api.HealthCheckFunc(db.HealthCheck),
			"kv":       kv.tokens,
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
