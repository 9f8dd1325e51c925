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

	"orlof/internal/audit"
	"orlof/internal/benefit"
	benefithandler "orlof/internal/benefit/handler"
	benefitmetrics "orlof/internal/benefit/metrics"
	"orlof/internal/ingest"
	"orlof/internal/platform/config"
	"orlof/internal/platform/httpserver"
	"orlof/internal/platform/logger"
	"orlof/internal/platform/metrics"
	platformredis "orlof/internal/platform/redis"
	"orlof/internal/profile"
	profilecache "orlof/internal/profile/cache"
	profilehandler "orlof/internal/profile/handler"
	profilemetrics "orlof/internal/profile/metrics"
	"orlof/internal/records"
	recordshandler "orlof/internal/records/handler"
	httptransport "orlof/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, health, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		health = append(health, func(r *http.Request) error {
			return redisClient.Health(r.Context())
		})
	}

	loader := newLoader(cfg, store, log)
	auditInbox := make(chan audit.Event, 256)
	auditPublisher := audit.NewPublisher(auditInbox)
	auditWorker := audit.NewWorker(audit.NewInMemory(), auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()

	if err := load(ctx, cfg, loader); err != nil {
		return fmt.Errorf("initial record load: %w", err)
	}
	auditPublisher.Emit(ctx, audit.Event{
		Action:  audit.ActionSnapshotReload,
		Outcome: audit.OutcomeOK,
	})

	profileOpts := []profile.Option{profile.WithMetrics(profilemetrics.New())}
	if cache := profilecache.NewRedis(redisClient, cfg.ProfileCacheTTL, log); cache != nil {
		profileOpts = append(profileOpts, profile.WithCache(cache))
	}
	profileSvc := profile.NewService(store, profileOpts...)

	benefitSvc := benefit.NewService(store,
		benefit.WithMetrics(benefitmetrics.New()),
		benefit.WithAudit(auditPublisher),
	)

	router := httptransport.NewRouter(log, metrics.New(), health,
		recordshandler.New(store, log),
		profilehandler.New(profileSvc, log),
		benefithandler.New(benefitSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting orlof estimator", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// buildStore picks the record store backend: PostgreSQL when DATABASE_URL is
// set, otherwise process memory.
func buildStore(ctx context.Context, cfg config.Config) (records.Store, []httptransport.HealthChecker, func(), error) {
	if cfg.PostgresURL == "" {
		return records.NewInMemory(), nil, func() {}, nil
	}

	db, err := records.Open(cfg.PostgresURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	store := records.NewPostgres(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	health := []httptransport.HealthChecker{func(r *http.Request) error {
		return db.PingContext(r.Context())
	}}
	return store, health, func() { db.Close() }, nil
}

func newLoader(cfg config.Config, store records.Store, log *slog.Logger) *ingest.Loader {
	return ingest.NewLoader(ingest.NewClient(cfg.RegistryAPIURL, cfg.LabourAPIURL), store, log)
}

func load(ctx context.Context, cfg config.Config, loader *ingest.Loader) error {
	if cfg.DataDir != "" {
		return loader.LoadFromDir(ctx, cfg.DataDir)
	}
	return loader.LoadFromSource(ctx)
}
