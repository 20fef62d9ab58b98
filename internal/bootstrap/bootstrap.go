// Package bootstrap wires the catalog, sessions and health check from
// configuration. Both servers start through it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizarre-bazaar/internal/config"
	"bizarre-bazaar/internal/database"
	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/metrics"
	"bizarre-bazaar/internal/repository"
	"bizarre-bazaar/internal/seed"
	"bizarre-bazaar/internal/service"
)

type Runtime struct {
	Catalog  *service.CatalogService
	Sessions *service.SessionService
	Health   *service.HealthService
	Metrics  *metrics.Metrics

	source  seed.Source
	closers []func(context.Context) error
}

// New opens the configured seed source, loads and validates the catalog and
// builds the services. Database handles stay open for health checks and
// reloads until Close.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{Metrics: metrics.New()}
	deps := map[string]service.Pinger{}

	switch cfg.SeedSource {
	case config.SeedMongo:
		db, err := database.Instance(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		rt.source = seed.MongoSource{DB: db.Database}
		rt.closers = append(rt.closers, db.Close)
		deps["mongodb"] = db
	case config.SeedSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		rt.source = seed.SQLiteSource{DB: db.DB}
		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		deps["sqlite"] = db
	default:
		rt.source = seed.EmbeddedSource{}
	}

	catalog, err := seed.Load(ctx, rt.source)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	repo := repository.NewCatalogRepository(catalog)
	rt.Catalog = service.NewCatalogService(repo, rt.Metrics)
	rt.Sessions = service.NewSessionService(rt.Catalog, rt.Metrics,
		service.WithSessionIdleTTL(time.Duration(cfg.SessionIdleTTLMs)*time.Millisecond),
		service.WithMaxSessions(int(cfg.SessionMax)),
	)
	rt.Health = service.NewHealthService(rt.Catalog, rt.source.Name(), deps)

	logger.Info(ctx, "Catalog ready",
		slog.String("seed_source", rt.source.Name()),
		slog.Int("products", len(catalog.Products)),
		slog.Int("suppliers", len(catalog.Suppliers)),
		slog.Int("reviews", len(catalog.Reviews)),
	)
	return rt, nil
}

// Reload reads the seed source again and replaces the in-memory catalog. On
// error the current catalog is kept.
func (rt *Runtime) Reload(ctx context.Context) error {
	catalog, err := seed.Load(ctx, rt.source)
	if err != nil {
		logger.Error(ctx, "Seed reload failed, keeping current catalog", slog.String("error", err.Error()))
		return err
	}
	rt.Catalog.Reload(ctx, catalog)
	return nil
}

// ReloadOnHangup reloads the catalog on every SIGHUP until ctx ends.
func (rt *Runtime) ReloadOnHangup(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info(ctx, "SIGHUP received, reloading catalog")
			_ = rt.Reload(ctx)
		}
	}
}

func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i](ctx))
	}
	rt.closers = nil
	return errors.Join(errs...)
}
