package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"logvault/internal/logstore/persistence"
	"logvault/internal/platform/config"
	"logvault/internal/platform/database"
	"logvault/internal/platform/health"
	platformredis "logvault/internal/platform/redis"
	"logvault/migrations"
)

const redisStatsInterval = 15 * time.Second

// backend bundles the selected snapshotter with the resources it owns.
type backend struct {
	persistence.Snapshotter
	// Background is an optional loop tied to the backend (pool stats).
	Background func(ctx context.Context) error
	closers    []func() error
}

func (b *backend) Close() error {
	errs := []error{b.Snapshotter.Close()}
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// openBackend builds the snapshotter selected by PERSISTENCE_BACKEND and
// registers its readiness check.
func openBackend(ctx context.Context, cfg config.Server, reg prometheus.Registerer, checks *health.Handler) (*backend, error) {
	switch cfg.Persistence.Backend {
	case config.BackendPostgres:
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.Persistence.DatabaseURL
		pool, err := database.New(dbCfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(ctx, migrations.FS); err != nil {
			pool.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, err
		}
		checks.RegisterCheck("postgres", pool.Health)
		return &backend{
			Snapshotter: persistence.NewPostgres(pool.DB(), ""),
			closers:     []func() error{pool.Close},
		}, nil

	case config.BackendRedis:
		client, err := platformredis.New(cfg.Redis, platformredis.NewPoolMetrics(reg))
		if err != nil {
			return nil, err
		}
		checks.RegisterCheck("redis", client.Health)
		return &backend{
			Snapshotter: persistence.NewRedis(client.Client, cfg.Persistence.RedisSnapshotKey),
			closers:     []func() error{client.Close},
			Background: func(ctx context.Context) error {
				ticker := time.NewTicker(redisStatsInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						client.RecordPoolStats()
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			},
		}, nil

	case config.BackendPebble:
		snap, err := persistence.OpenPebble(cfg.Persistence.PebbleDir)
		if err != nil {
			return nil, err
		}
		return &backend{Snapshotter: snap}, nil

	case config.BackendFile:
		snap, err := persistence.NewFile(cfg.Persistence.SnapshotPath)
		if err != nil {
			return nil, err
		}
		return &backend{Snapshotter: snap}, nil

	case config.BackendMemory:
		return &backend{Snapshotter: persistence.NewMemory()}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Persistence.Backend)
	}
}
