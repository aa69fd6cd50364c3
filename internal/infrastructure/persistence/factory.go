package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/yuzvak/rocketshoes-cart/internal/application/ports"
	"github.com/yuzvak/rocketshoes-cart/internal/config"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/file"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/postgres"
	redisstore "github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/redis"
	s3store "github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/s3"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/sqlite"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// Backend is an opened storage together with whatever must be released on
// shutdown.
type Backend struct {
	Storage ports.Storage
	Driver  string

	// Redis is set when the redis driver is in use so the connection can be
	// shared with other components.
	Redis *redisstore.Connection

	closers []func() error
}

// Ping checks the backing service. Local drivers always succeed.
func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.Storage.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *Backend) Close() error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open builds the storage selected by cfg.Storage.Driver. The context bounds
// the lifetime of background collectors started for SQL backends.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		b.Storage = memory.NewStorage()

	case config.DriverFile:
		b.Storage = file.NewStorage(cfg.Storage.FilePath)

	case config.DriverRedis:
		conn, err := redisstore.NewConnection(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		b.Redis = conn
		b.closers = append(b.closers, conn.Close)
		b.Storage = redisstore.NewStorage(conn)

	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		b.closers = append(b.closers, conn.Close)

		if err := postgres.RunMigrations(ctx, conn, cfg.Database.MigrationsPath, log); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		monitoring.NewDBMetricsCollector(conn.GetDB()).StartCollecting(ctx, 15*time.Second)
		b.Storage = postgres.NewStorage(conn)

	case config.DriverSQLite:
		store, err := sqlite.NewStorage(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, store.Close)
		b.Storage = store

	case config.DriverS3:
		store, err := s3store.NewStorage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		b.Storage = store

	default:
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	log.Info("Storage opened", "driver", cfg.Storage.Driver, "key", cfg.Storage.Key)
	return b, nil
}
