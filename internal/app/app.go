package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yuzvak/rocketshoes-cart/internal/application/use_cases"
	"github.com/yuzvak/rocketshoes-cart/internal/config"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/catalog"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/handlers"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/notify"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence"
	redisstore "github.com/yuzvak/rocketshoes-cart/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/clock"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// App holds the wired cart store and the resources backing it.
type App struct {
	Store   *use_cases.CartStore
	Backend *persistence.Backend
	Clock   clock.Clock

	notifyRedis *redisstore.Connection
}

// Build opens storage, the catalog client and notification sinks and loads the
// persisted cart. extraSinks are added after the log sink.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, extraSinks ...notify.Sink) (*App, error) {
	backend, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{Backend: backend, Clock: clock.NewRealClock()}

	sinks := []notify.Sink{notify.NewLogSink(log)}
	sinks = append(sinks, extraSinks...)

	if channel := cfg.Notify.RedisChannel; channel != "" {
		conn := backend.Redis
		if conn == nil {
			conn, err = redisstore.NewConnection(ctx, cfg.Redis)
			if err != nil {
				_ = backend.Close()
				return nil, fmt.Errorf("connect to redis for notifications: %w", err)
			}
			a.notifyRedis = conn
		}
		sinks = append(sinks, notify.NewRedisSink(conn.GetClient(), channel))
		log.Info("Publishing notifications to redis", "channel", channel)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, &http.Client{}, cfg.Catalog.Timeout(), log)

	store, err := use_cases.NewCartStore(ctx,
		backend.Storage,
		client,
		notify.NewDispatcher(log, sinks...),
		log,
		use_cases.WithStorageKey(cfg.Storage.Key),
		use_cases.WithClock(a.Clock),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Store = store

	return a, nil
}

// HealthChecks lists the dependencies /health reports on.
func (a *App) HealthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"storage": a.Backend.Ping,
	}
	if a.notifyRedis != nil {
		checks["notify_redis"] = func(ctx context.Context) error {
			return a.notifyRedis.GetClient().Ping(ctx).Err()
		}
	}
	return checks
}

func (a *App) Close() error {
	var firstErr error
	if a.notifyRedis != nil {
		firstErr = a.notifyRedis.Close()
	}
	if err := a.Backend.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
