package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/yuzvak/rocketshoes-cart/internal/config"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

func TestOpenLocalDrivers(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{config.DriverMemory, config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.Default()
			cfg.Storage.Driver = driver
			cfg.Storage.FilePath = filepath.Join(dir, driver, "cart.json")
			cfg.Storage.SQLitePath = filepath.Join(dir, driver, "cart.db")

			b, err := Open(ctx, cfg, logger.NewNop())
			if err != nil {
				t.Fatal(err)
			}
			defer b.Close()

			if err := b.Storage.Set(ctx, cfg.Storage.Key, []byte(`[]`)); err != nil {
				t.Fatal(err)
			}
			value, found, err := b.Storage.Get(ctx, cfg.Storage.Key)
			if err != nil || !found || string(value) != `[]` {
				t.Fatalf("value = %s, found = %v, err = %v", value, found, err)
			}
			if err := b.Ping(ctx); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestOpenRedisSharesConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Storage.Driver = config.DriverRedis
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mustPort(t, mr.Port())

	b, err := Open(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if b.Redis == nil {
		t.Fatal("expected shared redis connection")
	}
	if err := b.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "floppy"

	_, err := Open(context.Background(), cfg, logger.NewNop())
	if !errors.Is(err, domainErrors.ErrUnknownStorageDriver) {
		t.Fatalf("err = %v", err)
	}
}

func mustPort(t *testing.T, s string) int {
	t.Helper()
	port, err := strconv.Atoi(s)
	if err != nil {
		t.Fatal(err)
	}
	return port
}
