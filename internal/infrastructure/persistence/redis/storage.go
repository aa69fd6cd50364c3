package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
)

const driverName = "redis"

// Storage keeps the cart document as a plain Redis string with no expiry.
type Storage struct {
	client *redis.Client
}

func NewStorage(conn *Connection) *Storage {
	return &Storage{client: conn.GetClient()}
}

func (s *Storage) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	done := monitoring.TimeStorageOperation(driverName, "get")
	defer func() { done(err) }()

	result, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return result, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	done := monitoring.TimeStorageOperation(driverName, "set")
	defer func() { done(err) }()

	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
