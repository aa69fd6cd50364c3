package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
)

const driverName = "postgres"

// Storage keeps each key as a row in cart_storage.
type Storage struct {
	db *sql.DB
}

func NewStorage(conn *Connection) *Storage {
	return &Storage{db: conn.GetDB()}
}

func (s *Storage) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	done := monitoring.TimeStorageOperation(driverName, "get")
	defer func() { done(err) }()

	query := `SELECT value FROM cart_storage WHERE key = $1`

	row := monitoring.InstrumentQueryRow(ctx, s.db, "SELECT", "cart_storage", query, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	done := monitoring.TimeStorageOperation(driverName, "set")
	defer func() { done(err) }()

	query := `
		INSERT INTO cart_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err = monitoring.InstrumentExec(ctx, s.db, "UPSERT", "cart_storage", query, key, value)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
