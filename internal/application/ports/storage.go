package ports

import "context"

// Storage is a durable key/value store holding the persisted cart document.
type Storage interface {
	// Get returns the value stored under key. The bool is false when the key
	// is absent; that is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by storages backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
