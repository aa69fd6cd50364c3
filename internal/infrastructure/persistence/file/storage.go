package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
)

const driverName = "file"

// Storage keeps all keys in one JSON document on disk, rewritten atomically on
// every Set.
type Storage struct {
	path string
	mu   sync.Mutex
}

func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

func (s *Storage) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	done := monitoring.TimeStorageOperation(driverName, "get")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return nil, false, err
	}

	v, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	done := monitoring.TimeStorageOperation(driverName, "set")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = string(value)

	return s.save(values)
}

func (s *Storage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return values, nil
}

func (s *Storage) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
