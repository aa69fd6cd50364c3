package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoragePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "cart.db")

	s, err := NewStorage(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, found, err := s.Get(ctx, "@RocketShoes:cart"); err != nil || found {
		t.Fatalf("found = %v, err = %v", found, err)
	}
	if err := s.Set(ctx, "@RocketShoes:cart", []byte(`[{"id":1,"amount":1}]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "@RocketShoes:cart", []byte(`[{"id":1,"amount":2}]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewStorage(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	value, found, err := reopened.Get(ctx, "@RocketShoes:cart")
	if err != nil || !found {
		t.Fatalf("found = %v, err = %v", found, err)
	}
	if string(value) != `[{"id":1,"amount":2}]` {
		t.Fatalf("value = %s", value)
	}
	if err := reopened.Ping(ctx); err != nil {
		t.Fatal(err)
	}
}
