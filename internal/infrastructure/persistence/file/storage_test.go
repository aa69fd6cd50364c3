package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStorageRoundTripAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cart.json")

	s := NewStorage(path)
	if _, found, err := s.Get(ctx, "@RocketShoes:cart"); err != nil || found {
		t.Fatalf("found = %v, err = %v", found, err)
	}

	if err := s.Set(ctx, "@RocketShoes:cart", []byte(`[{"id":1,"amount":1}]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "other", []byte(`x`)); err != nil {
		t.Fatal(err)
	}

	reopened := NewStorage(path)
	value, found, err := reopened.Get(ctx, "@RocketShoes:cart")
	if err != nil || !found {
		t.Fatalf("found = %v, err = %v", found, err)
	}
	if string(value) != `[{"id":1,"amount":1}]` {
		t.Fatalf("value = %s", value)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := NewStorage(path).Get(context.Background(), "k"); err == nil {
		t.Fatal("expected decode error")
	}
}
