package memory

import (
	"context"
	"testing"
)

func TestStorageGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	if _, found, err := s.Get(ctx, "k"); err != nil || found {
		t.Fatalf("Get on empty storage = found %v, err %v", found, err)
	}

	value := []byte(`[{"id":1,"amount":1}]`)
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'

	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if string(got) != `[{"id":1,"amount":1}]` {
		t.Fatalf("got %s; caller mutation leaked into storage", got)
	}
}
