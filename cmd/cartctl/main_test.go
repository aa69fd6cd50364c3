package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliItem struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

func writeConfig(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/stock/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"amount":1}`))
	})
	mux.HandleFunc("/products/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"title":"Tênis Adidas Duramo Lite 2.0","price":219.9}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[catalog]\nbase_url = \"" + srv.URL + "\"\n\n[storage]\ndriver = \"file\"\nfile_path = \"" +
		filepath.ToSlash(filepath.Join(dir, "cart.json")) + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeItems(t *testing.T, out string) []cliItem {
	t.Helper()
	var items []cliItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return items
}

func TestCartctlAddListRemove(t *testing.T) {
	cfg := writeConfig(t)

	out, _, err := run(t, "--config", cfg, "add", "7")
	if err != nil {
		t.Fatal(err)
	}
	if items := decodeItems(t, out); len(items) != 1 || items[0].Amount != 1 {
		t.Fatalf("items = %+v", items)
	}

	out, stderr, err := run(t, "--config", cfg, "add", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "requested quantity out of stock") {
		t.Fatalf("stderr = %q", stderr)
	}
	if items := decodeItems(t, out); items[0].Amount != 1 {
		t.Fatalf("items = %+v", items)
	}

	out, _, err = run(t, "--config", cfg, "list")
	if err != nil {
		t.Fatal(err)
	}
	if items := decodeItems(t, out); len(items) != 1 || items[0].ID != 7 {
		t.Fatalf("items = %+v", items)
	}

	out, _, err = run(t, "--config", cfg, "remove", "7")
	if err != nil {
		t.Fatal(err)
	}
	if items := decodeItems(t, out); len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}

func TestCartctlRejectsBadArguments(t *testing.T) {
	cfg := writeConfig(t)

	if _, _, err := run(t, "--config", cfg, "add", "shoe"); err == nil {
		t.Fatal("expected error for non numeric id")
	}
	if _, _, err := run(t, "--config", cfg, "set", "7", "many"); err == nil {
		t.Fatal("expected error for non numeric amount")
	}
	if _, _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "list"); err == nil {
		t.Fatal("expected error for explicit missing config")
	}
}

func TestCartctlRemoveUnknownZeroID(t *testing.T) {
	cfg := writeConfig(t)

	out, stderr, err := run(t, "--config", cfg, "remove", "0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "error removing product") {
		t.Fatalf("stderr = %q", stderr)
	}
	if items := decodeItems(t, out); len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}
