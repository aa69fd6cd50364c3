package postgres

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListMigrationsOrdersUpFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.up.sql", "001_a.up.sql", "001_a.down.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.up.sql"), 0o700); err != nil {
		t.Fatal(err)
	}

	got, err := listMigrations(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"001_a.up.sql", "002_b.up.sql"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestListMigrationsMissingDir(t *testing.T) {
	if _, err := listMigrations(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error")
	}
}

func TestShippedMigrationCreatesStorageTable(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_create_cart_storage.up.sql"))
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"cart_storage", "PRIMARY KEY", "updated_at"} {
		if !strings.Contains(string(content), part) {
			t.Fatalf("migration lacks %q:\n%s", part, content)
		}
	}
}

