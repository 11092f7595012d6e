package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

func openStores(t *testing.T) map[string]ports.StateStore {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := Open(domain.StorageSettings{Backend: "sqlite", Path: filepath.Join(dir, "db", "state.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	file, err := Open(domain.StorageSettings{Backend: "file", Path: filepath.Join(dir, "files")})
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	t.Cleanup(func() {
		sqlite.Close()
		file.Close()
	})
	return map[string]ports.StateStore{"sqlite": sqlite, "file": file}
}

func TestStateStoreContract(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, found, err := store.Get(ctx, domain.KeyHistory); err != nil || found {
				t.Fatalf("empty store Get() = found %v, err %v", found, err)
			}

			if err := store.Set(ctx, domain.KeyHistory, `[{"id":"1"}]`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Set(ctx, domain.KeyHistory, `[]`); err != nil {
				t.Fatalf("overwrite error = %v", err)
			}
			if err := store.Set(ctx, domain.KeyAPIKey, ""); err != nil {
				t.Fatalf("Set(empty) error = %v", err)
			}

			got, found, err := store.Get(ctx, domain.KeyHistory)
			if err != nil || !found || got != "[]" {
				t.Fatalf("Get() = %q, %v, %v", got, found, err)
			}
			if v, found, _ := store.Get(ctx, domain.KeyAPIKey); !found || v != "" {
				t.Fatalf("empty value should be stored: %q %v", v, found)
			}

			if err := store.Delete(ctx, domain.KeyHistory); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := store.Delete(ctx, domain.KeyHistory); err != nil {
				t.Fatalf("second Delete() error = %v", err)
			}
			if _, found, _ := store.Get(ctx, domain.KeyHistory); found {
				t.Fatal("key still present after Delete")
			}
			if store.Location() == "" {
				t.Error("Location() is empty")
			}
		})
	}
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set(ctx, domain.KeyTheme, "false"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if v, found, err := second.Get(ctx, domain.KeyTheme); err != nil || !found || v != "false" {
		t.Fatalf("Get() = %q, %v, %v", v, found, err)
	}
}

func TestFileStoreRejectsUnsafeKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := store.Set(context.Background(), key, "x"); err == nil {
			t.Errorf("Set(%q) should fail", key)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(domain.StorageSettings{Backend: "redis"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSQLiteStoreIsOwnerOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	fresh := filepath.Join(dir, "state", "vibegen.db")
	legacy := filepath.Join(dir, "legacy.db")
	if err := os.WriteFile(legacy, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{fresh, legacy} {
		store, err := NewSQLiteStore(path)
		if err != nil {
			t.Fatalf("NewSQLiteStore(%s) error = %v", path, err)
		}
		if err := store.Set(context.Background(), domain.KeyAPIKey, "sk-secret"); err != nil {
			t.Fatal(err)
		}
		store.Close()

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			t.Errorf("%s mode = %v, want owner-only", filepath.Base(path), perm)
		}
	}
}
