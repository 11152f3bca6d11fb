package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/addressbook/internal/config"
	"github.com/mmynk/addressbook/internal/storage/sqlite"
	"github.com/mmynk/addressbook/internal/storage/yamlfile"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("sqlite", func(t *testing.T) {
		store, err := openStore(config.Config{Storage: config.StorageSQLite, DBPath: filepath.Join(dir, "c.db")})
		if err != nil {
			t.Fatalf("openStore failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*sqlite.SQLiteStore); !ok {
			t.Errorf("store = %T, want *sqlite.SQLiteStore", store)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		store, err := openStore(config.Config{Storage: config.StorageYAML, YAMLPath: filepath.Join(dir, "c.yaml")})
		if err != nil {
			t.Fatalf("openStore failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*yamlfile.Store); !ok {
			t.Errorf("store = %T, want *yamlfile.Store", store)
		}
	})
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd(func(context.Context, config.Config) error { return nil })
	for _, name := range []string{"storage", "db", "yaml", "birthday-window", "metrics-addr", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}

func TestRootCmdFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADDRESSBOOK_STORAGE", "postgres")
	t.Setenv("ADDRESSBOOK_BIRTHDAY_WINDOW", "3")
	yamlPath := filepath.Join(t.TempDir(), "c.yaml")

	var got config.Config
	called := false
	cmd := newRootCmd(func(_ context.Context, cfg config.Config) error {
		called = true
		got = cfg
		return nil
	})
	cmd.SetArgs([]string{"--storage", "yaml", "--yaml", yamlPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !called {
		t.Fatal("run function was not called")
	}
	if got.Storage != config.StorageYAML || got.YAMLPath != yamlPath {
		t.Errorf("storage = %q at %q, want yaml at %q", got.Storage, got.YAMLPath, yamlPath)
	}
	if got.BirthdayWindow != 3 {
		t.Errorf("BirthdayWindow = %d, want 3 from env", got.BirthdayWindow)
	}
}

func TestRootCmdRejectsInvalidEnvWithoutOverride(t *testing.T) {
	t.Setenv("ADDRESSBOOK_STORAGE", "postgres")

	cmd := newRootCmd(func(context.Context, config.Config) error {
		t.Error("run function called with invalid config")
		return nil
	})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute accepted unknown storage")
	}
}
