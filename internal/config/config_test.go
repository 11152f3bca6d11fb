package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ADDRESSBOOK_STORAGE", "ADDRESSBOOK_DB_PATH", "ADDRESSBOOK_YAML_PATH",
		"ADDRESSBOOK_BIRTHDAY_WINDOW", "ADDRESSBOOK_METRICS_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.DBPath != "./data/contacts.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.BirthdayWindow != 7 {
		t.Errorf("BirthdayWindow = %d, want 7", cfg.BirthdayWindow)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDRESSBOOK_STORAGE", "yaml")
	t.Setenv("ADDRESSBOOK_YAML_PATH", "/tmp/book.yaml")
	t.Setenv("ADDRESSBOOK_BIRTHDAY_WINDOW", "14")
	t.Setenv("ADDRESSBOOK_METRICS_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StorageYAML || cfg.YAMLPath != "/tmp/book.yaml" {
		t.Errorf("storage = %q at %q", cfg.Storage, cfg.YAMLPath)
	}
	if cfg.BirthdayWindow != 14 {
		t.Errorf("BirthdayWindow = %d, want 14", cfg.BirthdayWindow)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{Storage: StorageSQLite, BirthdayWindow: 7}, false},
		{"yaml", Config{Storage: StorageYAML}, false},
		{"unknown storage", Config{Storage: "postgres"}, true},
		{"negative window", Config{Storage: StorageSQLite, BirthdayWindow: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDoesNotValidate(t *testing.T) {
	t.Setenv("ADDRESSBOOK_STORAGE", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != "postgres" {
		t.Errorf("Storage = %q, want postgres", cfg.Storage)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted unknown storage")
	}
}
