package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("ENV")
	os.Unsetenv("CLINIC_DB_PATH")
	os.Unsetenv("EXPORT_DIR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != "clinic.db" {
		t.Errorf("expected clinic.db, got %s", cfg.DatabasePath)
	}
	if cfg.ExportDir != "exports" {
		t.Errorf("expected exports, got %s", cfg.ExportDir)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CLINIC_DB_PATH", "/data/clinic.db")
	t.Setenv("EXPORT_DIR", "/data/exports")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != "/data/clinic.db" {
		t.Errorf("expected /data/clinic.db, got %s", cfg.DatabasePath)
	}
	if cfg.ExportDir != "/data/exports" {
		t.Errorf("expected /data/exports, got %s", cfg.ExportDir)
	}
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
}
