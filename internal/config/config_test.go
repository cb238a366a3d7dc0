package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{EnvServerURL, EnvCatalog, EnvLogFile, EnvLogLevel, EnvExportDir} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL || cfg.LogFile != DefaultLogFile || cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CatalogPath != "" {
		t.Fatalf("expected embedded catalog by default, got %q", cfg.CatalogPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "https://planner.example.com/calculate")
	t.Setenv(EnvCatalog, "/etc/planner/catalog.yaml")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvExportDir, " /tmp/plans ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "https://planner.example.com/calculate" || cfg.CatalogPath != "/etc/planner/catalog.yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.ExportDir != "/tmp/plans" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(EnvServerURL, "localhost:5000")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "absolute") {
		t.Fatalf("expected url error, got %v", err)
	}

	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvLogLevel, "loud")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}
