// Package config holds the runtime settings of the planner: where plans
// are submitted, which catalog is loaded and where logs and exports go.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables read by Load.
const (
	EnvServerURL = "ENCHANT_PLANNER_URL"
	EnvCatalog   = "ENCHANT_PLANNER_CATALOG"
	EnvLogFile   = "ENCHANT_PLANNER_LOG"
	EnvLogLevel  = "ENCHANT_PLANNER_LOG_LEVEL"
	EnvExportDir = "ENCHANT_PLANNER_EXPORT_DIR"
)

const (
	DefaultServerURL = "http://127.0.0.1:5000/calculate"
	DefaultLogFile   = "enchant-planner.log"
	DefaultLogLevel  = "info"
	DefaultExportDir = "."
)

// Config is the planner's runtime configuration.
type Config struct {
	ServerURL   string // Calculation endpoint the form is posted to
	CatalogPath string // Empty means the embedded catalog
	LogFile     string
	LogLevel    string
	ExportDir   string
}

// Load reads the configuration from the environment, falling back to
// defaults for anything unset.
func Load() (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		ServerURL:   get(EnvServerURL, DefaultServerURL),
		CatalogPath: get(EnvCatalog, ""),
		LogFile:     get(EnvLogFile, DefaultLogFile),
		LogLevel:    get(EnvLogLevel, DefaultLogLevel),
		ExportDir:   get(EnvExportDir, DefaultExportDir),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return fmt.Errorf("export directory must not be empty")
	}
	return nil
}
