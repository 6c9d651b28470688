package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir is prepended to every relative data file path below.
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	// InventoryJSON is the document the inventory is loaded from at startup and saved to on exit.
	InventoryJSON string `yaml:"inventory_json" env:"INVENTORY_JSON"`
	// InventoryCSV is the delimited file used by CSV export and import.
	InventoryCSV string `yaml:"inventory_csv" env:"INVENTORY_CSV"`

	UserLog    string `yaml:"user_log" env:"USER_LOG"`
	UserEmails string `yaml:"user_emails" env:"USER_EMAILS"`

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

func Default() Config {
	return Config{
		DataDir:       ".",
		InventoryJSON: "inventory.json",
		InventoryCSV:  "inventory.csv",
		UserLog:       "user_log.csv",
		UserEmails:    "user_emails.csv",
		LogFormat:     "text",
		LogLevel:      "warn",
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then lets environment variables override individual fields.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("config file %s not found", path)
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	for _, p := range []*string{&cfg.InventoryJSON, &cfg.InventoryCSV, &cfg.UserLog, &cfg.UserEmails} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(cfg.DataDir, *p)
		}
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("log format must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}
