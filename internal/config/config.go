package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the tracker CLI, loaded from
// ~/.workhours/config.yaml. Every field has a working default so a missing
// file is not an error.
type Config struct {
	// ServerURL is the base URL of the Work Hours server.
	ServerURL string `yaml:"server_url,omitempty"`

	// APIToken authenticates API calls. Also settable via
	// WORKHOURS_API_TOKEN, which wins over the file.
	APIToken string `yaml:"api_token,omitempty"`

	// StateDir holds the session state file and the catalog cache.
	StateDir string `yaml:"state_dir,omitempty"`

	// ListenAddr is the bind address for `tracker serve`.
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// LogLevel is a logrus level name ("info" by default).
	LogLevel string `yaml:"log_level,omitempty"`
}

// Load reads the config file if present and applies env overrides and
// defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	path, err := configPath()
	if err == nil {
		data, readErr := os.ReadFile(path)
		if readErr == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKHOURS_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("WORKHOURS_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("WORKHOURS_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = "https://workhours.app"
	}
	if cfg.StateDir == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			cfg.StateDir = filepath.Join(homeDir, ".workhours")
		} else {
			cfg.StateDir = ".workhours"
		}
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8477"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".workhours", "config.yaml"), nil
}
