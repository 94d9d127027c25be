// ABOUTME: Configuration management for community with YAML config loading.
// ABOUTME: Handles backend URL, board defaults, logging settings, and env overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the backend root used when none is configured.
const DefaultAPIURL = "http://localhost:8080"

// Environment variables that override the config file.
const (
	EnvAPIURL   = "COMMUNITY_API_URL"
	EnvLogLevel = "COMMUNITY_LOG_LEVEL"
	EnvPassword = "COMMUNITY_PASSWORD"
)

// Config stores community configuration loaded from ~/.config/community/config.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Account AccountConfig `yaml:"account"`
	Board   BoardConfig   `yaml:"board"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	APIURL  string `yaml:"api_url"`
	Timeout string `yaml:"timeout,omitempty"`
}

// AccountConfig remembers the last username. Passwords are never stored.
type AccountConfig struct {
	Username string `yaml:"username,omitempty"`
}

// BoardConfig holds listing defaults.
type BoardConfig struct {
	PageSize     int `yaml:"page_size,omitempty"`
	CommentLimit int `yaml:"comment_limit,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// GetAPIURL returns the backend root, preferring the environment override.
func (c *Config) GetAPIURL() string {
	if v := os.Getenv(EnvAPIURL); v != "" {
		return v
	}
	if c.Server.APIURL != "" {
		return c.Server.APIURL
	}
	return DefaultAPIURL
}

// GetTimeout parses server.timeout, returning 0 when unset.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Server.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.timeout %q: %w", c.Server.Timeout, err)
	}
	return d, nil
}

// GetLogLevel parses the configured level, defaulting to info.
func (c *Config) GetLogLevel() slog.Level {
	raw := c.Log.Level
	if v := os.Getenv(EnvLogLevel); v != "" {
		raw = v
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetLogFile returns the log file used by the TUI, defaulting to
// $XDG_STATE_HOME/community/community.log.
func (c *Config) GetLogFile() (string, error) {
	if c.Log.File != "" {
		return ExpandPath(c.Log.File)
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "community", "community.log"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "community", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
