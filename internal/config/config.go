// Package config loads the credentials and runtime settings for the presence
// keeper from a TOML file, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment overrides. The names predate the TOML file and are kept for
// compatibility with existing deployments.
const (
	envEmail    = "ALWAYSGREEN_EMAIL"
	envPassword = "ALWAYSGREEN_PASSWORD"
	envInterval = "ALWAYSGREEN_INTERVAL_SECONDS"
	envLogFile  = "ALWAYSGREEN_LOG_FILE"
)

// DefaultInterval is how often presence is re-asserted when the config does
// not say otherwise.
const DefaultInterval = 90 * time.Second

// ErrNoEmail indicates no account email was configured anywhere.
var ErrNoEmail = errors.New("config: no email configured")

// Config holds everything the daemon needs to run.
type Config struct {
	// Email is the Microsoft account to keep green. Required.
	Email string `toml:"email"`
	// Password is required for organizational accounts; personal accounts
	// sign in via device code and may leave it empty.
	Password string `toml:"password"`
	// IntervalSeconds is the presence re-assert interval. Defaults to 90.
	IntervalSeconds int `toml:"interval_seconds"`
	// LogFile, when set, mirrors log output into this file.
	LogFile string `toml:"log_file"`
}

// Interval returns the configured re-assert interval.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return DefaultInterval
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// DefaultPath returns the default config file location,
// ~/.alwaysgreen/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".alwaysgreen", "config.toml"), nil
}

// Load reads the config file at path, then applies environment overrides.
// A missing file is not an error as long as the environment supplies an
// email; a present but malformed file is.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Email == "" {
		return Config{}, ErrNoEmail
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envEmail); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv(envPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(envInterval); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IntervalSeconds = n
		}
	}
	if v := os.Getenv(envLogFile); v != "" {
		cfg.LogFile = v
	}
}
