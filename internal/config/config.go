// Package config defines the service configuration and how it is loaded.
//
// CONFIG LAYERING:
// Values are resolved in three layers, lowest precedence first:
//  1. compiled-in defaults (Default())
//  2. an optional YAML file, pointed at by the GOOBER_CONFIG env var
//  3. environment variables with the GOOBER_ prefix (GOOBER_ADDR, ...)
//
// koanf does the layering for us — each Load() call merges over the previous
// one, so env vars win over the file, which wins over defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains all process configuration.
//
// The three duration fields are the knobs of the whole system:
//   - SessionWindow: how long after the last check-in a session counts as active
//   - AdventureCooldown: minimum gap between events while a visitor is present
//   - ReengageCooldown: minimum gap before a returning visitor gets a fresh event
type Config struct {
	Addr     string `koanf:"addr"`
	DBPath   string `koanf:"db_path"`
	BaseURL  string `koanf:"base_url"`
	LogLevel string `koanf:"log_level"`

	SessionWindow     time.Duration `koanf:"session_window"`
	AdventureCooldown time.Duration `koanf:"adventure_cooldown"`
	ReengageCooldown  time.Duration `koanf:"reengage_cooldown"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DBPath:            "data/goobers.db",
		BaseURL:           "http://localhost:8080",
		LogLevel:          "info",
		SessionWindow:     5 * time.Minute,
		AdventureCooldown: 30 * time.Second,
		ReengageCooldown:  6 * 24 * time.Hour,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and env
// vars. Env keys map flat: GOOBER_SESSION_WINDOW -> session_window.
func Load() (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path := os.Getenv("GOOBER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	envProvider := env.Provider("GOOBER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "goober_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("config: loading env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("config: unmarshalling: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.SessionWindow <= 0 || c.AdventureCooldown <= 0 || c.ReengageCooldown <= 0 {
		return errors.New("config: all durations must be positive")
	}
	return nil
}

// SlogLevel translates the textual log level into a slog level, defaulting
// to info for anything unrecognised.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
