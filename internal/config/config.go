// Package config reads process configuration from TEMPO_* environment
// variables, falling back to defaults for any unset values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// LearnConfig controls the background learning cycle.
type LearnConfig struct {
	Enabled bool
	Spec    string // cron expression
}

// TelegramConfig controls the optional Telegram notifier.
type TelegramConfig struct {
	Enabled bool
	Token   string
	ChatID  int64
}

// Config holds all process configuration.
type Config struct {
	DBPath   string
	LogLevel slog.Level
	Learn    LearnConfig
	Telegram TelegramConfig
}

// DefaultConfig returns a Config with sensible defaults. Learning is on,
// Telegram is off.
func DefaultConfig() Config {
	return Config{
		LogLevel: slog.LevelWarn,
		Learn: LearnConfig{
			Enabled: true,
			Spec:    "@hourly",
		},
	}
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TEMPO_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("TEMPO_LEARN_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Learn.Enabled = b
		}
	}
	if v := os.Getenv("TEMPO_LEARN_SPEC"); v != "" {
		cfg.Learn.Spec = v
	}
	if v := os.Getenv("TEMPO_NOTIFY_TELEGRAM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telegram.Enabled = b
		}
	}
	if v := os.Getenv("TEMPO_NOTIFY_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TEMPO_NOTIFY_TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = n
		}
	}

	return cfg
}

// ResolveDBPath returns the configured database path, defaulting to
// ~/.tempo/tempo.db when unset.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".tempo", "tempo.db"), nil
}
