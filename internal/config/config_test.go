package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_LearningOnTelegramOff(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Learn.Enabled)
	assert.Equal(t, "@hourly", cfg.Learn.Spec)
	assert.False(t, cfg.Telegram.Enabled)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("TEMPO_DB", "/tmp/tempo-test.db")
	t.Setenv("TEMPO_LOG_LEVEL", "debug")
	t.Setenv("TEMPO_LEARN_ENABLED", "false")
	t.Setenv("TEMPO_LEARN_SPEC", "@every 30m")
	t.Setenv("TEMPO_NOTIFY_TELEGRAM_ENABLED", "true")
	t.Setenv("TEMPO_NOTIFY_TELEGRAM_TOKEN", "tok")
	t.Setenv("TEMPO_NOTIFY_TELEGRAM_CHAT_ID", "12345")

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/tempo-test.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Learn.Enabled)
	assert.Equal(t, "@every 30m", cfg.Learn.Spec)
	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, "tok", cfg.Telegram.Token)
	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TEMPO_LOG_LEVEL", "shouting")
	t.Setenv("TEMPO_LEARN_ENABLED", "maybe")
	t.Setenv("TEMPO_NOTIFY_TELEGRAM_CHAT_ID", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.True(t, cfg.Learn.Enabled)
	assert.Equal(t, int64(0), cfg.Telegram.ChatID)
}

func TestResolveDBPath_ExplicitWins(t *testing.T) {
	cfg := Config{DBPath: "/data/tempo.db"}
	path, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/tempo.db", path)
}

func TestResolveDBPath_DefaultsUnderHome(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	path, err := Config{}.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/someone/.tempo/tempo.db", path)
}
