package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Equal(t, 1200*time.Millisecond, cfg.BotDelay)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROOK_ADDR", ":9999")
	t.Setenv("ROOK_BOT_DELAY_MS", "250")
	t.Setenv("ROOK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.BotDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadDelay(t *testing.T) {
	t.Setenv("ROOK_BOT_DELAY_MS", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ROOK_BOT_DELAY_MS", "-5")
	_, err = Load()
	assert.Error(t, err)
}
