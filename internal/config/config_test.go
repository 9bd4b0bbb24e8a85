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

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "moneyball.db", cfg.DatabasePath)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 15*time.Second, cfg.CommentaryTimeout)
	assert.True(t, cfg.EnableScheduler)
	assert.Equal(t, "0 2 * * *", cfg.RefreshCron)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("COMMENTARY_TIMEOUT", "5s")
	t.Setenv("ENABLE_SCHEDULER", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.CommentaryTimeout)
	assert.False(t, cfg.EnableScheduler)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("COMMENTARY_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}
