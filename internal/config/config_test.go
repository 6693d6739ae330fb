package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{"FINASSIST_STATE_DIR": "/tmp/finassist"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.ReplyDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.AlertDelay)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasSessionSecret())
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"FINASSIST_API_URL":        "https://bank.example.com/",
		"FINASSIST_REPLY_DELAY":    "0s",
		"FINASSIST_SESSION_SECRET": strings.Repeat("k", 32),
		"LOG_FORMAT":               "json",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://bank.example.com", cfg.APIURL)
	assert.Zero(t, cfg.ReplyDelay)
	assert.True(t, cfg.HasSessionSecret())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromMapRejectsBadValues(t *testing.T) {
	t.Run("relative API URL", func(t *testing.T) {
		_, err := FromMap(map[string]string{"FINASSIST_API_URL": "localhost"})
		assert.Error(t, err)
	})

	t.Run("short session secret", func(t *testing.T) {
		_, err := FromMap(map[string]string{"FINASSIST_SESSION_SECRET": "short"})
		assert.ErrorIs(t, err, ErrInsecureSecret)
	})

	t.Run("unparseable duration", func(t *testing.T) {
		_, err := FromMap(map[string]string{"FINASSIST_SESSION_TTL": "soon"})
		assert.Error(t, err)
	})
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".finassist"), expandHome("~/.finassist"))
	assert.Equal(t, "/home/tester", expandHome("~"))
	assert.Equal(t, "/var/lib/finassist", expandHome("/var/lib/finassist"))
}
