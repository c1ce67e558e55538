package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("INTEL_API_KEY", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INTEL_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://www.virustotal.com/api/v3", cfg.IntelBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 180*time.Second, cfg.PollTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 1000, cfg.CacheMaxEntries)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INTEL_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("POLL_INTERVAL", "500")
	t.Setenv("POLL_TIMEOUT", "60000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.PollTimeout)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("INTEL_API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("POLL_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	// Unparsable values fall back to defaults rather than failing startup
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
}
