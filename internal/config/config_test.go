package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Jobs.SweepInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("EVENT_SWEEP_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Jobs.SweepInterval)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "postgres://localhost/db"},
			Auth:     AuthConfig{Secret: "s3cret"},
			Notify:   NotifyConfig{Timeout: time.Second},
			Jobs:     JobsConfig{SweepInterval: time.Minute},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.Secret = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
	})

	t.Run("joined errors", func(t *testing.T) {
		cfg := base()
		cfg.Auth.Secret = ""
		cfg.Notify.Timeout = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
		assert.Contains(t, err.Error(), "NOTIFY_TIMEOUT")
	})
}
