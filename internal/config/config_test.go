package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	GlobalConfig = nil
	t.Cleanup(func() { GlobalConfig = nil })

	path := writeConfigFile(t, `
database:
  host: 127.0.0.1
jwt:
  secret: test-secret
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 86400, cfg.JWT.ExpireTime)
	assert.Equal(t, 3, cfg.Order.PaymentDeadlineDays)
	assert.Equal(t, 60, cfg.Order.SweepIntervalMinutes)
	assert.Equal(t, 3, cfg.Order.NumberMaxAttempts)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	GlobalConfig = nil
	t.Cleanup(func() { GlobalConfig = nil })

	path := writeConfigFile(t, `
server:
  port: "8080"
order:
  payment_deadline_days: 3
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ORDER_PAYMENT_DEADLINE_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Order.PaymentDeadlineDays)
}

func TestLoadMissingFile(t *testing.T) {
	GlobalConfig = nil
	t.Cleanup(func() { GlobalConfig = nil })

	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
