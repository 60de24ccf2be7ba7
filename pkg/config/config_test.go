package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOCKBOX_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "password-string", cfg.DefaultResourceTypeSlug)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.CleanupBatchSize)
	assert.Equal(t, "default", cfg.Source("log_level"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("log_level: debug\ncleanup_batch_size: 50\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o644))
	t.Setenv("LOCKBOX_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "file", cfg.Source("log_level"))
	assert.Equal(t, 50, cfg.CleanupBatchSize)
	// untouched attributes keep their defaults
	assert.Equal(t, "password-string", cfg.DefaultResourceTypeSlug)
	assert.Equal(t, "default", cfg.Source("default_resource_type_slug"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("log_level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o644))
	t.Setenv("LOCKBOX_CONFIG_PATH", dir)
	t.Setenv("LOCKBOX_LOG_LEVEL", "warn")
	t.Setenv("LOCKBOX_AUDIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "environment", cfg.Source("log_level"))
	assert.False(t, cfg.AuditEnabled)
	assert.Equal(t, "environment", cfg.Source("audit_enabled"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("log_level: [oops"), 0o644))
	t.Setenv("LOCKBOX_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	assert.NoError(t, cfg.Validate())

	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.CleanupBatchSize = 0
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.DefaultResourceTypeSlug = ""
	assert.Error(t, cfg.Validate())
}

func TestFormatText(t *testing.T) {
	t.Setenv("LOCKBOX_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	out := cfg.FormatText()
	assert.Contains(t, out, "log_level")
	assert.Contains(t, out, "default")
	assert.Contains(t, out, cfg.ConfigFilePath())
}
