package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.LLM.BaseURL)
	assert.Empty(t, cfg.LLM.APIKey, "no credential is baked in")
	assert.Equal(t, 3, cfg.LLM.Retry.MaxRetries)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "process_log.log", cfg.Log.File)
	assert.False(t, cfg.Extract.StrictSchema)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "happyplates.yaml")
	content := `
llm:
  model: gpt-4o
  request_timeout: 90s
  retry:
    max_retries: 5
    initial_backoff: 2s
    max_backoff: 1m
server:
  addr: ":9090"
  upload_dir: /tmp/menus
log:
  level: debug
extract:
  strict_schema: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, Duration(90*time.Second), cfg.LLM.RequestTimeout)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxRetries)
	assert.Equal(t, Duration(2*time.Second), cfg.LLM.Retry.InitialBackoff)
	assert.Equal(t, Duration(time.Minute), cfg.LLM.Retry.MaxBackoff)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/menus", cfg.Server.UploadDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Extract.StrictSchema)

	// Unset keys keep their defaults.
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.LLM.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("HAPPYPLATES_ADDR", ":7070")
	t.Setenv("HAPPYPLATES_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestAPIKeyNeverReadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "happyplates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  apikey: sk-should-not-load\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
}
