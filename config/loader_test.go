package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "PORT"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, 20*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, int64(5<<20), cfg.Fetcher.MaxBodyBytes)
	assert.Equal(t, 8000, cfg.Clipper.MaxChars)
	assert.Equal(t, "openai", cfg.Generator.Provider)
	assert.Equal(t, "low", cfg.Generator.ReasoningEffort)
	assert.Equal(t, 60*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Empty(t, cfg.Generator.APIKey)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8088
  cors_origins: ["https://app.example.com"]
generator:
  provider: gemini
  model: gemini-2.5-pro
  timeout: 45s
store:
  driver: redis
  redis:
    address: redis:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gemini", cfg.Generator.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Generator.Model)
	assert.Equal(t, 45*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Address)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINK2ITINERARY_GENERATOR_MODEL", "gpt-5.2-mini")
	t.Setenv("LINK2ITINERARY_CLIPPER_MAX_CHARS", "4000")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-5.2-mini", cfg.Generator.Model)
	assert.Equal(t, 4000, cfg.Clipper.MaxChars)
	assert.Equal(t, "sk-env", cfg.Generator.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_ProviderSpecificKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINK2ITINERARY_GENERATOR_PROVIDER", "gemini")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gm-key", cfg.Generator.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown provider", "generator:\n  provider: llama\n"},
		{"unknown store", "store:\n  driver: mongo\n"},
		{"postgres without dsn", "store:\n  driver: postgres\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"zero clip budget", "clipper:\n  max_chars: 0\n"},
		{"generation outlasts write timeout", "generator:\n  timeout: 120s\n"},
		{"write timeout equals pipeline budget", "server:\n  write_timeout: 80s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_WriteTimeoutCoversPipeline(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "generator:\n  timeout: 120s\n"))
	assert.ErrorContains(t, err, "server.write_timeout (1m30s) must exceed fetcher.timeout + generator.timeout (2m20s)")

	cfg, err := Load(writeConfig(t, "generator:\n  timeout: 120s\nserver:\n  write_timeout: 150s\n"))
	require.NoError(t, err)
	assert.Equal(t, 150*time.Second, cfg.Server.WriteTimeout)

	cfg, err = Load(writeConfig(t, "server:\n  write_timeout: 0s\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.WriteTimeout)
}

func TestLoad_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
