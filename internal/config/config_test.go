// internal/config/config_test.go
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", filepath.Join(t.TempDir(), "data"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("DEBUG_MODE", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.DebugMode)
	assert.Empty(t, cfg.Providers)
}

func TestLoadProviderCredentials(t *testing.T) {
	t.Setenv("DATA_DIR", filepath.Join(t.TempDir(), "data"))
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Contains(t, cfg.Providers, ProviderOpenAI)
	assert.Equal(t, "sk-test", cfg.Providers[ProviderOpenAI]["api_key"])
	assert.Equal(t, "gpt-4o", cfg.Providers[ProviderOpenAI]["default_model"])
	assert.NotContains(t, cfg.Providers, ProviderGoogle)
}

func TestInitConfigMergesSavedProviders(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GOOGLE_API_KEY", "")

	// Credentials saved through the settings page win over the environment.
	saved := AppConfig{
		Providers: map[string]map[string]string{
			ProviderOpenAI: {"api_key": "sk-saved", "default_model": "gpt-4o-mini"},
		},
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0644))

	require.NoError(t, InitConfig(dataDir))

	cfg := GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "sk-saved", cfg.Providers[ProviderOpenAI]["api_key"])
	assert.Equal(t, "gpt-4o-mini", cfg.Providers[ProviderOpenAI]["default_model"])
}

func TestUpdateProviderConfigPersists(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	require.NoError(t, InitConfig(dataDir))
	require.NoError(t, UpdateProviderConfig(ProviderGoogle, map[string]string{
		"api_key":       "g-key",
		"default_model": "gemini-2.0-flash",
	}))

	data, err := os.ReadFile(filepath.Join(dataDir, "config.json"))
	require.NoError(t, err)

	var persisted AppConfig
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "g-key", persisted.Providers[ProviderGoogle]["api_key"])
}
