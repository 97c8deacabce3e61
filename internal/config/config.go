// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// Provider names known to the configuration layer.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

var (
	currentConfig *AppConfig
	configMutex   sync.RWMutex
	configFile    string
)

// AppConfig holds the full application configuration. Base fields come from
// the environment; provider credentials may additionally be updated at
// runtime through the settings endpoint and are persisted to a JSON file
// under the data directory.
type AppConfig struct {
	Port      string `json:"port"`
	DataDir   string `json:"data_dir"`
	LogDir    string `json:"log_dir"`
	DebugMode bool   `json:"debug_mode"`

	// Providers maps a provider name to its settings ("api_key",
	// "default_model", optional "base_url").
	Providers map[string]map[string]string `json:"providers"`
}

// Load reads the base configuration from the environment. A .env file is
// honored when present.
func Load() (*AppConfig, error) {
	godotenv.Load()

	cfg := &AppConfig{
		Port:      getEnv("PORT", "8080"),
		DataDir:   getEnvPath("DATA_DIR", "data"),
		LogDir:    getEnvPath("LOG_DIR", "logs"),
		DebugMode: getEnvBool("DEBUG_MODE", true),
		Providers: map[string]map[string]string{},
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Providers[ProviderOpenAI] = map[string]string{
			"api_key":       key,
			"default_model": "gpt-4o",
		}
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.Providers[ProviderGoogle] = map[string]string{
			"api_key":       key,
			"default_model": "gemini-1.5-pro-latest",
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}
	return path
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// InitConfig loads the base configuration, merges any provider settings
// saved under dataDir and installs the result as the current configuration.
func InitConfig(dataDir string) error {
	configFile = filepath.Join(dataDir, "config.json")

	baseConfig, err := Load()
	if err != nil {
		return err
	}
	baseConfig.DataDir = dataDir

	configMutex.Lock()
	defer configMutex.Unlock()

	if data, err := os.ReadFile(configFile); err == nil {
		var saved AppConfig
		if json.Unmarshal(data, &saved) == nil {
			// Saved provider settings win over the environment so that
			// credentials entered on the settings page survive restarts.
			for name, conf := range saved.Providers {
				baseConfig.Providers[name] = conf
			}
		}
	}

	currentConfig = baseConfig
	return saveLocked()
}

// GetCurrentConfig returns the active configuration.
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return currentConfig
}

// UpdateProviderConfig replaces the settings of one provider and persists
// the configuration file.
func UpdateProviderConfig(provider string, conf map[string]string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}
	if currentConfig.Providers == nil {
		currentConfig.Providers = map[string]map[string]string{}
	}
	currentConfig.Providers[provider] = conf
	return saveLocked()
}

func saveLocked() error {
	if configFile == "" || currentConfig == nil {
		return nil
	}
	data, err := json.MarshalIndent(currentConfig, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configFile, data, 0644)
}
