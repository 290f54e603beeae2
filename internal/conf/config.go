// Package conf loads and holds the service configuration from the config
// file and environment variables.
package conf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// Environment variables holding the two secrets the service needs. Their
// absence is not fatal at startup; it is reported per request as a
// configuration error naming the variable.
const (
	EnvStorageConnectionString = "AZURE_STORAGE_CONNECTION_STRING"
	EnvCompletionAPIKey        = "ANTHROPIC_API_KEY"
)

// LogConfig defines the file logging settings.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// MainSettings hold the top-level application settings.
type MainSettings struct {
	Name string    `mapstructure:"name"`
	Log  LogConfig `mapstructure:"log"`
}

// WebServerSettings hold the HTTP server settings.
type WebServerSettings struct {
	Listen string `mapstructure:"listen"`
	Debug  bool   `mapstructure:"debug"`
}

// StorageSettings hold the table storage settings. Endpoint is normally
// derived from the account name and only set explicitly for emulators.
type StorageSettings struct {
	ConnectionString string `mapstructure:"connectionstring"`
	Endpoint         string `mapstructure:"endpoint"`
}

// CompletionSettings hold the text-completion service settings.
type CompletionSettings struct {
	APIKey            string `mapstructure:"apikey"`
	Model             string `mapstructure:"model"`
	Endpoint          string `mapstructure:"endpoint"`
	AnalysisMaxTokens int    `mapstructure:"analysismaxtokens"`
	QuestionMaxTokens int    `mapstructure:"questionmaxtokens"`
}

// Settings is the root configuration struct.
type Settings struct {
	Debug      bool               `mapstructure:"debug"`
	Main       MainSettings       `mapstructure:"main"`
	WebServer  WebServerSettings  `mapstructure:"webserver"`
	Storage    StorageSettings    `mapstructure:"storage"`
	Completion CompletionSettings `mapstructure:"completion"`
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into a
// Settings struct and stores it as the process-wide instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values, environment bindings
// and the optional configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Bind secrets and overrides from the environment
	// function defined in env.go
	bindEnvVars()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config file is fine; defaults plus environment carry the service.
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// configPaths returns the locations searched for config.yaml.
func configPaths() []string {
	return []string{".", "$HOME/.config/healthdiary"}
}

// Validate checks the non-credential settings. Credential absence is not
// an error here; it is reported per request instead so the service can
// boot and answer health checks without secrets.
func (s *Settings) Validate() error {
	if s.WebServer.Listen == "" {
		return fmt.Errorf("webserver listen address is empty")
	}
	if s.Completion.AnalysisMaxTokens <= 0 {
		return fmt.Errorf("completion analysis token budget must be positive, got %d", s.Completion.AnalysisMaxTokens)
	}
	if s.Completion.QuestionMaxTokens <= 0 {
		return fmt.Errorf("completion question token budget must be positive, got %d", s.Completion.QuestionMaxTokens)
	}
	return nil
}

// Setting returns the current settings instance. Returns nil if Load()
// has not been called.
func Setting() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
