// env.go - environment variable bindings for the health diary service
package conf

import (
	"github.com/spf13/viper"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string // Viper config key
	EnvVar    string // Environment variable name
}

// getEnvBindings returns all environment variable bindings. The two
// secrets keep the variable names the original deployment used so an
// existing environment carries over unchanged.
func getEnvBindings() []envBinding {
	return []envBinding{
		{"storage.connectionstring", EnvStorageConnectionString},
		{"completion.apikey", EnvCompletionAPIKey},
		{"webserver.listen", "HEALTHDIARY_LISTEN"},
		{"webserver.debug", "HEALTHDIARY_WEBSERVER_DEBUG"},
		{"debug", "HEALTHDIARY_DEBUG"},
		{"completion.model", "HEALTHDIARY_COMPLETION_MODEL"},
	}
}

// bindEnvVars sets up environment variable bindings (internal)
func bindEnvVars() {
	for _, binding := range getEnvBindings() {
		// BindEnv only fails on an empty key, which cannot happen here.
		_ = viper.BindEnv(binding.ConfigKey, binding.EnvVar)
	}
}
