package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "HealthDiary-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "healthdiary.log")

	viper.SetDefault("webserver.listen", ":8080")
	viper.SetDefault("webserver.debug", false)

	viper.SetDefault("storage.connectionstring", "")
	viper.SetDefault("storage.endpoint", "")

	viper.SetDefault("completion.apikey", "")
	viper.SetDefault("completion.model", "claude-sonnet-4-20250514")
	viper.SetDefault("completion.endpoint", "")
	viper.SetDefault("completion.analysismaxtokens", 2000)
	viper.SetDefault("completion.questionmaxtokens", 1500)
}
