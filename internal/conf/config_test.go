package conf

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir()) // no config.yaml present

	settings, err := Load()
	require.NoError(t, err, "missing config file must not be an error")

	assert.Equal(t, "HealthDiary-Go", settings.Main.Name)
	assert.Equal(t, ":8080", settings.WebServer.Listen)
	assert.Equal(t, "claude-sonnet-4-20250514", settings.Completion.Model)
	assert.Equal(t, 2000, settings.Completion.AnalysisMaxTokens)
	assert.Equal(t, 1500, settings.Completion.QuestionMaxTokens)
	assert.Empty(t, settings.Storage.ConnectionString, "credentials default to unset")
	assert.Empty(t, settings.Completion.APIKey)
}

func TestLoad_EnvironmentBindings(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	t.Setenv(EnvStorageConnectionString, "AccountName=acct;AccountKey=c2VjcmV0")
	t.Setenv(EnvCompletionAPIKey, "sk-test")
	t.Setenv("HEALTHDIARY_LISTEN", ":9090")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "AccountName=acct;AccountKey=c2VjcmV0", settings.Storage.ConnectionString)
	assert.Equal(t, "sk-test", settings.Completion.APIKey)
	assert.Equal(t, ":9090", settings.WebServer.Listen)
}

func TestValidate(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	require.NoError(t, settings.Validate(), "defaults must validate without secrets")

	settings.WebServer.Listen = ""
	assert.Error(t, settings.Validate())

	settings.WebServer.Listen = ":8080"
	settings.Completion.AnalysisMaxTokens = 0
	assert.Error(t, settings.Validate())
}

func TestSetting_ReturnsLoadedInstance(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	assert.Same(t, settings, Setting())
}
