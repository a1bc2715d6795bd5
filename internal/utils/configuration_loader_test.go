package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cargoport/internal/utils"
)

const (
	testConfigurationNameConstant        = "config"
	testConfigurationTypeConstant        = "yaml"
	testEnvironmentPrefixConstant        = "CARGOPORTTEST"
	testConfigurationFileNameConstant    = "config.yaml"
	testConfigurationFileContentConstant = "common:\n  log_level: warn\n"
	testDefaultLogLevelConstant          = "info"
	testDefaultLogFormatConstant         = "structured"
)

type loaderTestConfiguration struct {
	Common loaderTestCommonConfiguration `mapstructure:"common"`
}

type loaderTestCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func TestConfigurationLoaderAppliesDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	defaultValues := map[string]any{
		"common.log_level":  testDefaultLogLevelConstant,
		"common.log_format": testDefaultLogFormatConstant,
	}

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", defaultValues, &configuration)
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, testDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, testDefaultLogFormatConstant, configuration.Common.LogFormat)
}

func TestConfigurationLoaderReadsExplicitFile(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationFileContentConstant), 0o644))

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{configurationDirectory},
	)

	defaultValues := map[string]any{
		"common.log_level":  testDefaultLogLevelConstant,
		"common.log_format": testDefaultLogFormatConstant,
	}

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, defaultValues, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
	require.Equal(testInstance, testDefaultLogFormatConstant, configuration.Common.LogFormat)
}
