package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cargoport/internal/utils"
)

const (
	testConfigurationFilePathConstant = "/etc/cargoport/config.yaml"
	testLogLevelValueConstant         = "debug"
)

func TestCommandContextAccessorRoundTrips(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	baseContext := context.Background()

	configurationContext := accessor.WithConfigurationFilePath(baseContext, testConfigurationFilePathConstant)
	configurationFilePath, configurationAvailable := accessor.ConfigurationFilePath(configurationContext)
	require.True(testInstance, configurationAvailable)
	require.Equal(testInstance, testConfigurationFilePathConstant, configurationFilePath)

	logLevelContext := accessor.WithLogLevel(baseContext, testLogLevelValueConstant)
	logLevel, logLevelAvailable := accessor.LogLevel(logLevelContext)
	require.True(testInstance, logLevelAvailable)
	require.Equal(testInstance, testLogLevelValueConstant, logLevel)
}

func TestCommandContextAccessorMissingValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, configurationAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationAvailable)

	_, logLevelAvailable := accessor.LogLevel(context.Background())
	require.False(testInstance, logLevelAvailable)
}
