package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cargoport/internal/utils"
)

const (
	testSupportedCombinationCaseNameConstant = "supported_combination"
	testUnknownLevelCaseNameConstant         = "unknown_level"
	testUnknownFormatCaseNameConstant        = "unknown_format"
	testUnknownLogLevelValueConstant         = "verbose"
	testUnknownLogFormatValueConstant        = "plain"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name        string
		logLevel    utils.LogLevel
		logFormat   utils.LogFormat
		expectError bool
	}{
		{
			name:      testSupportedCombinationCaseNameConstant,
			logLevel:  utils.LogLevelInfo,
			logFormat: utils.LogFormatStructured,
		},
		{
			name:        testUnknownLevelCaseNameConstant,
			logLevel:    utils.LogLevel(testUnknownLogLevelValueConstant),
			logFormat:   utils.LogFormatStructured,
			expectError: true,
		},
		{
			name:        testUnknownFormatCaseNameConstant,
			logLevel:    utils.LogLevelDebug,
			logFormat:   utils.LogFormat(testUnknownLogFormatValueConstant),
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
