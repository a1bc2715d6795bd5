package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testCheckCommandNameConstant  = "check"
	testBuildCommandNameConstant  = "build"
	testDeployCommandNameConstant = "deploy"
)

func TestNewApplicationRegistersPipelineCommands(t *testing.T) {
	application := NewApplication()
	require.NotNil(t, application.rootCommand)

	registeredNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredNames[registeredCommand.Name()] = true
	}

	require.True(t, registeredNames[testCheckCommandNameConstant])
	require.True(t, registeredNames[testBuildCommandNameConstant])
	require.True(t, registeredNames[testDeployCommandNameConstant])
}

func TestHumanReadableLoggingEnabled(t *testing.T) {
	testCases := []struct {
		name      string
		logFormat string
		expected  bool
	}{
		{name: "console_format", logFormat: "console", expected: true},
		{name: "console_format_uppercase", logFormat: "Console", expected: true},
		{name: "structured_format", logFormat: "structured", expected: false},
		{name: "empty_format", logFormat: "", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			application := &Application{
				configuration: ApplicationConfiguration{
					Common: ApplicationCommonConfiguration{LogFormat: testCase.logFormat},
				},
			}
			require.Equal(t, testCase.expected, application.humanReadableLoggingEnabled())
		})
	}
}
