package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCheckNamesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandCargo,
		Details: CommandDetails{
			Arguments:        []string{"check", "--target=wasm32-unknown-unknown"},
			WorkingDirectory: "/workspace/bot",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Type-checking crate in /workspace/bot", message)
}

func TestBuildFailureMessageForWebBuildIncludesExitCode(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandCargo,
		Details: CommandDetails{
			Arguments:        []string{"web", "build", "--target=wasm32-unknown-unknown", "--release"},
			WorkingDirectory: "/workspace/bot",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 101})

	require.Equal(t, "WebAssembly build failed in /workspace/bot (exit code 101)", message)
}

func TestBuildExecutionFailureMessageForUnknownSubcommandUsesGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandCargo,
		Details: CommandDetails{
			Arguments: []string{"metadata"},
		},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "cargo metadata failed: executable file not found", message)
}
