package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	cargoCheckSubcommandNameConstant = "check"
	cargoWebSubcommandNameConstant   = "web"
)

const (
	cargoCheckStartTemplateConstant               = "Type-checking crate in %s"
	cargoCheckSuccessTemplateConstant             = "Type check passed in %s"
	cargoCheckFailureTemplateConstant             = "Type check failed in %s (exit code %d)"
	cargoCheckExecutionFailureTemplateConstant    = "Unable to type-check crate in %s: %s"
	cargoWebBuildStartTemplateConstant            = "Compiling crate to WebAssembly in %s"
	cargoWebBuildSuccessTemplateConstant          = "Compiled crate to WebAssembly in %s"
	cargoWebBuildFailureTemplateConstant          = "WebAssembly build failed in %s (exit code %d)"
	cargoWebBuildExecutionFailureTemplateConstant = "Unable to compile crate to WebAssembly in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandCargo {
		return formatter.describeCargoMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeCargoMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	subcommand := strings.TrimSpace(command.Details.Arguments[0])

	switch subcommand {
	case cargoCheckSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(cargoCheckStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(cargoCheckSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(cargoCheckFailureTemplateConstant, workingDirectory, result.ExitCode)
		case messageStageExecutionFailure:
			return fmt.Sprintf(cargoCheckExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case cargoWebSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(cargoWebBuildStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(cargoWebBuildSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(cargoWebBuildFailureTemplateConstant, workingDirectory, result.ExitCode)
		case messageStageExecutionFailure:
			return fmt.Sprintf(cargoWebBuildExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode)
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return commandLabel
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)

	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, emptyStringConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
