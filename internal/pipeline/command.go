package pipeline

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/cargoport/internal/execshell"
	"github.com/temirov/cargoport/internal/ui"
	"github.com/temirov/cargoport/internal/utils"
)

const (
	checkCommandUseConstant               = "check"
	checkCommandShortDescriptionConstant  = "Type-check the crate for the WebAssembly target"
	checkCommandLongDescriptionConstant   = "check runs the cargo type checker against the WebAssembly target without producing build artifacts."
	buildCommandUseConstant               = "build"
	buildCommandShortDescriptionConstant  = "Compile the crate and package the loader for the host runtime"
	buildCommandLongDescriptionConstant   = "build compiles the crate to WebAssembly, validates the generated loader script, and writes the packaged binary module and host loader into the target directory."
	deployCommandUseConstant              = "deploy"
	deployCommandShortDescriptionConstant = "Build the crate and copy the packaged outputs to a destination directory"
	deployCommandLongDescriptionConstant  = "deploy runs the full build and copies the packaged outputs into the configured destination branch directory, optionally pruning stale entries."

	projectRootFlagNameConstant  = "root"
	projectRootFlagUsageConstant = "Crate project root directory"
	destinationFlagNameConstant  = "destination"
	destinationFlagUsageConstant = "Directory receiving the deployed outputs"
	branchFlagNameConstant       = "branch"
	branchFlagUsageConstant      = "Subdirectory of the destination receiving this deployment"
	pruneFlagNameConstant        = "prune"
	pruneFlagUsageConstant       = "Remove files other than the deployed outputs from the branch directory"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ServiceProvider constructs a pipeline service from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (*Service, error)

// CommandBuilder assembles the check, build, and deploy Cobra commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CargoExecutor
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	DeployConfigurationProvider  func() DeployConfiguration
}

type commandOptions struct {
	debugLoggingEnabled bool
	projectRoot         string
}

type deployCommandOptions struct {
	commandOptions
	destination string
	branch      string
	prune       bool
}

// BuildCheckCommand constructs the check command.
func (builder *CommandBuilder) BuildCheckCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           checkCommandUseConstant,
		Short:         checkCommandShortDescriptionConstant,
		Long:          checkCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runCheck,
	}

	command.Flags().String(projectRootFlagNameConstant, defaultProjectRootConstant, projectRootFlagUsageConstant)

	return command, nil
}

// BuildBuildCommand constructs the build command.
func (builder *CommandBuilder) BuildBuildCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           buildCommandUseConstant,
		Short:         buildCommandShortDescriptionConstant,
		Long:          buildCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runBuild,
	}

	command.Flags().String(projectRootFlagNameConstant, defaultProjectRootConstant, projectRootFlagUsageConstant)

	return command, nil
}

// BuildDeployCommand constructs the deploy command.
func (builder *CommandBuilder) BuildDeployCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           deployCommandUseConstant,
		Short:         deployCommandShortDescriptionConstant,
		Long:          deployCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runDeploy,
	}

	command.Flags().String(projectRootFlagNameConstant, defaultProjectRootConstant, projectRootFlagUsageConstant)
	command.Flags().String(destinationFlagNameConstant, "", destinationFlagUsageConstant)
	command.Flags().String(branchFlagNameConstant, defaultDeployBranchConstant, branchFlagUsageConstant)
	command.Flags().Bool(pruneFlagNameConstant, false, pruneFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runCheck(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	service, serviceError := builder.buildService(options.debugLoggingEnabled)
	if serviceError != nil {
		return serviceError
	}

	return service.Check(command.Context(), BuildOptions{ProjectRoot: options.projectRoot})
}

func (builder *CommandBuilder) runBuild(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	service, serviceError := builder.buildService(options.debugLoggingEnabled)
	if serviceError != nil {
		return serviceError
	}

	_, buildError := service.Build(command.Context(), BuildOptions{ProjectRoot: options.projectRoot})
	return buildError
}

func (builder *CommandBuilder) runDeploy(command *cobra.Command, arguments []string) error {
	options := builder.parseDeployOptions(command)

	service, serviceError := builder.buildService(options.debugLoggingEnabled)
	if serviceError != nil {
		return serviceError
	}

	_, deployError := service.Deploy(command.Context(), DeployOptions{
		ProjectRoot: options.projectRoot,
		Destination: options.destination,
		Branch:      options.branch,
		Prune:       options.prune,
	})
	return deployError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) commandOptions {
	configuration := builder.resolveConfiguration()

	debugEnabled := configuration.EnableDebugLogging
	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				debugEnabled = true
			}
		}
	}

	projectRoot := configuration.ProjectRoot
	if command != nil && command.Flags().Changed(projectRootFlagNameConstant) {
		flagValue, _ := command.Flags().GetString(projectRootFlagNameConstant)
		projectRoot = configurationProjectRootResolver.Resolve(flagValue)
	}

	return commandOptions{
		debugLoggingEnabled: debugEnabled,
		projectRoot:         projectRoot,
	}
}

func (builder *CommandBuilder) parseDeployOptions(command *cobra.Command) deployCommandOptions {
	options := deployCommandOptions{commandOptions: builder.parseOptions(command)}

	deployConfiguration := builder.resolveDeployConfiguration()
	options.destination = deployConfiguration.Destination
	options.branch = deployConfiguration.Branch
	options.prune = deployConfiguration.Prune

	if command == nil {
		return options
	}

	if command.Flags().Changed(destinationFlagNameConstant) {
		flagValue, _ := command.Flags().GetString(destinationFlagNameConstant)
		options.destination = strings.TrimSpace(flagValue)
	}
	if command.Flags().Changed(branchFlagNameConstant) {
		flagValue, _ := command.Flags().GetString(branchFlagNameConstant)
		options.branch = strings.TrimSpace(flagValue)
	}
	if command.Flags().Changed(pruneFlagNameConstant) {
		flagValue, _ := command.Flags().GetBool(pruneFlagNameConstant)
		options.prune = flagValue
	}

	return options
}

func (builder *CommandBuilder) buildService(enableDebug bool) (*Service, error) {
	logger := builder.resolveLogger(enableDebug)

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	return builder.resolveService(ServiceDependencies{
		Logger:        logger,
		CargoExecutor: executor,
	})
}

func (builder *CommandBuilder) resolveLogger(enableDebug bool) *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if enableDebug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.DebugLevel))
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CargoExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (*Service, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}

func (builder *CommandBuilder) resolveDeployConfiguration() DeployConfiguration {
	if builder.DeployConfigurationProvider == nil {
		return DefaultDeployConfiguration()
	}

	provided := builder.DeployConfigurationProvider()
	return provided.Sanitize()
}
