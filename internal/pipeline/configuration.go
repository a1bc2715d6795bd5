package pipeline

import (
	"strings"

	pathutils "github.com/temirov/cargoport/internal/utils/path"
)

const (
	defaultProjectRootConstant  = "."
	defaultDeployBranchConstant = "default"

	configurationKeySeparatorConstant   = "."
	debugConfigurationKeyConstant       = "debug"
	rootConfigurationKeyConstant        = "project_root"
	destinationConfigurationKeyConstant = "destination"
	branchConfigurationKeyConstant      = "branch"
	pruneConfigurationKeyConstant       = "prune"
)

var configurationProjectRootResolver = pathutils.NewProjectRootResolver()

// CommandConfiguration captures persisted configuration for the build pipeline.
type CommandConfiguration struct {
	EnableDebugLogging bool   `mapstructure:"debug"`
	ProjectRoot        string `mapstructure:"project_root"`
}

// DefaultCommandConfiguration returns baseline configuration values for the build pipeline.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		EnableDebugLogging: false,
		ProjectRoot:        defaultProjectRootConstant,
	}
}

// Sanitize normalizes configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ProjectRoot = configurationProjectRootResolver.Resolve(configuration.ProjectRoot)
	return sanitized
}

// DeployConfiguration captures persisted configuration for local deployment.
type DeployConfiguration struct {
	Destination string `mapstructure:"destination"`
	Branch      string `mapstructure:"branch"`
	Prune       bool   `mapstructure:"prune"`
}

// DefaultDeployConfiguration returns baseline configuration values for local deployment.
func DefaultDeployConfiguration() DeployConfiguration {
	return DeployConfiguration{
		Destination: "",
		Branch:      defaultDeployBranchConstant,
		Prune:       false,
	}
}

// Sanitize trims configured values and restores defaults for empty entries.
func (configuration DeployConfiguration) Sanitize() DeployConfiguration {
	sanitized := configuration
	sanitized.Destination = strings.TrimSpace(configuration.Destination)
	sanitized.Branch = strings.TrimSpace(configuration.Branch)
	if len(sanitized.Branch) == 0 {
		sanitized.Branch = defaultDeployBranchConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes pipeline defaults for configuration loading.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + debugConfigurationKeyConstant: defaults.EnableDebugLogging,
		configurationKeyPrefix + configurationKeySeparatorConstant + rootConfigurationKeyConstant:  defaults.ProjectRoot,
	}
}

// DefaultDeployConfigurationValues exposes deployment defaults for configuration loading.
func DefaultDeployConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultDeployConfiguration()
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + destinationConfigurationKeyConstant: defaults.Destination,
		configurationKeyPrefix + configurationKeySeparatorConstant + branchConfigurationKeyConstant:      defaults.Branch,
		configurationKeyPrefix + configurationKeySeparatorConstant + pruneConfigurationKeyConstant:       defaults.Prune,
	}
}
