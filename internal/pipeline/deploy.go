package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	destinationFieldNameConstant           = "destination"
	branchFieldNameConstant                = "branch"
	deployDirectoryErrorTemplateConstant   = "unable to create deployment directory %s: %w"
	deployCopyErrorTemplateConstant        = "unable to copy %s into %s: %w"
	deployPruneReadErrorTemplateConstant   = "unable to inspect deployment directory %s: %w"
	deployPruneRemoveErrorTemplateConstant = "unable to prune stale entry %s: %w"

	deployCompletedMessageConstant = "Deployment completed"
	prunedEntryMessageConstant     = "Pruned stale deployment entry"
	logFieldDestinationConstant    = "destination"
	logFieldPrunedEntryConstant    = "entry"
)

// DeployOptions configures a local deployment run.
type DeployOptions struct {
	ProjectRoot string
	Destination string
	Branch      string
	Prune       bool
}

// DeployResult captures the deployed file locations.
type DeployResult struct {
	BinaryModulePath string
	LoaderScriptPath string
}

// Deploy builds the project and copies the packaged outputs into the
// destination branch directory. When pruning is enabled, files other than the
// packaged outputs are removed from that directory afterwards.
func (service *Service) Deploy(executionContext context.Context, options DeployOptions) (DeployResult, error) {
	if validationError := service.validateDeployOptions(options); validationError != nil {
		return DeployResult{}, validationError
	}

	buildResult, buildError := service.Build(executionContext, BuildOptions{ProjectRoot: options.ProjectRoot})
	if buildError != nil {
		return DeployResult{}, buildError
	}

	deploymentDirectory := filepath.Join(options.Destination, options.Branch)
	if mkdirError := os.MkdirAll(deploymentDirectory, outputDirectoryPermissionsConstant); mkdirError != nil {
		return DeployResult{}, fmt.Errorf(deployDirectoryErrorTemplateConstant, deploymentDirectory, mkdirError)
	}

	deployedPaths := map[string]string{
		outputBinaryFileNameConstant: buildResult.BinaryModulePath,
		outputScriptFileNameConstant: buildResult.LoaderScriptPath,
	}
	for deployedFileName, sourcePath := range deployedPaths {
		destinationPath := filepath.Join(deploymentDirectory, deployedFileName)
		if copyError := copyFileContents(sourcePath, destinationPath); copyError != nil {
			return DeployResult{}, fmt.Errorf(deployCopyErrorTemplateConstant, sourcePath, deploymentDirectory, copyError)
		}
	}

	if options.Prune {
		if pruneError := service.pruneDeploymentDirectory(deploymentDirectory, deployedPaths); pruneError != nil {
			return DeployResult{}, pruneError
		}
	}

	result := DeployResult{
		BinaryModulePath: filepath.Join(deploymentDirectory, outputBinaryFileNameConstant),
		LoaderScriptPath: filepath.Join(deploymentDirectory, outputScriptFileNameConstant),
	}

	service.logger.Info(
		deployCompletedMessageConstant,
		zap.String(logFieldDestinationConstant, deploymentDirectory),
		zap.String(logFieldBinaryModuleConstant, result.BinaryModulePath),
		zap.String(logFieldLoaderScriptConstant, result.LoaderScriptPath),
	)

	return result, nil
}

func (service *Service) validateDeployOptions(options DeployOptions) error {
	if len(options.ProjectRoot) == 0 {
		return InvalidInputError{FieldName: projectRootFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(options.Destination) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(options.Branch) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func (service *Service) pruneDeploymentDirectory(deploymentDirectory string, deployedPaths map[string]string) error {
	directoryEntries, readError := os.ReadDir(deploymentDirectory)
	if readError != nil {
		return fmt.Errorf(deployPruneReadErrorTemplateConstant, deploymentDirectory, readError)
	}

	for _, directoryEntry := range directoryEntries {
		if _, isDeployed := deployedPaths[directoryEntry.Name()]; isDeployed {
			continue
		}

		staleEntryPath := filepath.Join(deploymentDirectory, directoryEntry.Name())
		if removeError := os.RemoveAll(staleEntryPath); removeError != nil {
			return fmt.Errorf(deployPruneRemoveErrorTemplateConstant, staleEntryPath, removeError)
		}

		service.logger.Info(prunedEntryMessageConstant, zap.String(logFieldPrunedEntryConstant, staleEntryPath))
	}

	return nil
}
