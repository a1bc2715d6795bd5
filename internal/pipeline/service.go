package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/cargoport/internal/artifacts"
	"github.com/temirov/cargoport/internal/execshell"
	"github.com/temirov/cargoport/internal/loader"
)

const (
	cargoCheckSubcommandConstant    = "check"
	cargoWebSubcommandConstant      = "web"
	cargoBuildSubcommandConstant    = "build"
	wasmTargetFlagConstant          = "--target=wasm32-unknown-unknown"
	releaseProfileFlagConstant      = "--release"
	buildOutputRelativePathConstant = "target/wasm32-unknown-unknown/release"
	outputDirectoryNameConstant     = "target"
	outputBinaryFileNameConstant    = "compiled.wasm"
	outputScriptFileNameConstant    = "main.js"

	projectRootFieldNameConstant         = "project_root"
	cargoExecutorMissingMessageConstant  = "cargo executor not configured"
	requiredValueMessageConstant         = "a value is required"
	scriptReadErrorTemplateConstant      = "unable to read generated loader script %s: %w"
	outputDirectoryErrorTemplateConstant = "unable to create output directory %s: %w"
	binaryCopyErrorTemplateConstant      = "unable to copy binary module to %s: %w"
	scriptWriteErrorTemplateConstant     = "unable to write loader script %s: %w"

	checkCompletedMessageConstant = "Type check completed"
	buildCompletedMessageConstant = "Build completed"
	logFieldProjectRootConstant   = "project_root"
	logFieldBinaryModuleConstant  = "binary_module"
	logFieldLoaderScriptConstant  = "loader_script"

	outputDirectoryPermissionsConstant = 0o755
	outputFilePermissionsConstant      = 0o644
)

var errCargoExecutorMissing = errors.New(cargoExecutorMissingMessageConstant)

// InvalidInputError describes pipeline option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// CargoExecutor runs the cargo toolchain.
type CargoExecutor interface {
	ExecuteCargo(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ArtifactLocator resolves build output files by category.
type ArtifactLocator interface {
	Scan(directory string, extensionCategories map[string]artifacts.Category, requiredCategories []artifacts.Category) (map[artifacts.Category]string, error)
}

// ServiceDependencies describes required collaborators for the pipeline.
type ServiceDependencies struct {
	Logger          *zap.Logger
	CargoExecutor   CargoExecutor
	ArtifactLocator ArtifactLocator
}

// BuildOptions configures a pipeline run.
type BuildOptions struct {
	ProjectRoot string
}

// BuildResult captures the packaged output artifact locations.
type BuildResult struct {
	BinaryModulePath string
	LoaderScriptPath string
}

// Service orchestrates the check and build pipelines.
type Service struct {
	logger          *zap.Logger
	cargoExecutor   CargoExecutor
	artifactLocator ArtifactLocator
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.CargoExecutor == nil {
		return nil, errCargoExecutorMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	artifactLocator := dependencies.ArtifactLocator
	if artifactLocator == nil {
		artifactLocator = artifacts.NewLocator(logger)
	}

	service := &Service{
		logger:          logger,
		cargoExecutor:   dependencies.CargoExecutor,
		artifactLocator: artifactLocator,
	}

	return service, nil
}

// Check runs the lightweight type-check mode against the project root.
func (service *Service) Check(executionContext context.Context, options BuildOptions) error {
	if validationError := service.validateOptions(options); validationError != nil {
		return validationError
	}

	checkArguments := []string{cargoCheckSubcommandConstant, wasmTargetFlagConstant}
	if _, executionError := service.cargoExecutor.ExecuteCargo(executionContext, execshell.CommandDetails{
		Arguments:        checkArguments,
		WorkingDirectory: options.ProjectRoot,
	}); executionError != nil {
		return executionError
	}

	service.logger.Info(checkCompletedMessageConstant, zap.String(logFieldProjectRootConstant, options.ProjectRoot))
	return nil
}

// Build runs the full build mode: compile, locate artifacts, validate the
// generated loader, and write the packaged outputs. No output file is written
// until every validation step has passed.
func (service *Service) Build(executionContext context.Context, options BuildOptions) (BuildResult, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return BuildResult{}, validationError
	}

	buildArguments := []string{cargoWebSubcommandConstant, cargoBuildSubcommandConstant, wasmTargetFlagConstant, releaseProfileFlagConstant}
	if _, executionError := service.cargoExecutor.ExecuteCargo(executionContext, execshell.CommandDetails{
		Arguments:        buildArguments,
		WorkingDirectory: options.ProjectRoot,
	}); executionError != nil {
		return BuildResult{}, executionError
	}

	buildOutputDirectory := filepath.Join(options.ProjectRoot, filepath.FromSlash(buildOutputRelativePathConstant))
	requiredCategories := []artifacts.Category{artifacts.CategoryBinaryModule, artifacts.CategoryLoaderScript}
	locatedArtifacts, locateError := service.artifactLocator.Scan(buildOutputDirectory, artifacts.DefaultExtensionCategories(), requiredCategories)
	if locateError != nil {
		return BuildResult{}, locateError
	}

	generatedScriptPath := locatedArtifacts[artifacts.CategoryLoaderScript]
	generatedScriptContent, readError := os.ReadFile(generatedScriptPath)
	if readError != nil {
		return BuildResult{}, fmt.Errorf(scriptReadErrorTemplateConstant, generatedScriptPath, readError)
	}

	assembledScript, rewriteError := loader.RewriteGeneratedScript(string(generatedScriptContent), generatedScriptPath)
	if rewriteError != nil {
		return BuildResult{}, rewriteError
	}

	outputDirectory := filepath.Join(options.ProjectRoot, outputDirectoryNameConstant)
	if mkdirError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); mkdirError != nil {
		return BuildResult{}, fmt.Errorf(outputDirectoryErrorTemplateConstant, outputDirectory, mkdirError)
	}

	binaryModulePath := filepath.Join(outputDirectory, outputBinaryFileNameConstant)
	if copyError := copyFileContents(locatedArtifacts[artifacts.CategoryBinaryModule], binaryModulePath); copyError != nil {
		return BuildResult{}, fmt.Errorf(binaryCopyErrorTemplateConstant, binaryModulePath, copyError)
	}

	loaderScriptPath := filepath.Join(outputDirectory, outputScriptFileNameConstant)
	if writeError := os.WriteFile(loaderScriptPath, []byte(assembledScript), outputFilePermissionsConstant); writeError != nil {
		return BuildResult{}, fmt.Errorf(scriptWriteErrorTemplateConstant, loaderScriptPath, writeError)
	}

	result := BuildResult{
		BinaryModulePath: binaryModulePath,
		LoaderScriptPath: loaderScriptPath,
	}

	service.logger.Info(
		buildCompletedMessageConstant,
		zap.String(logFieldProjectRootConstant, options.ProjectRoot),
		zap.String(logFieldBinaryModuleConstant, result.BinaryModulePath),
		zap.String(logFieldLoaderScriptConstant, result.LoaderScriptPath),
	)

	return result, nil
}

func (service *Service) validateOptions(options BuildOptions) error {
	if len(options.ProjectRoot) == 0 {
		return InvalidInputError{FieldName: projectRootFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func copyFileContents(sourcePath string, destinationPath string) error {
	sourceContent, readError := os.ReadFile(sourcePath)
	if readError != nil {
		return readError
	}
	return os.WriteFile(destinationPath, sourceContent, outputFilePermissionsConstant)
}
