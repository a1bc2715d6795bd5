package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const (
	binaryModuleCategoryNameConstant       = "binary module"
	loaderScriptCategoryNameConstant       = "loader script"
	wasmFileExtensionConstant              = ".wasm"
	javascriptFileExtensionConstant        = ".js"
	directoryReadErrorTemplateConstant     = "unable to read build output directory %s: %w"
	missingArtifactErrorTemplateConstant   = "no %s file found in %s"
	ambiguousArtifactErrorTemplateConstant = "multiple %s files found in %s"
	ignoredEntryDebugMessageConstant       = "ignoring build output entry"
	logFieldEntryNameConstant              = "entry"
	logFieldDirectoryConstant              = "directory"
)

// Category classifies a build output artifact.
type Category string

// Artifact categories emitted by the toolchain.
const (
	CategoryBinaryModule Category = Category(binaryModuleCategoryNameConstant)
	CategoryLoaderScript Category = Category(loaderScriptCategoryNameConstant)
)

// DefaultExtensionCategories maps toolchain output extensions to artifact categories.
func DefaultExtensionCategories() map[string]Category {
	return map[string]Category{
		wasmFileExtensionConstant:       CategoryBinaryModule,
		javascriptFileExtensionConstant: CategoryLoaderScript,
	}
}

// MissingArtifactError reports a required artifact category with zero candidates.
type MissingArtifactError struct {
	Directory string
	Category  Category
}

// Error names the missing category and the scanned directory.
func (missing MissingArtifactError) Error() string {
	return fmt.Sprintf(missingArtifactErrorTemplateConstant, missing.Category, missing.Directory)
}

// AmbiguousArtifactError reports a required artifact category with multiple candidates.
type AmbiguousArtifactError struct {
	Directory  string
	Category   Category
	Candidates []string
}

// Error names the ambiguous category and the scanned directory.
func (ambiguous AmbiguousArtifactError) Error() string {
	return fmt.Sprintf(ambiguousArtifactErrorTemplateConstant, ambiguous.Category, ambiguous.Directory)
}

// Locator scans build output directories for toolchain artifacts.
type Locator struct {
	logger *zap.Logger
}

// NewLocator constructs a Locator using the provided logger.
func NewLocator(logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{logger: logger}
}

// Scan classifies directory entries by extension and returns one path per required category.
// Entries with unrecognized extensions and nested directories are ignored.
func (locator *Locator) Scan(directory string, extensionCategories map[string]Category, requiredCategories []Category) (map[Category]string, error) {
	directoryEntries, readError := os.ReadDir(directory)
	if readError != nil {
		return nil, fmt.Errorf(directoryReadErrorTemplateConstant, directory, readError)
	}

	candidatesByCategory := make(map[Category][]string)
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}

		entryExtension := filepath.Ext(directoryEntry.Name())
		entryCategory, recognized := extensionCategories[entryExtension]
		if !recognized {
			locator.logger.Debug(
				ignoredEntryDebugMessageConstant,
				zap.String(logFieldEntryNameConstant, directoryEntry.Name()),
				zap.String(logFieldDirectoryConstant, directory),
			)
			continue
		}

		candidatesByCategory[entryCategory] = append(candidatesByCategory[entryCategory], filepath.Join(directory, directoryEntry.Name()))
	}

	locatedArtifacts := make(map[Category]string, len(requiredCategories))
	for _, requiredCategory := range requiredCategories {
		categoryCandidates := candidatesByCategory[requiredCategory]
		switch len(categoryCandidates) {
		case 0:
			return nil, MissingArtifactError{Directory: directory, Category: requiredCategory}
		case 1:
			locatedArtifacts[requiredCategory] = categoryCandidates[0]
		default:
			sort.Strings(categoryCandidates)
			return nil, AmbiguousArtifactError{Directory: directory, Category: requiredCategory, Candidates: categoryCandidates}
		}
	}

	return locatedArtifacts, nil
}
