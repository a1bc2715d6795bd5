// Package pathutils normalizes filesystem path inputs shared across commands.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
	currentDirectoryConstant        = "."
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// ProjectRootResolver converts project root inputs into usable filesystem paths.
type ProjectRootResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewProjectRootResolver constructs a ProjectRootResolver using the operating system lookup.
func NewProjectRootResolver() *ProjectRootResolver {
	return NewProjectRootResolverWithProvider(os.UserHomeDir)
}

// NewProjectRootResolverWithProvider constructs a ProjectRootResolver with a custom home directory provider.
func NewProjectRootResolverWithProvider(provider HomeDirectoryProvider) *ProjectRootResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &ProjectRootResolver{homeDirectoryProvider: provider}
}

// Resolve trims the candidate root, expands a leading tilde, and cleans the result.
// An empty candidate resolves to the current directory.
func (resolver *ProjectRootResolver) Resolve(candidateRoot string) string {
	trimmedRoot := strings.TrimSpace(candidateRoot)
	if len(trimmedRoot) == 0 {
		return currentDirectoryConstant
	}

	expandedRoot := resolver.expandHomePrefix(trimmedRoot)
	return filepath.Clean(expandedRoot)
}

func (resolver *ProjectRootResolver) expandHomePrefix(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := resolver.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	if strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) {
		relativePath := strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
		return filepath.Join(resolvedHomeDirectory, relativePath)
	}

	return candidatePath
}

func (resolver *ProjectRootResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
