package pathutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant                = "~"
	tildeForwardSlashPrefixConstant    = "~/"
	currentDirectoryPathConstant       = "."
	projectPathMissingTemplateConstant = "%w: %s"
	projectPathNotDirectoryTemplate    = "project path is not a directory: %s"
	projectPathResolutionErrorTemplate = "unable to resolve project path %s: %w"
	projectPathInspectionErrorTemplate = "unable to inspect project path %s: %w"
)

// ErrProjectPathMissing indicates the requested project directory does not exist.
var ErrProjectPathMissing = errors.New("project path does not exist")

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// ProjectPathResolver turns the user-supplied project argument into an absolute, existing directory.
type ProjectPathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewProjectPathResolver constructs a resolver that looks up the home directory through the operating system.
func NewProjectPathResolver() *ProjectPathResolver {
	return NewProjectPathResolverWithProvider(os.UserHomeDir)
}

// NewProjectPathResolverWithProvider constructs a resolver with a custom home directory provider.
func NewProjectPathResolverWithProvider(provider HomeDirectoryProvider) *ProjectPathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &ProjectPathResolver{homeDirectoryProvider: provider}
}

// Resolve expands a leading tilde, makes the path absolute, and verifies it names a directory.
// An empty candidate resolves to the working directory.
func (resolver *ProjectPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		trimmedPath = currentDirectoryPathConstant
	}

	absolutePath, absoluteError := filepath.Abs(resolver.Expand(trimmedPath))
	if absoluteError != nil {
		return "", fmt.Errorf(projectPathResolutionErrorTemplate, trimmedPath, absoluteError)
	}

	pathInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return "", fmt.Errorf(projectPathMissingTemplateConstant, ErrProjectPathMissing, absolutePath)
		}
		return "", fmt.Errorf(projectPathInspectionErrorTemplate, absolutePath, statError)
	}

	if !pathInfo.IsDir() {
		return "", fmt.Errorf(projectPathNotDirectoryTemplate, absolutePath)
	}

	return absolutePath, nil
}

// Expand resolves leading tilde prefixes to the user's home directory.
func (resolver *ProjectPathResolver) Expand(candidatePath string) string {
	if resolver == nil || len(candidatePath) == 0 {
		return candidatePath
	}
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := resolver.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return resolvedHomeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix):
		return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix))
	default:
		return candidatePath
	}
}

func (resolver *ProjectPathResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
