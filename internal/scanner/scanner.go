package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

const (
	singleLevelPatternPrefixConstant = "*"
	recursivePatternPrefixConstant   = "**/*"
	forwardSlashSeparatorConstant    = "/"
	backSlashSeparatorConstant       = `\`
	directoryInspectionErrorTemplate = "unable to inspect directory %s: %w"
	directoryListingErrorTemplate    = "unable to list directory %s: %w"
	globErrorTemplate                = "unable to match %s in %s: %w"
	directorySubtreeErrorTemplate    = "unable to open directory %s: %w"
)

// ComponentInventory counts component files per immediate subdirectory of the components root.
type ComponentInventory struct {
	ByDirectory map[string]int
	Total       int
}

// Scanner enumerates resources beneath a project root exposed as an afero.Fs.
type Scanner struct {
	fileSystem   afero.Fs
	ioFileSystem fs.FS
	layout       Layout
}

// New constructs a Scanner over fileSystem, which must be rooted at the project directory.
func New(fileSystem afero.Fs, layout Layout) *Scanner {
	return &Scanner{
		fileSystem:   fileSystem,
		ioFileSystem: afero.NewIOFS(fileSystem),
		layout:       layout.Sanitize(),
	}
}

// NewForDirectory constructs a Scanner rooted at projectDirectory on the operating system filesystem.
func NewForDirectory(projectDirectory string, layout Layout) *Scanner {
	return New(afero.NewBasePathFs(afero.NewOsFs(), projectDirectory), layout)
}

// Layout reports the sanitized layout used by the scanner.
func (scanner *Scanner) Layout() Layout {
	return scanner.layout
}

// Hooks lists module files directly inside the hooks directory, without their extension.
func (scanner *Scanner) Hooks() ([]string, error) {
	matches, matchError := scanner.matchFiles(scanner.layout.HooksDirectory, singleLevelPatternPrefixConstant+scanner.layout.ModuleExtension)
	if matchError != nil {
		return nil, matchError
	}

	hookNames := make([]string, 0, len(matches))
	for _, match := range matches {
		hookNames = append(hookNames, strings.TrimSuffix(match, scanner.layout.ModuleExtension))
	}

	return sortedUnique(hookNames), nil
}

// Pages lists component files anywhere beneath the pages directory, relative to it, skipping
// any path that passes through the excluded segment.
func (scanner *Scanner) Pages() ([]string, error) {
	matches, matchError := scanner.matchFiles(scanner.layout.PagesDirectory, recursivePatternPrefixConstant+scanner.layout.ComponentExtension)
	if matchError != nil {
		return nil, matchError
	}

	pageNames := make([]string, 0, len(matches))
	for _, match := range matches {
		if ContainsSegment(match, scanner.layout.ExcludedPageSegment) {
			continue
		}
		pageNames = append(pageNames, match)
	}

	return sortedUnique(pageNames), nil
}

// Components counts component files recursively for each immediate subdirectory of the components
// directory. Component files placed directly in the components directory count toward Total only.
func (scanner *Scanner) Components() (ComponentInventory, error) {
	inventory := ComponentInventory{ByDirectory: map[string]int{}}

	componentsDirectory := scanner.layout.ComponentsDirectory
	exists, existsError := scanner.directoryExists(componentsDirectory)
	if existsError != nil {
		return inventory, existsError
	}
	if !exists {
		return inventory, nil
	}

	entries, listError := afero.ReadDir(scanner.fileSystem, componentsDirectory)
	if listError != nil {
		return inventory, fmt.Errorf(directoryListingErrorTemplate, componentsDirectory, listError)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			matches, matchError := scanner.matchFiles(path.Join(componentsDirectory, entry.Name()), recursivePatternPrefixConstant+scanner.layout.ComponentExtension)
			if matchError != nil {
				return inventory, matchError
			}
			inventory.ByDirectory[entry.Name()] = len(matches)
			inventory.Total += len(matches)
			continue
		}

		if path.Ext(entry.Name()) == scanner.layout.ComponentExtension {
			inventory.Total++
		}
	}

	return inventory, nil
}

// Utils lists module files directly inside the utils directory by full file name.
func (scanner *Scanner) Utils() ([]string, error) {
	return scanner.listModules(scanner.layout.UtilsDirectory)
}

// Lib lists module files directly inside the lib directory by full file name.
func (scanner *Scanner) Lib() ([]string, error) {
	return scanner.listModules(scanner.layout.LibDirectory)
}

// ContainsSegment reports whether relativePath passes through a directory named segment, accepting
// either forward or back slash separators.
func ContainsSegment(relativePath string, segment string) bool {
	if len(segment) == 0 {
		return false
	}

	forwardSlashNeedle := forwardSlashSeparatorConstant + segment + forwardSlashSeparatorConstant
	backSlashNeedle := backSlashSeparatorConstant + segment + backSlashSeparatorConstant

	return strings.Contains(forwardSlashSeparatorConstant+relativePath, forwardSlashNeedle) ||
		strings.Contains(backSlashSeparatorConstant+relativePath, backSlashNeedle)
}

func (scanner *Scanner) listModules(directory string) ([]string, error) {
	matches, matchError := scanner.matchFiles(directory, singleLevelPatternPrefixConstant+scanner.layout.ModuleExtension)
	if matchError != nil {
		return nil, matchError
	}
	return sortedUnique(matches), nil
}

// matchFiles returns regular files under directory matching pattern, as slash-separated paths relative to directory.
func (scanner *Scanner) matchFiles(directory string, pattern string) ([]string, error) {
	exists, existsError := scanner.directoryExists(directory)
	if existsError != nil {
		return nil, existsError
	}
	if !exists {
		return nil, nil
	}

	directoryFileSystem, subError := fs.Sub(scanner.ioFileSystem, directory)
	if subError != nil {
		return nil, fmt.Errorf(directorySubtreeErrorTemplate, directory, subError)
	}

	matches, globError := doublestar.Glob(directoryFileSystem, pattern, doublestar.WithFilesOnly())
	if globError != nil {
		return nil, fmt.Errorf(globErrorTemplate, pattern, directory, globError)
	}

	return matches, nil
}

func (scanner *Scanner) directoryExists(directory string) (bool, error) {
	exists, existsError := afero.DirExists(scanner.fileSystem, directory)
	if existsError != nil {
		return false, fmt.Errorf(directoryInspectionErrorTemplate, directory, existsError)
	}
	return exists, nil
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	sort.Strings(unique)
	return unique
}
