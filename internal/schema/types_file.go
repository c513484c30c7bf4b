package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"

	"github.com/spf13/afero"
)

// DefaultTypesFilePath is the generated type-declaration file, relative to the project root.
const DefaultTypesFilePath = "src/database.types.ts"

const typesFileReadErrorTemplate = "unable to read type declarations %s: %w"

var (
	tablesBlockStartExpression = regexp.MustCompile(`Tables:\s*\{`)
	tablesBlockEndExpression   = regexp.MustCompile(`\n\s{4}(?:Views|Functions):\s*\{`)
	viewsBlockStartExpression  = regexp.MustCompile(`Views:\s*\{`)
	viewsBlockEndExpression    = regexp.MustCompile(`\n\s{4}Functions:\s*\{`)
	memberNameExpression       = regexp.MustCompile(`(?m)^ {6}(\w+):\s*\{`)
)

// TypesFileProvider reads table and view names from the generated type-declaration file.
type TypesFileProvider struct {
	fileSystem afero.Fs
	filePath   string
}

// NewTypesFileProvider constructs a provider reading filePath from fileSystem.
func NewTypesFileProvider(fileSystem afero.Fs, filePath string) *TypesFileProvider {
	if len(filePath) == 0 {
		filePath = DefaultTypesFilePath
	}
	return &TypesFileProvider{fileSystem: fileSystem, filePath: filePath}
}

// Tables returns the members of the first Tables block. A missing file yields no names.
func (provider *TypesFileProvider) Tables(executionContext context.Context) ([]string, error) {
	content, found, readError := provider.read()
	if readError != nil || !found {
		return nil, readError
	}
	return ParseTableNames(content), nil
}

// Views returns the members of the first Views block. A missing file yields no names.
func (provider *TypesFileProvider) Views(executionContext context.Context) ([]string, error) {
	content, found, readError := provider.read()
	if readError != nil || !found {
		return nil, readError
	}
	return ParseViewNames(content), nil
}

func (provider *TypesFileProvider) read() (string, bool, error) {
	content, readError := afero.ReadFile(provider.fileSystem, provider.filePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(typesFileReadErrorTemplate, provider.filePath, readError)
	}
	return string(content), true, nil
}

// ParseTableNames extracts the six-space-indented members of the Tables block, which ends at the
// next four-space-indented Views or Functions block.
func ParseTableNames(content string) []string {
	return extractBlockMembers(content, tablesBlockStartExpression, tablesBlockEndExpression)
}

// ParseViewNames extracts the six-space-indented members of the Views block, which ends at the
// next four-space-indented Functions block.
func ParseViewNames(content string) []string {
	return extractBlockMembers(content, viewsBlockStartExpression, viewsBlockEndExpression)
}

func extractBlockMembers(content string, startExpression *regexp.Regexp, endExpression *regexp.Regexp) []string {
	startLocation := startExpression.FindStringIndex(content)
	if startLocation == nil {
		return []string{}
	}

	section := content[startLocation[0]:]
	if endLocation := endExpression.FindStringIndex(section[startLocation[1]-startLocation[0]:]); endLocation != nil {
		section = section[:startLocation[1]-startLocation[0]+endLocation[0]]
	}

	matches := memberNameExpression.FindAllStringSubmatch(section, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return sortedNameSet(names)
}

func sortedNameSet(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return unique
}
