package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

const (
	environmentReadErrorTemplateConstant = "unable to read environment file %s: %w"
	quoteCharactersConstant              = "\"'"
	lineSeparatorConstant                = "\n"
	commentPrefixConstant                = "#"
	assignmentSeparatorConstant          = "="
)

// Environment maps configuration keys to their string values.
type Environment map[string]string

// Load reads a dotenv-style file from fileSystem. A missing file yields an empty Environment.
func Load(fileSystem afero.Fs, environmentFilePath string) (Environment, error) {
	fileContent, readError := afero.ReadFile(fileSystem, environmentFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Environment{}, nil
		}
		return nil, fmt.Errorf(environmentReadErrorTemplateConstant, environmentFilePath, readError)
	}

	return Parse(fileContent), nil
}

// Parse interprets KEY=VALUE lines, ignoring blank lines, comments, and lines gotenv rejects,
// and trimming quotes from values.
func Parse(content []byte) Environment {
	parsedValues := gotenv.Parse(strings.NewReader(acceptedLines(string(content))))

	environment := make(Environment, len(parsedValues))
	for key, value := range parsedValues {
		trimmedKey := strings.TrimSpace(key)
		if len(trimmedKey) == 0 {
			continue
		}
		environment[trimmedKey] = strings.Trim(strings.TrimSpace(value), quoteCharactersConstant)
	}

	return environment
}

// acceptedLines keeps the assignment lines gotenv can parse on their own, so a malformed
// line does not end parsing of the lines after it.
func acceptedLines(content string) string {
	var builder strings.Builder
	for _, line := range strings.Split(content, lineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, commentPrefixConstant) {
			continue
		}
		if !strings.Contains(trimmedLine, assignmentSeparatorConstant) {
			continue
		}
		if _, parseError := gotenv.StrictParse(strings.NewReader(trimmedLine)); parseError != nil {
			continue
		}
		builder.WriteString(trimmedLine)
		builder.WriteString(lineSeparatorConstant)
	}
	return builder.String()
}

// Value returns the value stored under key, or an empty string.
func (environment Environment) Value(key string) string {
	return environment[key]
}

// FirstValue returns the first non-empty value among keys.
func (environment Environment) FirstValue(keys ...string) string {
	for _, key := range keys {
		if value := environment[key]; len(value) > 0 {
			return value
		}
	}
	return ""
}
