package codebasedoc

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"

	"github.com/spf13/afero"
)

const (
	// DefaultDocumentationPath is the documentation file location relative to the project root.
	DefaultDocumentationPath = ".agent/CODEBASE.md"

	statsLineTemplateConstant         = "**Stats:** %d tabelas | %d paginas | %d hooks | %d views | %d components"
	documentationReadErrorTemplate    = "unable to read documentation %s: %w"
	statsPatternExpressionConstant    = `Stats:\*{0,2}\s*(\d+)\s*(?:tabelas|tables)\s*\|\s*(\d+)\s*(?:paginas|pages)\s*\|\s*(\d+)\s*hooks\s*\|\s*(\d+)\s*views(?:\s*\|\s*(\d+)\s*components)?`
	statsTablesGroupIndexConstant     = 1
	statsPagesGroupIndexConstant      = 2
	statsHooksGroupIndexConstant      = 3
	statsViewsGroupIndexConstant      = 4
	statsComponentsGroupIndexConstant = 5
)

var statsPattern = regexp.MustCompile(statsPatternExpressionConstant)

// Stats are the resource counts recorded in the documentation header.
type Stats struct {
	Tables     int
	Pages      int
	Hooks      int
	Views      int
	Components int
}

// Line renders the stats in the canonical bold header form, always with five fields.
func (stats Stats) Line() string {
	return fmt.Sprintf(statsLineTemplateConstant, stats.Tables, stats.Pages, stats.Hooks, stats.Views, stats.Components)
}

// ParseStats extracts the first stats line from content. The second result is false when no line matches.
func ParseStats(content string) (Stats, bool) {
	submatches := statsPattern.FindStringSubmatch(content)
	if submatches == nil {
		return Stats{}, false
	}

	return Stats{
		Tables:     parseCount(submatches[statsTablesGroupIndexConstant]),
		Pages:      parseCount(submatches[statsPagesGroupIndexConstant]),
		Hooks:      parseCount(submatches[statsHooksGroupIndexConstant]),
		Views:      parseCount(submatches[statsViewsGroupIndexConstant]),
		Components: parseCount(submatches[statsComponentsGroupIndexConstant]),
	}, true
}

// ReadStats parses the stats line of the documentation file at path.
// A missing file or a file without a stats line yields zero counts.
func ReadStats(fileSystem afero.Fs, path string) (Stats, error) {
	content, readError := afero.ReadFile(fileSystem, path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Stats{}, nil
		}
		return Stats{}, fmt.Errorf(documentationReadErrorTemplate, path, readError)
	}

	stats, _ := ParseStats(string(content))
	return stats, nil
}

func parseCount(value string) int {
	if len(value) == 0 {
		return 0
	}
	count, conversionError := strconv.Atoi(value)
	if conversionError != nil {
		return 0
	}
	return count
}

// Reader reads documentation stats from a filesystem.
type Reader struct {
	fileSystem afero.Fs
}

// NewReader constructs a Reader over fileSystem.
func NewReader(fileSystem afero.Fs) *Reader {
	return &Reader{fileSystem: fileSystem}
}

// ReadStats parses the stats line of the documentation file at path.
func (reader *Reader) ReadStats(path string) (Stats, error) {
	return ReadStats(reader.fileSystem, path)
}
