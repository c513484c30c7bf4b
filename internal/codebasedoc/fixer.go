package codebasedoc

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	lastUpdatedDateLayoutConstant         = "2006-01-02"
	lastUpdatedLabelConstant              = "**Last Updated:** "
	lineSeparatorConstant                 = "\n"
	carriageReturnConstant                = "\r"
	documentationNotFoundMessageConstant  = "documentation file not found"
	documentationNotFoundTemplateConstant = "%w: %s"
	documentationStatErrorTemplate        = "unable to inspect documentation %s: %w"
	documentationWriteErrorTemplate       = "unable to write documentation %s: %w"
)

var (
	// ErrDocumentationNotFound indicates the documentation file to fix does not exist.
	ErrDocumentationNotFound = errors.New(documentationNotFoundMessageConstant)

	boldStatsLabelPattern  = regexp.MustCompile(`\*\*Stats:\*\*`)
	lastUpdatedLinePattern = regexp.MustCompile(`\*\*Last Updated:\*\*`)
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixResult counts the lines a fix rewrote.
type FixResult struct {
	StatsLinesUpdated     int
	TimestampLinesUpdated int
}

// Changed reports whether any line was rewritten.
func (result FixResult) Changed() bool {
	return result.StatsLinesUpdated > 0 || result.TimestampLinesUpdated > 0
}

// Fixer rewrites the stats and Last Updated lines of a documentation file.
type Fixer struct {
	fileSystem afero.Fs
	clock      Clock
}

// NewFixer constructs a Fixer. A nil clock uses SystemClock.
func NewFixer(fileSystem afero.Fs, clock Clock) *Fixer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Fixer{fileSystem: fileSystem, clock: clock}
}

// Preview is the outcome of a fix computed without writing it.
type Preview struct {
	Original string
	Updated  string
	Result   FixResult
	mode     fs.FileMode
}

// Preview computes the rewritten documentation without modifying the file.
func (fixer *Fixer) Preview(path string, stats Stats) (Preview, error) {
	fileInfo, statError := fixer.fileSystem.Stat(path)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Preview{}, fmt.Errorf(documentationNotFoundTemplateConstant, ErrDocumentationNotFound, path)
		}
		return Preview{}, fmt.Errorf(documentationStatErrorTemplate, path, statError)
	}

	content, readError := afero.ReadFile(fixer.fileSystem, path)
	if readError != nil {
		return Preview{}, fmt.Errorf(documentationReadErrorTemplate, path, readError)
	}

	updatedContent, result := RewriteContent(string(content), stats, fixer.clock.Now())
	return Preview{
		Original: string(content),
		Updated:  updatedContent,
		Result:   result,
		mode:     fileInfo.Mode().Perm(),
	}, nil
}

// Fix replaces every stats line with stats and every Last Updated line with today's date.
// All other bytes, including line endings and the file mode, are preserved, and the file is written once.
func (fixer *Fixer) Fix(path string, stats Stats) (FixResult, error) {
	preview, previewError := fixer.Preview(path, stats)
	if previewError != nil {
		return FixResult{}, previewError
	}

	if writeError := afero.WriteFile(fixer.fileSystem, path, []byte(preview.Updated), preview.mode); writeError != nil {
		return FixResult{}, fmt.Errorf(documentationWriteErrorTemplate, path, writeError)
	}
	return preview.Result, nil
}

// RewriteContent applies the stats and Last Updated substitutions to content line by line.
func RewriteContent(content string, stats Stats, now time.Time) (string, FixResult) {
	statsLine := stats.Line()
	lastUpdatedLine := lastUpdatedLabelConstant + now.Format(lastUpdatedDateLayoutConstant)

	var result FixResult
	var builder strings.Builder
	builder.Grow(len(content))

	for _, line := range strings.SplitAfter(content, lineSeparatorConstant) {
		body, ending := splitLineEnding(line)

		if replaced, ok := replaceFrom(body, statsLabelIndex(body), statsLine); ok {
			body = replaced
			result.StatsLinesUpdated++
		} else if location := lastUpdatedLinePattern.FindStringIndex(body); location != nil {
			body = body[:location[0]] + lastUpdatedLine
			result.TimestampLinesUpdated++
		}

		builder.WriteString(body)
		builder.WriteString(ending)
	}

	return builder.String(), result
}

// statsLabelIndex locates the bold label first, then any recognizable plain stats line.
func statsLabelIndex(line string) int {
	if location := boldStatsLabelPattern.FindStringIndex(line); location != nil {
		return location[0]
	}
	if location := statsPattern.FindStringIndex(line); location != nil {
		return location[0]
	}
	return -1
}

func replaceFrom(line string, index int, replacement string) (string, bool) {
	if index < 0 {
		return line, false
	}
	return line[:index] + replacement, true
}

func splitLineEnding(line string) (string, string) {
	if !strings.HasSuffix(line, lineSeparatorConstant) {
		return line, ""
	}
	body := strings.TrimSuffix(line, lineSeparatorConstant)
	if strings.HasSuffix(body, carriageReturnConstant) {
		return strings.TrimSuffix(body, carriageReturnConstant), carriageReturnConstant + lineSeparatorConstant
	}
	return body, lineSeparatorConstant
}
