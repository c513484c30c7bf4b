package codebasedoc_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
)

const (
	testDocumentationPathConstant = ".agent/CODEBASE.md"
	testFixedDateConstant         = "2024-05-17"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func newFixedClock(testInstance *testing.T) fixedClock {
	testInstance.Helper()
	instant, parseError := time.Parse("2006-01-02", testFixedDateConstant)
	require.NoError(testInstance, parseError)
	return fixedClock{instant: instant}
}

func TestRewriteContent(testInstance *testing.T) {
	actualStats := codebasedoc.Stats{Tables: 96, Pages: 36, Hooks: 50, Views: 15, Components: 120}
	instant, _ := time.Parse("2006-01-02", testFixedDateConstant)

	testCases := []struct {
		name            string
		content         string
		expectedContent string
		expectedResult  codebasedoc.FixResult
	}{
		{
			name: "blockquote_header",
			content: "# Codebase\n" +
				"> **Stats:** 94 tabelas | 35 paginas | 48 hooks | 16 views\n" +
				"> **Last Updated:** 2024-01-01\n" +
				"\n## Hooks\n- useAuth\n",
			expectedContent: "# Codebase\n" +
				"> **Stats:** 96 tabelas | 36 paginas | 50 hooks | 15 views | 120 components\n" +
				"> **Last Updated:** 2024-05-17\n" +
				"\n## Hooks\n- useAuth\n",
			expectedResult: codebasedoc.FixResult{StatsLinesUpdated: 1, TimestampLinesUpdated: 1},
		},
		{
			name:            "crlf_line_endings",
			content:         "**Stats:** 1 tabelas | 1 paginas | 1 hooks | 1 views\r\n**Last Updated:** yesterday\r\ntrailing text",
			expectedContent: "**Stats:** 96 tabelas | 36 paginas | 50 hooks | 15 views | 120 components\r\n**Last Updated:** 2024-05-17\r\ntrailing text",
			expectedResult:  codebasedoc.FixResult{StatsLinesUpdated: 1, TimestampLinesUpdated: 1},
		},
		{
			name:            "plain_stats_label",
			content:         "Summary Stats: 1 tabelas | 1 paginas | 1 hooks | 1 views\n",
			expectedContent: "Summary **Stats:** 96 tabelas | 36 paginas | 50 hooks | 15 views | 120 components\n",
			expectedResult:  codebasedoc.FixResult{StatsLinesUpdated: 1},
		},
		{
			name:            "no_header_lines",
			content:         "# Codebase\n\nNo header.\n",
			expectedContent: "# Codebase\n\nNo header.\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			rewritten, result := codebasedoc.RewriteContent(testCase.content, actualStats, instant)
			require.Equal(subTest, testCase.expectedContent, rewritten)
			require.Equal(subTest, testCase.expectedResult, result)
		})
	}
}

func TestFixerRewritesDocumentationFile(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	documentationPath := filepath.Join(projectDirectory, testDocumentationPathConstant)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(documentationPath), 0o755))

	originalContent := "# Welcome CRM\n" +
		"> **Stats:** 94 tabelas | 35 paginas | 48 hooks | 16 views\n" +
		"> **Last Updated:** 2024-01-01\n" +
		"\n" +
		"Body text keeps its *formatting*.\n"
	require.NoError(testInstance, os.WriteFile(documentationPath, []byte(originalContent), 0o640))

	fixer := codebasedoc.NewFixer(afero.NewBasePathFs(afero.NewOsFs(), projectDirectory), newFixedClock(testInstance))
	result, fixError := fixer.Fix(testDocumentationPathConstant, codebasedoc.Stats{Tables: 94, Pages: 35, Hooks: 50, Views: 16, Components: 7})
	require.NoError(testInstance, fixError)
	require.True(testInstance, result.Changed())

	updatedContent, readError := os.ReadFile(documentationPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance,
		"# Welcome CRM\n"+
			"> **Stats:** 94 tabelas | 35 paginas | 50 hooks | 16 views | 7 components\n"+
			"> **Last Updated:** 2024-05-17\n"+
			"\n"+
			"Body text keeps its *formatting*.\n",
		string(updatedContent))

	fileInfo, statError := os.Stat(documentationPath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, os.FileMode(0o640), fileInfo.Mode().Perm())

	reparsed, readStatsError := codebasedoc.ReadStats(afero.NewOsFs(), documentationPath)
	require.NoError(testInstance, readStatsError)
	require.Equal(testInstance, codebasedoc.Stats{Tables: 94, Pages: 35, Hooks: 50, Views: 16, Components: 7}, reparsed)
}

func TestFixerRejectsMissingDocumentation(testInstance *testing.T) {
	fixer := codebasedoc.NewFixer(afero.NewMemMapFs(), nil)

	_, fixError := fixer.Fix(testDocumentationPathConstant, codebasedoc.Stats{})
	require.ErrorIs(testInstance, fixError, codebasedoc.ErrDocumentationNotFound)
	require.Contains(testInstance, fixError.Error(), testDocumentationPathConstant)
}

func TestFixerPreviewLeavesFileUntouched(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	originalContent := "**Stats:** 1 tabelas | 1 paginas | 1 hooks | 1 views\n**Last Updated:** 2024-01-01\n"
	require.NoError(testInstance, afero.WriteFile(fileSystem, testDocumentationPathConstant, []byte(originalContent), 0o644))

	fixer := codebasedoc.NewFixer(fileSystem, newFixedClock(testInstance))
	preview, previewError := fixer.Preview(testDocumentationPathConstant, codebasedoc.Stats{Tables: 2, Pages: 1, Hooks: 1, Views: 1})
	require.NoError(testInstance, previewError)
	require.Equal(testInstance, originalContent, preview.Original)
	require.Equal(testInstance, "**Stats:** 2 tabelas | 1 paginas | 1 hooks | 1 views | 0 components\n**Last Updated:** 2024-05-17\n", preview.Updated)
	require.Equal(testInstance, codebasedoc.FixResult{StatsLinesUpdated: 1, TimestampLinesUpdated: 1}, preview.Result)

	storedContent, readError := afero.ReadFile(fileSystem, testDocumentationPathConstant)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, originalContent, string(storedContent))
}
