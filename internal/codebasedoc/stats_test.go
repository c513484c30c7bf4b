package codebasedoc_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
)

func TestParseStats(testInstance *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectedStats codebasedoc.Stats
		expectedFound bool
	}{
		{
			name:          "blockquote_bold_four_fields",
			content:       "# Codebase\n\n> **Stats:** 94 tabelas | 35 paginas | 48 hooks | 16 views\n",
			expectedStats: codebasedoc.Stats{Tables: 94, Pages: 35, Hooks: 48, Views: 16},
			expectedFound: true,
		},
		{
			name:          "five_fields",
			content:       "**Stats:** 3 tabelas | 2 paginas | 1 hooks | 0 views | 12 components",
			expectedStats: codebasedoc.Stats{Tables: 3, Pages: 2, Hooks: 1, Views: 0, Components: 12},
			expectedFound: true,
		},
		{
			name:          "plain_label_compact_spacing",
			content:       "Stats:7 tabelas|8 paginas|9 hooks|10 views",
			expectedStats: codebasedoc.Stats{Tables: 7, Pages: 8, Hooks: 9, Views: 10},
			expectedFound: true,
		},
		{
			name:          "english_unit_aliases",
			content:       "> **Stats:** 4 tables | 5 pages | 6 hooks | 1 views | 2 components",
			expectedStats: codebasedoc.Stats{Tables: 4, Pages: 5, Hooks: 6, Views: 1, Components: 2},
			expectedFound: true,
		},
		{
			name:          "first_line_wins",
			content:       "**Stats:** 1 tabelas | 1 paginas | 1 hooks | 1 views\n**Stats:** 2 tabelas | 2 paginas | 2 hooks | 2 views\n",
			expectedStats: codebasedoc.Stats{Tables: 1, Pages: 1, Hooks: 1, Views: 1},
			expectedFound: true,
		},
		{
			name:    "missing_stats",
			content: "# Codebase\n\nNothing recorded yet.\n",
		},
		{
			name:    "incomplete_stats",
			content: "**Stats:** 94 tabelas | 35 paginas",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			stats, found := codebasedoc.ParseStats(testCase.content)
			require.Equal(subTest, testCase.expectedFound, found)
			require.Equal(subTest, testCase.expectedStats, stats)
		})
	}
}

func TestReadStats(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, codebasedoc.DefaultDocumentationPath, []byte("> **Stats:** 94 tabelas | 35 paginas | 48 hooks | 16 views\n"), 0o644))

	stats, readError := codebasedoc.ReadStats(fileSystem, codebasedoc.DefaultDocumentationPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, codebasedoc.Stats{Tables: 94, Pages: 35, Hooks: 48, Views: 16}, stats)

	missingStats, missingError := codebasedoc.ReadStats(fileSystem, "docs/MISSING.md")
	require.NoError(testInstance, missingError)
	require.Equal(testInstance, codebasedoc.Stats{}, missingStats)
}

func TestStatsLine(testInstance *testing.T) {
	stats := codebasedoc.Stats{Tables: 94, Pages: 35, Hooks: 48, Views: 16}
	require.Equal(testInstance, "**Stats:** 94 tabelas | 35 paginas | 48 hooks | 16 views | 0 components", stats.Line())

	parsed, found := codebasedoc.ParseStats(stats.Line())
	require.True(testInstance, found)
	require.Equal(testInstance, stats, parsed)
}
