package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/codebase-sync/internal/scanner"
)

const (
	testFileContentConstant = "export {}\n"
)

func writeProjectFiles(testInstance *testing.T, projectDirectory string, relativePaths ...string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(projectDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(testFileContentConstant), 0o600))
	}
}

func TestScannerHooksListsDirectModulesWithoutExtension(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeProjectFiles(testInstance, projectDirectory,
		"src/hooks/useProposals.ts",
		"src/hooks/useAuth.ts",
		"src/hooks/useWidget.tsx",
		"src/hooks/nested/useNested.ts",
		"src/hooks/README.md",
	)

	hooks, scanError := scanner.NewForDirectory(projectDirectory, scanner.DefaultLayout()).Hooks()
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{"useAuth", "useProposals"}, hooks)
}

func TestScannerPagesExcludesComponentSegments(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeProjectFiles(testInstance, projectDirectory,
		"src/pages/Dashboard.tsx",
		"src/pages/admin/Settings.tsx",
		"src/pages/admin/components/SettingsCard.tsx",
		"src/pages/components/Shared.tsx",
		"src/pages/admin/componentsLegacy/Old.tsx",
		"src/pages/helpers.ts",
	)

	pages, scanError := scanner.NewForDirectory(projectDirectory, scanner.DefaultLayout()).Pages()
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{
		"Dashboard.tsx",
		"admin/Settings.tsx",
		"admin/componentsLegacy/Old.tsx",
	}, pages)
}

func TestScannerComponentsCountsPerDirectory(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeProjectFiles(testInstance, projectDirectory,
		"src/components/admin/FieldManager.tsx",
		"src/components/admin/teams/TeamMembers.tsx",
		"src/components/admin/teams/store.ts",
		"src/components/ui/Button.tsx",
		"src/components/Layout.tsx",
		"src/components/index.ts",
	)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(projectDirectory, "src", "components", "empty"), 0o755))

	inventory, scanError := scanner.NewForDirectory(projectDirectory, scanner.DefaultLayout()).Components()
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, map[string]int{"admin": 2, "ui": 1, "empty": 0}, inventory.ByDirectory)
	require.Equal(testInstance, 4, inventory.Total)
}

func TestScannerUtilsAndLibKeepFullFileNames(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	writeProjectFiles(testInstance, projectDirectory,
		"src/utils/format.ts",
		"src/utils/date.ts",
		"src/lib/supabase.ts",
		"src/lib/nested/ignored.ts",
	)

	projectScanner := scanner.NewForDirectory(projectDirectory, scanner.DefaultLayout())

	utilities, utilsError := projectScanner.Utils()
	require.NoError(testInstance, utilsError)
	require.Equal(testInstance, []string{"date.ts", "format.ts"}, utilities)

	libraries, libError := projectScanner.Lib()
	require.NoError(testInstance, libError)
	require.Equal(testInstance, []string{"supabase.ts"}, libraries)
}

func TestScannerReturnsEmptyResultsForMissingDirectories(testInstance *testing.T) {
	projectScanner := scanner.NewForDirectory(testInstance.TempDir(), scanner.DefaultLayout())

	hooks, hooksError := projectScanner.Hooks()
	require.NoError(testInstance, hooksError)
	require.Empty(testInstance, hooks)

	pages, pagesError := projectScanner.Pages()
	require.NoError(testInstance, pagesError)
	require.Empty(testInstance, pages)

	inventory, componentsError := projectScanner.Components()
	require.NoError(testInstance, componentsError)
	require.Empty(testInstance, inventory.ByDirectory)
	require.Zero(testInstance, inventory.Total)

	utilities, utilsError := projectScanner.Utils()
	require.NoError(testInstance, utilsError)
	require.Empty(testInstance, utilities)

	libraries, libError := projectScanner.Lib()
	require.NoError(testInstance, libError)
	require.Empty(testInstance, libraries)
}

func TestScannerHonorsCustomLayout(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, "app/composables/useCart.js", []byte(testFileContentConstant), 0o600))
	require.NoError(testInstance, afero.WriteFile(fileSystem, "app/composables/useUser.js", []byte(testFileContentConstant), 0o600))

	layout := scanner.Layout{HooksDirectory: "./app/composables/", ModuleExtension: "js"}
	hooks, scanError := scanner.New(fileSystem, layout).Hooks()
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{"useCart", "useUser"}, hooks)
}

func TestContainsSegmentChecksBothSeparators(testInstance *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		expected     bool
	}{
		{name: "forward_nested", relativePath: "admin/components/Card.tsx", expected: true},
		{name: "forward_leading", relativePath: "components/Card.tsx", expected: true},
		{name: "back_nested", relativePath: `admin\components\Card.tsx`, expected: true},
		{name: "back_leading", relativePath: `components\Card.tsx`, expected: true},
		{name: "prefix_only", relativePath: "admin/componentsLegacy/Card.tsx", expected: false},
		{name: "file_name", relativePath: "admin/components.tsx", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, scanner.ContainsSegment(testCase.relativePath, "components"))
		})
	}
}

func TestLayoutSanitizeAppliesDefaults(testInstance *testing.T) {
	sanitized := scanner.Layout{PagesDirectory: " views ", ComponentExtension: "vue"}.Sanitize()

	require.Equal(testInstance, "views", sanitized.PagesDirectory)
	require.Equal(testInstance, ".vue", sanitized.ComponentExtension)
	require.Equal(testInstance, scanner.DefaultLayout().HooksDirectory, sanitized.HooksDirectory)
	require.Equal(testInstance, scanner.DefaultLayout().ExcludedPageSegment, sanitized.ExcludedPageSegment)
}
