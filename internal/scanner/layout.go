package scanner

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	defaultHooksDirectoryConstant      = "src/hooks"
	defaultPagesDirectoryConstant      = "src/pages"
	defaultComponentsDirectoryConstant = "src/components"
	defaultUtilsDirectoryConstant      = "src/utils"
	defaultLibDirectoryConstant        = "src/lib"
	defaultModuleExtensionConstant     = ".ts"
	defaultComponentExtensionConstant  = ".tsx"
	defaultExcludedPageSegmentConstant = "components"
)

// Layout names the project directories inspected by Scanner, relative to the project root.
type Layout struct {
	HooksDirectory      string `mapstructure:"hooks"`
	PagesDirectory      string `mapstructure:"pages"`
	ComponentsDirectory string `mapstructure:"components"`
	UtilsDirectory      string `mapstructure:"utils"`
	LibDirectory        string `mapstructure:"lib"`
	ModuleExtension     string `mapstructure:"module_extension"`
	ComponentExtension  string `mapstructure:"component_extension"`
	ExcludedPageSegment string `mapstructure:"excluded_page_segment"`
}

// DefaultLayout returns the conventional Vite/React source layout.
func DefaultLayout() Layout {
	return Layout{
		HooksDirectory:      defaultHooksDirectoryConstant,
		PagesDirectory:      defaultPagesDirectoryConstant,
		ComponentsDirectory: defaultComponentsDirectoryConstant,
		UtilsDirectory:      defaultUtilsDirectoryConstant,
		LibDirectory:        defaultLibDirectoryConstant,
		ModuleExtension:     defaultModuleExtensionConstant,
		ComponentExtension:  defaultComponentExtensionConstant,
		ExcludedPageSegment: defaultExcludedPageSegmentConstant,
	}
}

// Sanitize fills unset fields from DefaultLayout and normalizes directories to slash-separated relative paths.
func (layout Layout) Sanitize() Layout {
	defaults := DefaultLayout()

	return Layout{
		HooksDirectory:      sanitizeDirectory(layout.HooksDirectory, defaults.HooksDirectory),
		PagesDirectory:      sanitizeDirectory(layout.PagesDirectory, defaults.PagesDirectory),
		ComponentsDirectory: sanitizeDirectory(layout.ComponentsDirectory, defaults.ComponentsDirectory),
		UtilsDirectory:      sanitizeDirectory(layout.UtilsDirectory, defaults.UtilsDirectory),
		LibDirectory:        sanitizeDirectory(layout.LibDirectory, defaults.LibDirectory),
		ModuleExtension:     sanitizeExtension(layout.ModuleExtension, defaults.ModuleExtension),
		ComponentExtension:  sanitizeExtension(layout.ComponentExtension, defaults.ComponentExtension),
		ExcludedPageSegment: sanitizeSegment(layout.ExcludedPageSegment, defaults.ExcludedPageSegment),
	}
}

func sanitizeDirectory(rawDirectory string, fallback string) string {
	trimmed := strings.TrimSpace(rawDirectory)
	if len(trimmed) == 0 {
		return fallback
	}

	cleaned := path.Clean(filepath.ToSlash(trimmed))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if len(cleaned) == 0 || cleaned == "." {
		return fallback
	}
	return cleaned
}

func sanitizeExtension(rawExtension string, fallback string) string {
	trimmed := strings.TrimSpace(rawExtension)
	if len(trimmed) == 0 {
		return fallback
	}
	if !strings.HasPrefix(trimmed, ".") {
		return "." + trimmed
	}
	return trimmed
}

func sanitizeSegment(rawSegment string, fallback string) string {
	trimmed := strings.Trim(strings.TrimSpace(rawSegment), `/\`)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}
