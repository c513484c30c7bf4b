package audit

import (
	"strings"
	"time"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
	"github.com/temirov/codebase-sync/internal/scanner"
	"github.com/temirov/codebase-sync/internal/schema"
)

const (
	defaultEnvironmentPathConstant            = ".env"
	configurationKeySeparatorConstant         = "."
	documentationPathConfigurationKey         = "documentation_path"
	environmentPathConfigurationKey           = "environment_path"
	typesPathConfigurationKey                 = "types_path"
	requestTimeoutConfigurationKey            = "request_timeout"
	formatConfigurationKey                    = "format"
	layoutConfigurationKey                    = "layout"
	layoutHooksConfigurationKey               = "hooks"
	layoutPagesConfigurationKey               = "pages"
	layoutComponentsConfigurationKey          = "components"
	layoutUtilsConfigurationKey               = "utils"
	layoutLibConfigurationKey                 = "lib"
	layoutModuleExtensionConfigurationKey     = "module_extension"
	layoutComponentExtensionConfigurationKey  = "component_extension"
	layoutExcludedPageSegmentConfigurationKey = "excluded_page_segment"
)

// CommandConfiguration captures persistent settings for the sync command.
// Paths are relative to the project root.
type CommandConfiguration struct {
	DocumentationPath string         `mapstructure:"documentation_path"`
	EnvironmentPath   string         `mapstructure:"environment_path"`
	TypesPath         string         `mapstructure:"types_path"`
	RequestTimeout    time.Duration  `mapstructure:"request_timeout"`
	Format            string         `mapstructure:"format"`
	Layout            scanner.Layout `mapstructure:"layout"`
}

// DefaultCommandConfiguration returns baseline configuration values for the sync command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DocumentationPath: codebasedoc.DefaultDocumentationPath,
		EnvironmentPath:   defaultEnvironmentPathConstant,
		TypesPath:         schema.DefaultTypesFilePath,
		RequestTimeout:    schema.DefaultRequestTimeout,
		Format:            string(ReportFormatTable),
		Layout:            scanner.DefaultLayout(),
	}
}

// DefaultConfigurationValues exposes the default configuration as viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := strings.TrimSpace(prefix)
	if len(keyPrefix) > 0 {
		keyPrefix += configurationKeySeparatorConstant
	}
	layoutPrefix := keyPrefix + layoutConfigurationKey + configurationKeySeparatorConstant

	return map[string]any{
		keyPrefix + documentationPathConfigurationKey:            defaults.DocumentationPath,
		keyPrefix + environmentPathConfigurationKey:              defaults.EnvironmentPath,
		keyPrefix + typesPathConfigurationKey:                    defaults.TypesPath,
		keyPrefix + requestTimeoutConfigurationKey:               defaults.RequestTimeout.String(),
		keyPrefix + formatConfigurationKey:                       defaults.Format,
		layoutPrefix + layoutHooksConfigurationKey:               defaults.Layout.HooksDirectory,
		layoutPrefix + layoutPagesConfigurationKey:               defaults.Layout.PagesDirectory,
		layoutPrefix + layoutComponentsConfigurationKey:          defaults.Layout.ComponentsDirectory,
		layoutPrefix + layoutUtilsConfigurationKey:               defaults.Layout.UtilsDirectory,
		layoutPrefix + layoutLibConfigurationKey:                 defaults.Layout.LibDirectory,
		layoutPrefix + layoutModuleExtensionConfigurationKey:     defaults.Layout.ModuleExtension,
		layoutPrefix + layoutComponentExtensionConfigurationKey:  defaults.Layout.ComponentExtension,
		layoutPrefix + layoutExcludedPageSegmentConfigurationKey: defaults.Layout.ExcludedPageSegment,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.DocumentationPath = valueOrDefault(configuration.DocumentationPath, defaults.DocumentationPath)
	sanitized.EnvironmentPath = valueOrDefault(configuration.EnvironmentPath, defaults.EnvironmentPath)
	sanitized.TypesPath = valueOrDefault(configuration.TypesPath, defaults.TypesPath)
	sanitized.Format = valueOrDefault(configuration.Format, defaults.Format)
	if sanitized.RequestTimeout <= 0 {
		sanitized.RequestTimeout = defaults.RequestTimeout
	}
	sanitized.Layout = configuration.Layout.Sanitize()

	return sanitized
}

func valueOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}
