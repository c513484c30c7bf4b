package audit

import (
	"fmt"
	"net/http"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
	"github.com/temirov/codebase-sync/internal/environment"
	"github.com/temirov/codebase-sync/internal/scanner"
	"github.com/temirov/codebase-sync/internal/schema"
	"github.com/temirov/codebase-sync/internal/utils/flags"
	pathutils "github.com/temirov/codebase-sync/internal/utils/path"
)

const (
	commandUseConstant                   = "codebase-sync [project-path]"
	commandShortDescription              = "Check that the codebase documentation matches the project"
	commandLongDescription               = "codebase-sync counts hooks, pages, components, utility and library modules, and database tables and views, compares them with the stats line of the documentation file, and optionally rewrites that line."
	flagAuditName                        = "audit"
	flagAuditDescription                 = "Only report differences (default)"
	flagFixName                          = "fix"
	flagFixDescription                   = "Rewrite the stats and Last Updated lines of the documentation file"
	flagDryRunName                       = "dry-run"
	flagDryRunDescription                = "Show the changes --fix would make without writing them"
	flagStrictName                       = "strict"
	flagStrictDescription                = "Exit with an error when hooks, pages, tables, or views are out of sync"
	flagVerboseName                      = "verbose"
	flagVerboseShorthand                 = "v"
	flagVerboseDescription               = "Show component directories and resource names"
	flagFormatName                       = "format"
	flagFormatDescription                = "Report format (defaults to the configured format)."
	environmentLoadErrorTemplateConstant = "unable to load project environment: %w"
	logMessageProjectResolvedConstant    = "project resolved"
	logFieldProjectPathConstant          = "project_path"
	logFieldRemoteAvailableConstant      = "remote_schema_available"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current sync configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the sync cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	HTTPClient            *http.Client
	Clock                 codebasedoc.Clock
	PathResolver          *pathutils.ProjectPathResolver
}

// Build constructs the cobra command for documentation sync workflows.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagAuditName, false, flagAuditDescription)
	command.Flags().Bool(flagFixName, false, flagFixDescription)
	command.Flags().Bool(flagDryRunName, false, flagDryRunDescription)
	command.Flags().Bool(flagStrictName, false, flagStrictDescription)
	command.Flags().BoolP(flagVerboseName, flagVerboseShorthand, false, flagVerboseDescription)
	command.Flags().String(flagFormatName, "", flags.ChoiceUsage(string(ReportFormatTable), []string{string(ReportFormatTable), string(ReportFormatJSON), string(ReportFormatYAML)}, flagFormatDescription))
	command.MarkFlagsMutuallyExclusive(flagAuditName, flagFixName)
	command.MarkFlagsMutuallyExclusive(flagAuditName, flagDryRunName)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options, optionsError := builder.parseOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	projectArgument := ""
	if len(arguments) > 0 {
		projectArgument = arguments[0]
	}
	projectPath, resolveError := builder.resolvePathResolver().Resolve(projectArgument)
	if resolveError != nil {
		return resolveError
	}

	logger := builder.resolveLogger()
	projectFileSystem := afero.NewBasePathFs(afero.NewOsFs(), projectPath)

	projectEnvironment, environmentError := environment.Load(projectFileSystem, configuration.EnvironmentPath)
	if environmentError != nil {
		return fmt.Errorf(environmentLoadErrorTemplateConstant, environmentError)
	}

	remoteProvider := schema.NewRemoteProvider(schema.RemoteConfiguration{
		BaseURL:        projectEnvironment.Value(schema.BaseURLEnvironmentKey),
		AnonKey:        projectEnvironment.Value(schema.AnonKeyEnvironmentKey),
		ServiceRoleKey: projectEnvironment.Value(schema.ServiceRoleKeyEnvironmentKey),
		Timeout:        configuration.RequestTimeout,
	}, builder.HTTPClient)
	schemaProvider := schema.NewFallbackProvider(remoteProvider, schema.NewTypesFileProvider(projectFileSystem, configuration.TypesPath), logger)

	logger.Info(
		logMessageProjectResolvedConstant,
		zap.String(logFieldProjectPathConstant, projectPath),
		zap.String(logFieldDocumentationPathConstant, configuration.DocumentationPath),
		zap.Bool(logFieldRemoteAvailableConstant, remoteProvider.Available()),
	)

	service := NewService(
		scanner.New(projectFileSystem, configuration.Layout),
		schemaProvider,
		codebasedoc.NewReader(projectFileSystem),
		codebasedoc.NewFixer(projectFileSystem, builder.Clock),
		command.OutOrStdout(),
		logger,
	)

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) (CommandOptions, error) {
	fixFlag, _ := command.Flags().GetBool(flagFixName)
	dryRunFlag, _ := command.Flags().GetBool(flagDryRunName)
	strictFlag, _ := command.Flags().GetBool(flagStrictName)
	verboseFlag, _ := command.Flags().GetBool(flagVerboseName)

	formatValue := configuration.Format
	if command.Flags().Changed(flagFormatName) {
		formatValue, _ = command.Flags().GetString(flagFormatName)
	}
	format, formatError := ParseReportFormat(formatValue)
	if formatError != nil {
		return CommandOptions{}, formatError
	}

	return CommandOptions{
		DocumentationPath: configuration.DocumentationPath,
		Fix:               fixFlag,
		DryRun:            dryRunFlag,
		Strict:            strictFlag,
		Verbose:           verboseFlag,
		Format:            format,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolvePathResolver() *pathutils.ProjectPathResolver {
	if builder.PathResolver == nil {
		return pathutils.NewProjectPathResolver()
	}
	return builder.PathResolver
}
