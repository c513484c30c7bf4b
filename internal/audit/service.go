package audit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
)

const (
	documentationOutOfSyncMessageConstant = "documentation is out of sync"
	scanErrorTemplateConstant             = "unable to scan %s: %w"
	schemaErrorTemplateConstant           = "unable to list %s: %w"
	documentationErrorTemplateConstant    = "unable to read documented stats: %w"
	reportErrorTemplateConstant           = "unable to write report: %w"
	fixErrorTemplateConstant              = "unable to fix documentation: %w"
	logMessageResourcesScannedConstant    = "project resources scanned"
	logMessageReportBuiltConstant         = "sync report built"
	logMessageFixAppliedConstant          = "documentation updated"
	logMessageFixWithoutStatsConstant     = "documentation has no stats line to update"
	logFieldHooksConstant                 = "hooks"
	logFieldPagesConstant                 = "pages"
	logFieldComponentsConstant            = "components"
	logFieldUtilsConstant                 = "utils"
	logFieldLibConstant                   = "lib"
	logFieldTablesConstant                = "tables"
	logFieldViewsConstant                 = "views"
	logFieldSyncedConstant                = "synced"
	logFieldGapCountConstant              = "gap_count"
	logFieldDocumentationPathConstant     = "documentation_path"
	logFieldStatsLinesConstant            = "stats_lines"
	logFieldTimestampLinesConstant        = "timestamp_lines"
)

// ErrDocumentationOutOfSync is returned in strict mode when a gating category is out of sync.
var ErrDocumentationOutOfSync = errors.New(documentationOutOfSyncMessageConstant)

// Service runs one scan, compare, report, and fix pass.
type Service struct {
	resourceScanner     ResourceScanner
	schemaProvider      SchemaProvider
	documentationReader DocumentationReader
	documentationFixer  DocumentationFixer
	reportWriter        *ReportWriter
	logger              *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(resourceScanner ResourceScanner, schemaProvider SchemaProvider, documentationReader DocumentationReader, documentationFixer DocumentationFixer, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resourceScanner:     resourceScanner,
		schemaProvider:      schemaProvider,
		documentationReader: documentationReader,
		documentationFixer:  documentationFixer,
		reportWriter:        NewReportWriter(outputWriter),
		logger:              logger,
	}
}

// Run executes the service according to the provided options and returns the report it built.
// In strict mode an out-of-sync report is returned together with ErrDocumentationOutOfSync.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (SyncReport, error) {
	actualResources, collectError := service.collect(executionContext)
	if collectError != nil {
		return SyncReport{}, collectError
	}

	documentedStats, readError := service.documentationReader.ReadStats(options.DocumentationPath)
	if readError != nil {
		return SyncReport{}, fmt.Errorf(documentationErrorTemplateConstant, readError)
	}

	report := Compare(actualResources, documentedStats)
	service.logger.Info(
		logMessageReportBuiltConstant,
		zap.Bool(logFieldSyncedConstant, report.Synced()),
		zap.Int(logFieldGapCountConstant, len(report.Gaps())),
	)

	if writeError := service.reportWriter.WriteReport(report, options.Format, options.Verbose); writeError != nil {
		return report, fmt.Errorf(reportErrorTemplateConstant, writeError)
	}

	switch {
	case options.DryRun:
		if previewError := service.preview(options, actualResources.Stats()); previewError != nil {
			return report, previewError
		}
	case options.Fix:
		if fixError := service.fix(options, actualResources.Stats()); fixError != nil {
			return report, fixError
		}
	}

	if options.Strict && !report.Synced() {
		if isTableFormat(options.Format) {
			service.reportWriter.WriteStrictFailure()
		}
		return report, ErrDocumentationOutOfSync
	}

	return report, nil
}

func (service *Service) collect(executionContext context.Context) (ActualResources, error) {
	var resources ActualResources
	var scanError error

	if resources.Hooks, scanError = service.resourceScanner.Hooks(); scanError != nil {
		return ActualResources{}, fmt.Errorf(scanErrorTemplateConstant, logFieldHooksConstant, scanError)
	}
	if resources.Pages, scanError = service.resourceScanner.Pages(); scanError != nil {
		return ActualResources{}, fmt.Errorf(scanErrorTemplateConstant, logFieldPagesConstant, scanError)
	}
	componentInventory, componentsError := service.resourceScanner.Components()
	if componentsError != nil {
		return ActualResources{}, fmt.Errorf(scanErrorTemplateConstant, logFieldComponentsConstant, componentsError)
	}
	resources.ComponentsByDirectory = componentInventory.ByDirectory
	resources.ComponentsTotal = componentInventory.Total
	if resources.Utils, scanError = service.resourceScanner.Utils(); scanError != nil {
		return ActualResources{}, fmt.Errorf(scanErrorTemplateConstant, logFieldUtilsConstant, scanError)
	}
	if resources.Lib, scanError = service.resourceScanner.Lib(); scanError != nil {
		return ActualResources{}, fmt.Errorf(scanErrorTemplateConstant, logFieldLibConstant, scanError)
	}

	service.logger.Info(
		logMessageResourcesScannedConstant,
		zap.Int(logFieldHooksConstant, len(resources.Hooks)),
		zap.Int(logFieldPagesConstant, len(resources.Pages)),
		zap.Int(logFieldComponentsConstant, resources.ComponentsTotal),
		zap.Int(logFieldUtilsConstant, len(resources.Utils)),
		zap.Int(logFieldLibConstant, len(resources.Lib)),
	)

	var schemaError error
	if resources.Tables, schemaError = service.schemaProvider.Tables(executionContext); schemaError != nil {
		return ActualResources{}, fmt.Errorf(schemaErrorTemplateConstant, logFieldTablesConstant, schemaError)
	}
	if resources.Views, schemaError = service.schemaProvider.Views(executionContext); schemaError != nil {
		return ActualResources{}, fmt.Errorf(schemaErrorTemplateConstant, logFieldViewsConstant, schemaError)
	}

	return resources, nil
}

func (service *Service) fix(options CommandOptions, actualStats codebasedoc.Stats) error {
	result, fixError := service.documentationFixer.Fix(options.DocumentationPath, actualStats)
	if fixError != nil {
		return fmt.Errorf(fixErrorTemplateConstant, fixError)
	}

	if result.StatsLinesUpdated == 0 {
		service.logger.Warn(logMessageFixWithoutStatsConstant, zap.String(logFieldDocumentationPathConstant, options.DocumentationPath))
	} else {
		service.logger.Info(
			logMessageFixAppliedConstant,
			zap.String(logFieldDocumentationPathConstant, options.DocumentationPath),
			zap.Int(logFieldStatsLinesConstant, result.StatsLinesUpdated),
			zap.Int(logFieldTimestampLinesConstant, result.TimestampLinesUpdated),
		)
	}

	if isTableFormat(options.Format) {
		service.reportWriter.WriteFixResult(options.DocumentationPath, result)
	}
	return nil
}

func (service *Service) preview(options CommandOptions, actualStats codebasedoc.Stats) error {
	preview, previewError := service.documentationFixer.Preview(options.DocumentationPath, actualStats)
	if previewError != nil {
		return fmt.Errorf(fixErrorTemplateConstant, previewError)
	}

	if preview.Result.StatsLinesUpdated == 0 {
		service.logger.Warn(logMessageFixWithoutStatsConstant, zap.String(logFieldDocumentationPathConstant, options.DocumentationPath))
	}

	if isTableFormat(options.Format) {
		return service.reportWriter.WriteFixPreview(options.DocumentationPath, preview)
	}
	return nil
}

func isTableFormat(format ReportFormat) bool {
	return format != ReportFormatJSON && format != ReportFormatYAML
}
