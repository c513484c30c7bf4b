package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
)

const (
	reportBannerTextConstant            = "CODEBASE SYNC CHECK"
	reportRuleCharacterConstant         = "─"
	reportRuleWidthConstant             = 50
	reportRowTemplateConstant           = "%-15s %-8s %-8s %-8s %s\n"
	reportHeaderResourceConstant        = "RESOURCE"
	reportHeaderDocumentedConstant      = "DOCS"
	reportHeaderActualConstant          = "ACTUAL"
	reportHeaderDeltaConstant           = "DELTA"
	reportHeaderStatusConstant          = "STATUS"
	reportSyncedGlyphConstant           = "✓"
	reportDesyncedGlyphConstant         = "✗"
	reportComponentsHeadingConstant     = "Components by directory:"
	reportComponentDirectoryTemplate    = "  %s: %d\n"
	reportItemsHeadingTemplateConstant  = "%s (%d):"
	reportItemTemplateConstant          = "  - %s\n"
	reportSyncedMessageConstant         = "✓ Documentation is in sync"
	reportDesyncedMessageConstant       = "✗ Documentation is out of date"
	reportGapsTemplateConstant          = "  Gaps: %s\n"
	reportGapTemplateConstant           = "%s: %+d"
	reportGapSeparatorConstant          = ", "
	reportFixAppliedTemplateConstant    = "✓ Updated %s (%d stats line(s), %d timestamp line(s))"
	reportFixNoStatsTemplateConstant    = "! Updated %s but found no stats line to rewrite"
	reportStrictFailureMessageConstant  = "✗ STRICT MODE: documentation is out of date"
	reportPreviewHeadingTemplate        = "Dry run: changes --fix would make to %s"
	reportPreviewUnchangedTemplate      = "Dry run: %s is already up to date"
	reportPreviewUpdatedSuffixConstant  = " (fixed)"
	reportPreviewContextLinesConstant   = 1
	reportPreviewErrorTemplateConstant  = "unable to render preview: %w"
	reportStrictHintMessageConstant     = "  Run: codebase-sync --fix"
	reportJSONIndentConstant            = "  "
	reportYAMLIndentConstant            = 2
	reportEncodingErrorTemplateConstant = "unable to encode %s report: %w"
	successColorConstant                = "#10B981"
	failureColorConstant                = "#EF4444"
	warningColorConstant                = "#F59E0B"
	accentColorConstant                 = "#06B6D4"
)

type reportStyles struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

func newReportStyles(renderer *lipgloss.Renderer) reportStyles {
	return reportStyles{
		banner:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColorConstant)),
		heading: renderer.NewStyle().Foreground(lipgloss.Color(accentColorConstant)),
		success: renderer.NewStyle().Foreground(lipgloss.Color(successColorConstant)),
		failure: renderer.NewStyle().Foreground(lipgloss.Color(failureColorConstant)),
		warning: renderer.NewStyle().Foreground(lipgloss.Color(warningColorConstant)),
	}
}

// ReportWriter renders sync reports and run outcomes to a writer.
type ReportWriter struct {
	writer io.Writer
	styles reportStyles
}

// NewReportWriter constructs a ReportWriter. Colors are emitted only when writer is a terminal.
func NewReportWriter(writer io.Writer) *ReportWriter {
	return &ReportWriter{
		writer: writer,
		styles: newReportStyles(lipgloss.NewRenderer(writer)),
	}
}

type resourceDocument struct {
	Category   string   `json:"category" yaml:"category"`
	Documented int      `json:"documented" yaml:"documented"`
	Actual     int      `json:"actual" yaml:"actual"`
	Delta      int      `json:"delta" yaml:"delta"`
	Synced     bool     `json:"synced" yaml:"synced"`
	Items      []string `json:"items,omitempty" yaml:"items,omitempty"`
}

type reportDocument struct {
	Synced                bool               `json:"synced" yaml:"synced"`
	Resources             []resourceDocument `json:"resources" yaml:"resources"`
	ComponentsByDirectory map[string]int     `json:"components_by_directory" yaml:"components_by_directory"`
	Gaps                  []string           `json:"gaps" yaml:"gaps"`
}

// WriteReport renders report in the requested format.
func (reportWriter *ReportWriter) WriteReport(report SyncReport, format ReportFormat, verbose bool) error {
	switch format {
	case ReportFormatJSON:
		encoder := json.NewEncoder(reportWriter.writer)
		encoder.SetIndent("", reportJSONIndentConstant)
		if encodeError := encoder.Encode(newReportDocument(report)); encodeError != nil {
			return fmt.Errorf(reportEncodingErrorTemplateConstant, format, encodeError)
		}
		return nil
	case ReportFormatYAML:
		encoder := yaml.NewEncoder(reportWriter.writer)
		encoder.SetIndent(reportYAMLIndentConstant)
		if encodeError := encoder.Encode(newReportDocument(report)); encodeError != nil {
			return fmt.Errorf(reportEncodingErrorTemplateConstant, format, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(reportEncodingErrorTemplateConstant, format, closeError)
		}
		return nil
	default:
		reportWriter.writeTable(report, verbose)
		return nil
	}
}

// WriteFixResult reports the outcome of rewriting the documentation file.
func (reportWriter *ReportWriter) WriteFixResult(documentationPath string, result codebasedoc.FixResult) {
	fmt.Fprintln(reportWriter.writer)
	if result.StatsLinesUpdated == 0 {
		fmt.Fprintln(reportWriter.writer, reportWriter.styles.warning.Render(fmt.Sprintf(reportFixNoStatsTemplateConstant, documentationPath)))
		return
	}
	fmt.Fprintln(reportWriter.writer, reportWriter.styles.success.Render(fmt.Sprintf(reportFixAppliedTemplateConstant, documentationPath, result.StatsLinesUpdated, result.TimestampLinesUpdated)))
}

// WriteFixPreview renders a unified diff between the current and fixed documentation.
func (reportWriter *ReportWriter) WriteFixPreview(documentationPath string, preview codebasedoc.Preview) error {
	fmt.Fprintln(reportWriter.writer)
	if preview.Original == preview.Updated {
		fmt.Fprintln(reportWriter.writer, reportWriter.styles.success.Render(fmt.Sprintf(reportPreviewUnchangedTemplate, documentationPath)))
		return nil
	}

	diffText, diffError := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(preview.Original),
		B:        difflib.SplitLines(preview.Updated),
		FromFile: documentationPath,
		ToFile:   documentationPath + reportPreviewUpdatedSuffixConstant,
		Context:  reportPreviewContextLinesConstant,
	})
	if diffError != nil {
		return fmt.Errorf(reportPreviewErrorTemplateConstant, diffError)
	}

	fmt.Fprintln(reportWriter.writer, reportWriter.styles.heading.Render(fmt.Sprintf(reportPreviewHeadingTemplate, documentationPath)))
	fmt.Fprint(reportWriter.writer, diffText)
	return nil
}

// WriteStrictFailure reports that strict mode rejected an out-of-sync run.
func (reportWriter *ReportWriter) WriteStrictFailure() {
	fmt.Fprintln(reportWriter.writer)
	fmt.Fprintln(reportWriter.writer, reportWriter.styles.failure.Render(reportStrictFailureMessageConstant))
	fmt.Fprintln(reportWriter.writer, reportStrictHintMessageConstant)
}

func (reportWriter *ReportWriter) writeTable(report SyncReport, verbose bool) {
	rule := strings.Repeat(reportRuleCharacterConstant, reportRuleWidthConstant)

	fmt.Fprintln(reportWriter.writer, reportWriter.styles.banner.Render(reportBannerTextConstant))
	fmt.Fprintln(reportWriter.writer, rule)
	fmt.Fprintf(reportWriter.writer, reportRowTemplateConstant, reportHeaderResourceConstant, reportHeaderDocumentedConstant, reportHeaderActualConstant, reportHeaderDeltaConstant, reportHeaderStatusConstant)
	fmt.Fprintln(reportWriter.writer, rule)
	for _, resource := range report.Resources() {
		fmt.Fprintf(
			reportWriter.writer,
			reportRowTemplateConstant,
			resource.Category,
			strconv.Itoa(resource.Documented),
			strconv.Itoa(resource.Actual),
			FormatDelta(resource.Delta()),
			reportWriter.statusGlyph(resource.Synced()),
		)
	}
	fmt.Fprintln(reportWriter.writer, rule)

	if verbose {
		reportWriter.writeDetails(report)
	}

	fmt.Fprintln(reportWriter.writer)
	if report.Synced() {
		fmt.Fprintln(reportWriter.writer, reportWriter.styles.success.Render(reportSyncedMessageConstant))
		return
	}
	fmt.Fprintln(reportWriter.writer, reportWriter.styles.failure.Render(reportDesyncedMessageConstant))
	fmt.Fprintf(reportWriter.writer, reportGapsTemplateConstant, strings.Join(formatGaps(report), reportGapSeparatorConstant))
}

func (reportWriter *ReportWriter) writeDetails(report SyncReport) {
	if len(report.ComponentsByDirectory) > 0 {
		fmt.Fprintln(reportWriter.writer)
		fmt.Fprintln(reportWriter.writer, reportWriter.styles.heading.Render(reportComponentsHeadingConstant))
		for _, directory := range report.ComponentDirectories() {
			fmt.Fprintf(reportWriter.writer, reportComponentDirectoryTemplate, directory, report.ComponentsByDirectory[directory])
		}
	}

	for _, resource := range report.Resources() {
		if len(resource.Items) == 0 {
			continue
		}
		fmt.Fprintln(reportWriter.writer)
		fmt.Fprintln(reportWriter.writer, reportWriter.styles.heading.Render(fmt.Sprintf(reportItemsHeadingTemplateConstant, resource.Category, len(resource.Items))))
		for _, item := range resource.Items {
			fmt.Fprintf(reportWriter.writer, reportItemTemplateConstant, item)
		}
	}
}

func (reportWriter *ReportWriter) statusGlyph(synced bool) string {
	if synced {
		return reportWriter.styles.success.Render(reportSyncedGlyphConstant)
	}
	return reportWriter.styles.failure.Render(reportDesyncedGlyphConstant)
}

// FormatDelta renders delta with a leading plus sign when positive.
func FormatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

func formatGaps(report SyncReport) []string {
	gaps := report.Gaps()
	formatted := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		formatted = append(formatted, fmt.Sprintf(reportGapTemplateConstant, gap.Category, gap.Delta()))
	}
	return formatted
}

func newReportDocument(report SyncReport) reportDocument {
	resources := report.Resources()
	document := reportDocument{
		Synced:                report.Synced(),
		Resources:             make([]resourceDocument, 0, len(resources)),
		ComponentsByDirectory: report.ComponentsByDirectory,
		Gaps:                  formatGaps(report),
	}
	if document.ComponentsByDirectory == nil {
		document.ComponentsByDirectory = map[string]int{}
	}
	for _, resource := range resources {
		document.Resources = append(document.Resources, resourceDocument{
			Category:   resource.Category,
			Documented: resource.Documented,
			Actual:     resource.Actual,
			Delta:      resource.Delta(),
			Synced:     resource.Synced(),
			Items:      resource.Items,
		})
	}
	return document
}
