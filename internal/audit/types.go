package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
)

// ReportFormat enumerates supported report encodings.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatYAML  ReportFormat = "yaml"
)

const unsupportedReportFormatTemplateConstant = "unsupported report format: %s"

// ParseReportFormat normalizes value into a ReportFormat. Empty values select the table format.
func ParseReportFormat(value string) (ReportFormat, error) {
	normalized := ReportFormat(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return ReportFormatTable, nil
	case ReportFormatTable, ReportFormatJSON, ReportFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedReportFormatTemplateConstant, value)
	}
}

// Resource category names in display order.
const (
	CategoryHooks      = "Hooks"
	CategoryPages      = "Pages"
	CategoryComponents = "Components"
	CategoryTables     = "Tables"
	CategoryViews      = "Views"
	CategoryUtils      = "Utils"
	CategoryLib        = "Lib"
)

// CommandOptions captures the parameters of a single sync run.
type CommandOptions struct {
	DocumentationPath string
	Fix               bool
	DryRun            bool
	Strict            bool
	Verbose           bool
	Format            ReportFormat
}

// ResourceCount pairs the documented and actual count of one resource category.
type ResourceCount struct {
	Category   string
	Documented int
	Actual     int
	Items      []string
}

// Delta is the actual count minus the documented count.
func (count ResourceCount) Delta() int {
	return count.Actual - count.Documented
}

// Synced reports whether the documented count matches the actual count.
func (count ResourceCount) Synced() bool {
	return count.Delta() == 0
}

// SyncReport collects the per-category comparison of one run.
type SyncReport struct {
	Hooks                 ResourceCount
	Pages                 ResourceCount
	Components            ResourceCount
	Tables                ResourceCount
	Views                 ResourceCount
	Utils                 ResourceCount
	Lib                   ResourceCount
	ComponentsByDirectory map[string]int
}

// Synced reports whether every gating category is synced. Components, Utils and Lib are informational.
func (report SyncReport) Synced() bool {
	return len(report.Gaps()) == 0
}

// Resources lists all categories in display order.
func (report SyncReport) Resources() []ResourceCount {
	return []ResourceCount{
		report.Hooks,
		report.Pages,
		report.Components,
		report.Tables,
		report.Views,
		report.Utils,
		report.Lib,
	}
}

// Gaps lists the gating categories that are out of sync.
func (report SyncReport) Gaps() []ResourceCount {
	gatingCategories := []ResourceCount{report.Hooks, report.Pages, report.Tables, report.Views}
	gaps := make([]ResourceCount, 0, len(gatingCategories))
	for _, category := range gatingCategories {
		if !category.Synced() {
			gaps = append(gaps, category)
		}
	}
	return gaps
}

// ComponentDirectories lists the component directory names in sorted order.
func (report SyncReport) ComponentDirectories() []string {
	directories := make([]string, 0, len(report.ComponentsByDirectory))
	for directory := range report.ComponentsByDirectory {
		directories = append(directories, directory)
	}
	sort.Strings(directories)
	return directories
}

// ActualResources holds what the scanners and schema providers found.
type ActualResources struct {
	Hooks                 []string
	Pages                 []string
	ComponentsByDirectory map[string]int
	ComponentsTotal       int
	Tables                []string
	Views                 []string
	Utils                 []string
	Lib                   []string
}

// Stats converts the actual resources into the documentation header counts.
func (resources ActualResources) Stats() codebasedoc.Stats {
	return codebasedoc.Stats{
		Tables:     len(resources.Tables),
		Pages:      len(resources.Pages),
		Hooks:      len(resources.Hooks),
		Views:      len(resources.Views),
		Components: resources.ComponentsTotal,
	}
}
