// Package audit compares a project's documented resource counts with the
// resources actually present and reports, fixes, or gates on the difference.
//
// CommandBuilder wires the cobra command, Service drives the workflow
// programmatically, Compare builds the SyncReport, and ReportWriter renders it
// as a terminal table, JSON, or YAML.
package audit
