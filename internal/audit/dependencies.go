package audit

import (
	"context"

	"github.com/temirov/codebase-sync/internal/codebasedoc"
	"github.com/temirov/codebase-sync/internal/scanner"
)

// ResourceScanner enumerates the source resources of a project.
type ResourceScanner interface {
	Hooks() ([]string, error)
	Pages() ([]string, error)
	Components() (scanner.ComponentInventory, error)
	Utils() ([]string, error)
	Lib() ([]string, error)
}

// SchemaProvider lists the database tables and views of a project.
type SchemaProvider interface {
	Tables(executionContext context.Context) ([]string, error)
	Views(executionContext context.Context) ([]string, error)
}

// DocumentationReader reads the documented resource counts.
type DocumentationReader interface {
	ReadStats(path string) (codebasedoc.Stats, error)
}

// DocumentationFixer rewrites the documented resource counts.
type DocumentationFixer interface {
	Fix(path string, stats codebasedoc.Stats) (codebasedoc.FixResult, error)
	Preview(path string, stats codebasedoc.Stats) (codebasedoc.Preview, error)
}
