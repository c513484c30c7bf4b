package audit

import "github.com/temirov/codebase-sync/internal/codebasedoc"

// Compare builds the SyncReport for actual against documented. Utils and Lib are never documented.
func Compare(actual ActualResources, documented codebasedoc.Stats) SyncReport {
	componentsByDirectory := make(map[string]int, len(actual.ComponentsByDirectory))
	for directory, count := range actual.ComponentsByDirectory {
		componentsByDirectory[directory] = count
	}

	return SyncReport{
		Hooks:                 newResourceCount(CategoryHooks, documented.Hooks, actual.Hooks),
		Pages:                 newResourceCount(CategoryPages, documented.Pages, actual.Pages),
		Components:            ResourceCount{Category: CategoryComponents, Documented: documented.Components, Actual: actual.ComponentsTotal},
		Tables:                newResourceCount(CategoryTables, documented.Tables, actual.Tables),
		Views:                 newResourceCount(CategoryViews, documented.Views, actual.Views),
		Utils:                 newResourceCount(CategoryUtils, 0, actual.Utils),
		Lib:                   newResourceCount(CategoryLib, 0, actual.Lib),
		ComponentsByDirectory: componentsByDirectory,
	}
}

func newResourceCount(category string, documented int, items []string) ResourceCount {
	copiedItems := make([]string, len(items))
	copy(copiedItems, items)
	return ResourceCount{
		Category:   category,
		Documented: documented,
		Actual:     len(items),
		Items:      copiedItems,
	}
}
