// Package scanner enumerates project source resources (hooks, pages,
// components, utility and library modules) beneath a project root.
//
// Scanner operates on an afero.Fs rooted at the project directory and uses
// doublestar patterns to match files. Missing directories produce empty
// results rather than errors, and every list is sorted and deduplicated.
package scanner
