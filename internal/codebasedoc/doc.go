// Package codebasedoc reads and rewrites the stats header of a project's
// codebase documentation file.
package codebasedoc
