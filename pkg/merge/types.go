// File: pkg/merge/types.go
package merge

import (
	"path/filepath"
	"strings"
)

// Markers written around the merged sections.
const (
	MainMarker    = "// === Main Code ==="
	sectionPrefix = "// === "
	sectionSuffix = " ==="
)

// SourceUnit is a single file of the project tree after it has been scanned.
type SourceUnit struct {
	Path             string   // Normalized absolute path of the file.
	Content          string   // Raw text as read from disk (or supplied for the entry).
	StandardIncludes []string // `#include <...>` lines declared by the file.
	Usings           []string // `using ...` lines declared by the file.
	LocalIncludes    []string // Resolved targets of `#include "..."` lines, in order.
	Body             string   // Text with directive lines stripped.
}

// Project identifies the inputs of one merge run.
type Project struct {
	Root  string // Project root directory.
	Entry string // Normalized path of the entry file.
}

// Label returns the path of a file relative to the project root using forward
// slashes. Paths outside the root keep their ../ prefix.
func (p Project) Label(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Section is the rendered body of one non-entry file.
type Section struct {
	Path  string // Absolute path of the contributing file.
	Label string // Root-relative label used in the section marker.
	Body  string // Trimmed body text.
}

// CycleError reports a circular chain of local includes. Chain runs from the
// first occurrence of the repeated file to the repeated file itself.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "circular include detected: " + strings.Join(e.Chain, " -> ")
}
