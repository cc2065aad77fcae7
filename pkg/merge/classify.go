package merge

import (
	"path/filepath"
	"regexp"
	"strings"
)

// lineKind is the category a source line falls into.
type lineKind int

const (
	kindBody lineKind = iota
	kindStandardInclude
	kindLocalInclude
	kindUsing
)

// includePattern matches `#include <x>` and `#include "x"`, tolerating spaces
// after the hash and before the argument.
var includePattern = regexp.MustCompile(`^#\s*include\s*(?:<([^>]*)>|"([^"]*)")`)

// classifyLine sorts a line into one of the four categories. For standard
// includes and using lines the returned value is the trimmed line; for local
// includes it is the quoted include path.
func classifyLine(line string) (lineKind, string) {
	trimmed := strings.TrimSpace(line)

	if m := includePattern.FindStringSubmatchIndex(trimmed); m != nil {
		if m[2] >= 0 {
			return kindStandardInclude, trimmed
		}
		return kindLocalInclude, trimmed[m[4]:m[5]]
	}

	if strings.HasPrefix(trimmed, "using ") {
		return kindUsing, trimmed
	}
	return kindBody, line
}

// resolveInclude resolves a quoted include path against the directory of the
// including file.
func resolveInclude(from, target string) string {
	target = filepath.FromSlash(target)
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(from), target)
}

// splitLines splits text on LF and drops a trailing CR from every line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// StripDirectives removes every include and using line from content and
// returns the remainder trimmed, with exactly one trailing newline.
func StripDirectives(content string) string {
	var kept []string
	for _, line := range splitLines(content) {
		if kind, _ := classifyLine(line); kind == kindBody {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n")) + "\n"
}
