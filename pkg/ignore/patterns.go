// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
	singleStarPattern         = regexp.MustCompile(`\*`)
	directoryEndPattern       = regexp.MustCompile(`/$`)
	rootRelativePattern       = regexp.MustCompile(`^/`)
)

// Placeholders keep the regex produced for '**' away from the single '*' pass.
const (
	doubleStarMiddle   = "\x00M"
	doubleStarTrailing = "\x00T"
	doubleStarLeading  = "\x00L"
)

// escapeSpecialChars escapes regex special characters except for `*`, `?`, and `/`.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns marks '**' segments for wildcardToRegex.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllLiteralString(pattern, doubleStarMiddle)
	pattern = doubleStarTrailingPattern.ReplaceAllLiteralString(pattern, doubleStarTrailing)
	pattern = doubleStarLeadingPattern.ReplaceAllLiteralString(pattern, doubleStarLeading)
	return pattern
}

// wildcardToRegex converts `*`, `?` and the '**' markers to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStarPattern.ReplaceAllLiteralString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", "[^/]")
	pattern = strings.ReplaceAll(pattern, doubleStarMiddle, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, doubleStarTrailing, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, doubleStarLeading, `(.*/)?`)
	return pattern
}

// anchorPattern anchors the regex pattern to match the full path. Patterns
// with a leading slash only match from the root.
func anchorPattern(pattern string, originalPattern string, rooted bool) string {
	if directoryEndPattern.MatchString(originalPattern) {
		pattern = strings.TrimSuffix(pattern, "/") + "/.*$"
	} else {
		pattern += "(/.*)?$"
	}

	if rooted {
		return "^" + pattern
	}
	return "^(.*/)?" + pattern
}
