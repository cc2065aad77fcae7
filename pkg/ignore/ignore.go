// Package ignore implements gitignore-style path patterns used to exclude
// headers and entry files from merging.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
	Source  string         // File the pattern came from, empty for inline patterns.
}

// GitIgnore represents an ordered collection of ignore patterns. Later
// patterns override earlier ones, so a negation can re-include a path.
type GitIgnore struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewGitIgnore initializes a GitIgnore instance with an optional logger.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{
		Patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// LoadIgnoreFiles compiles the given ignore files in order. Empty paths and
// files that do not exist are skipped.
func LoadIgnoreFiles(logger *zap.Logger, paths ...string) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := gi.CompileIgnoreFile(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				gi.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
				continue
			}
			return nil, err
		}
	}
	return gi, nil
}

// CompileIgnoreLines compiles a set of ignore pattern lines and adds them to the GitIgnore instance.
func (gi *GitIgnore) CompileIgnoreLines(lines ...string) {
	gi.compile("", lines)
}

// CompileIgnoreFile reads an ignore file, parses its lines, and adds them to the GitIgnore instance.
func (gi *GitIgnore) CompileIgnoreFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	gi.compile(fpath, lines)
	gi.logger.Debug("Compiled ignore patterns", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

func (gi *GitIgnore) compile(source string, lines []string) {
	for i, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		ip := &IgnorePattern{
			Pattern: pattern,
			Negate:  negate,
			Line:    strings.TrimSpace(line),
			LineNo:  i + 1, // 1-based line numbering.
			Source:  source,
		}
		gi.Patterns = append(gi.Patterns, ip)
		gi.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", ip.LineNo),
			zap.String("pattern", ip.Line),
			zap.Bool("negate", ip.Negate))
	}
}

// Len returns the number of compiled patterns.
func (gi *GitIgnore) Len() int {
	return len(gi.Patterns)
}

// MatchesPath checks if a path matches any of the ignore patterns.
func (gi *GitIgnore) MatchesPath(path string) bool {
	matches, _ := gi.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks if a path matches any ignore pattern and returns
// the last pattern that decided the outcome.
func (gi *GitIgnore) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	normalizedPath := filepath.ToSlash(path)

	var matchedPattern *IgnorePattern
	matches := false

	for _, pattern := range gi.Patterns {
		if pattern.Pattern.MatchString(normalizedPath) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}

	return matches, matchedPattern
}

// parsePatternLine processes a line from an ignore file into a compiled regex and a negation flag.
// Returns nil if the line is a comment or empty.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	// Check for negation.
	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Handle escaped characters for `#` and `!`.
	if strings.HasPrefix(trimmedLine, "\\#") || strings.HasPrefix(trimmedLine, "\\!") {
		trimmedLine = trimmedLine[1:]
	}

	rooted := rootRelativePattern.MatchString(trimmedLine)
	body := strings.TrimPrefix(trimmedLine, "/")

	escapedLine := escapeSpecialChars(body)
	escapedLine = handleDoubleStarPatterns(escapedLine)
	escapedLine = wildcardToRegex(escapedLine)
	escapedLine = anchorPattern(escapedLine, trimmedLine, rooted)

	compiledRegex, err := regexp.Compile(escapedLine)
	if err != nil {
		return nil, false
	}

	return compiledRegex, negate
}
