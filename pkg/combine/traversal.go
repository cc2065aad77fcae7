// File: pkg/combine/traversal.go
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// EntryExt is the extension of files accepted as merge entries.
const EntryExt = ".cpp"

// Entry is one entry file paired with the project that owns it.
type Entry struct {
	Path    string
	Project *Project
}

// CollectEntries resolves the provided paths into entry files. Directories
// contribute every .cpp file below them that is neither ignored nor part of
// the output directory. Files must carry the .cpp extension.
func CollectEntries(paths []string, projects *projectSet, logger *zap.Logger) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)
	logger.Debug("Starting entry collection", zap.Int("pathCount", len(paths)))

	add := func(path string, p *Project) {
		if seen[path] {
			return
		}
		seen[path] = true
		entries = append(entries, Entry{Path: path, Project: p})
	}

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			if !strings.EqualFold(filepath.Ext(absPath), EntryExt) {
				return nil, fmt.Errorf("%s is not a %s file", path, EntryExt)
			}
			p, err := projects.forDir(filepath.Dir(absPath))
			if err != nil {
				return nil, err
			}
			add(absPath, p)
			continue
		}

		p, err := projects.forDir(absPath)
		if err != nil {
			return nil, err
		}
		found, err := traverseEntries(absPath, p, logger)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f, p)
		}
	}

	logger.Debug("Completed entry collection", zap.Int("entries", len(entries)))
	return entries, nil
}

// traverseEntries walks dir and returns the .cpp files to merge, in lexical order.
func traverseEntries(dir string, p *Project, logger *zap.Logger) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil // Skip paths that cause errors
		}

		if p.isOutput(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath := p.rel(path)
		if d.IsDir() {
			if path != dir && p.Ignore.MatchesPath(relPath+"/") {
				logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), EntryExt) {
			return nil
		}
		if p.Ignore.MatchesPath(relPath) {
			logger.Debug("Skipping ignored entry", zap.String("entry", relPath))
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to traverse %s: %w", dir, err)
	}
	return files, nil
}
