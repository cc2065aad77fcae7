// File: pkg/combine/layout.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DiscoverRoot walks up from dir and returns the first directory that holds a
// config file or both a main and a lib directory. When nothing qualifies, dir
// itself is the root.
func DiscoverRoot(dir string, logger *zap.Logger) (string, error) {
	startDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	defaults := DefaultConfig()
	currentDir := startDir
	for {
		if fileExists(filepath.Join(currentDir, ConfigFileName)) {
			logger.Debug("Found project root by config file", zap.String("root", currentDir))
			return currentDir, nil
		}
		if dirExists(filepath.Join(currentDir, defaults.MainDir)) && dirExists(filepath.Join(currentDir, defaults.LibDir)) {
			logger.Debug("Found project root by layout", zap.String("root", currentDir))
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break // Reached the filesystem root
		}
		currentDir = parentDir
	}

	logger.Debug("No project root found, using start directory", zap.String("root", startDir))
	return startDir, nil
}

// ValidateLayout checks that the configured main and lib directories exist
// when the config requires them.
func ValidateLayout(root string, cfg Config) error {
	if !cfg.RequireLayout {
		return nil
	}
	for _, dir := range []string{cfg.LibDir, cfg.MainDir} {
		if !dirExists(filepath.Join(root, dir)) {
			return fmt.Errorf("project structure is incorrect: missing %s directory in %s", dir, root)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
