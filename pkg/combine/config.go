// File: pkg/combine/config.go
package combine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File names and environment variables recognised in a project.
const (
	ConfigFileName  = ".cppmerge.yaml"
	IgnoreFileName  = ".mergeignore"
	GlobalIgnoreEnv = "CPPMERGEIGNORE_GLOBAL"
)

// Config is the per-project configuration read from .cppmerge.yaml.
type Config struct {
	MainDir       string   `yaml:"main_dir"`       // Directory holding entry files.
	LibDir        string   `yaml:"lib_dir"`        // Directory holding library headers.
	OutputDir     string   `yaml:"output_dir"`     // Where merged files are written, relative to the root.
	RequireLayout bool     `yaml:"require_layout"` // Fail when MainDir or LibDir is missing.
	Workers       int      `yaml:"workers"`        // Concurrent merges; 0 means one per CPU.
	Ignore        []string `yaml:"ignore"`         // Extra ignore patterns.
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		MainDir:   "main",
		LibDir:    "lib",
		OutputDir: "output",
	}
}

// LoadConfig reads .cppmerge.yaml from root. A missing or empty file yields
// the defaults; unknown keys are rejected.
func LoadConfig(root string, logger *zap.Logger) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(root, ConfigFileName)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No config file, using defaults", zap.String("path", path))
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if cfg.MainDir == "" {
		cfg.MainDir = defaults.MainDir
	}
	if cfg.LibDir == "" {
		cfg.LibDir = defaults.LibDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("invalid config %s: workers must not be negative", path)
	}

	logger.Debug("Loaded config", zap.String("path", path), zap.Any("config", cfg))
	return cfg, nil
}

// Arguments holds the command-line options for a merge run.
type Arguments struct {
	Paths            []string // Entry .cpp files or directories of entries.
	Root             string   // Project root; discovered per entry when empty.
	OutputDir        string   // Overrides the configured output directory.
	Stdout           bool     // Print the merged file instead of writing it.
	IgnorePatterns   []string // Additional ignore patterns from the command line.
	GlobalIgnoreFile string   // Optional global ignore file.
	MaxWorkers       int      // Concurrent merges; 0 falls back to config, then NumCPU.
	Force            bool     // Write outputs even when unchanged.
	Flat             bool     // deps: list files with directive counts instead of a tree.
}
