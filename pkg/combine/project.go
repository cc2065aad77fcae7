// File: pkg/combine/project.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cppmerge/pkg/ignore"
	"cppmerge/pkg/merge"

	"go.uber.org/zap"
)

// Project is a resolved project root with its configuration, ignore rules
// and the merger configured for it.
type Project struct {
	Root      string
	Config    Config
	OutputDir string
	Ignore    *ignore.GitIgnore
	Merger    *merge.Merger
}

// projectSet resolves and caches projects by root so entries sharing a root
// share one configuration.
type projectSet struct {
	args     Arguments
	logger   *zap.Logger
	projects map[string]*Project
}

func newProjectSet(args Arguments, logger *zap.Logger) *projectSet {
	return &projectSet{args: args, logger: logger, projects: make(map[string]*Project)}
}

// forDir returns the project that owns dir.
func (s *projectSet) forDir(dir string) (*Project, error) {
	root := s.args.Root
	if root == "" {
		var err error
		root, err = DiscoverRoot(dir, s.logger)
		if err != nil {
			return nil, err
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if p, ok := s.projects[root]; ok {
		return p, nil
	}
	p, err := s.load(root)
	if err != nil {
		return nil, err
	}
	s.projects[root] = p
	return p, nil
}

func (s *projectSet) load(root string) (*Project, error) {
	logger := s.logger.With(zap.String("root", root))

	cfg, err := LoadConfig(root, logger)
	if err != nil {
		return nil, err
	}
	if err := ValidateLayout(root, cfg); err != nil {
		return nil, err
	}

	globalIgnorePath := s.args.GlobalIgnoreFile
	if globalIgnorePath == "" {
		globalIgnorePath = os.Getenv(GlobalIgnoreEnv) // Optional environment variable for global ignore file
	}
	gi, err := ignore.LoadIgnoreFiles(logger, globalIgnorePath, filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	gi.CompileIgnoreLines(cfg.Ignore...)
	gi.CompileIgnoreLines(s.args.IgnorePatterns...)
	logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", gi.Len()))

	outputDir := s.args.OutputDir
	if outputDir != "" {
		outputDir, err = filepath.Abs(outputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	} else if filepath.IsAbs(cfg.OutputDir) {
		outputDir = filepath.Clean(cfg.OutputDir)
	} else {
		outputDir = filepath.Join(root, cfg.OutputDir)
	}

	return &Project{
		Root:      root,
		Config:    cfg,
		OutputDir: outputDir,
		Ignore:    gi,
		Merger:    merge.New(merge.WithIgnore(gi), merge.WithLogger(logger)),
	}, nil
}

// rel returns path relative to the project root with forward slashes.
func (p *Project) rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// isOutput reports whether path lies inside the project's output directory.
func (p *Project) isOutput(path string) bool {
	rel, err := filepath.Rel(p.OutputDir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// OutputPath returns where the merged form of entry is written.
func (p *Project) OutputPath(entry string) string {
	return filepath.Join(p.OutputDir, filepath.Base(entry))
}
