// File: pkg/combine/execute.go
package combine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cppmerge/pkg/merge"

	"go.uber.org/zap"
)

// RunMerge merges every entry named by args. Merged files are written to the
// output directory of their project, or to out when args.Stdout is set.
func RunMerge(args Arguments, out io.Writer, logger *zap.Logger) error {
	startTime := time.Now()
	logger.Debug("Starting merge process", zap.Strings("paths", args.Paths))

	projects := newProjectSet(args, logger)
	entries, err := CollectEntries(args.Paths, projects, logger)
	if err != nil {
		logger.Error("Failed to collect entries", zap.Error(err))
		return fmt.Errorf("failed to collect entries: %w", err)
	}

	if len(entries) == 0 {
		logger.Warn("No entry files to merge after filtering.")
		return nil
	}
	if args.Stdout && len(entries) > 1 {
		return fmt.Errorf("--stdout needs exactly one entry file, got %d", len(entries))
	}

	if !args.Stdout {
		if err := checkOutputCollisions(entries); err != nil {
			logger.Error("Conflicting output paths", zap.Error(err))
			return err
		}
	}

	workers := args.MaxWorkers
	if workers <= 0 {
		workers = configuredWorkers(entries)
	}

	outcomes := MergeConcurrently(entries, workers, !args.Stdout, args.Force, logger)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			var cycleErr *merge.CycleError
			if errors.As(o.Err, &cycleErr) {
				logger.Error("Include cycle", zap.String("entry", o.Entry), zap.Strings("chain", cycleErr.Chain))
			} else {
				logger.Error("Failed to merge entry", zap.String("entry", o.Entry), zap.Error(o.Err))
			}
			continue
		}

		if args.Stdout {
			if _, err := io.WriteString(out, o.Content); err != nil {
				return fmt.Errorf("failed to write merged output: %w", err)
			}
			continue
		}

		logger.Info("Merged entry",
			zap.String("entry", o.Entry),
			zap.String("outputFile", o.Output),
			zap.Bool("written", o.Written),
			zap.String("fingerprint", fmt.Sprintf("%016x", o.Fingerprint)))
		if o.Written {
			fmt.Fprintf(out, "merged %s -> %s\n", o.Entry, o.Output)
		} else {
			fmt.Fprintf(out, "unchanged %s\n", o.Output)
		}
	}

	logger.Debug("Merge process completed",
		zap.Int("entries", len(outcomes)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(startTime)))

	if failed > 0 {
		if len(outcomes) == 1 {
			return outcomes[0].Err
		}
		return fmt.Errorf("%d of %d entries failed to merge", failed, len(outcomes))
	}
	return nil
}

// checkOutputCollisions fails when two entries would be written to the same
// output file, e.g. main/a/sol.cpp and main/b/sol.cpp.
func checkOutputCollisions(entries []Entry) error {
	owners := make(map[string]string, len(entries))
	for _, entry := range entries {
		output := entry.Project.OutputPath(entry.Path)
		if first, ok := owners[output]; ok {
			return fmt.Errorf("entries %s and %s both merge to %s", first, entry.Path, output)
		}
		owners[output] = entry.Path
	}
	return nil
}

// configuredWorkers returns the largest workers setting among the projects
// of entries. Zero leaves the choice to MergeConcurrently.
func configuredWorkers(entries []Entry) int {
	workers := 0
	for _, entry := range entries {
		if w := entry.Project.Config.Workers; w > workers {
			workers = w
		}
	}
	return workers
}

// RunDeps prints the local include tree of a single entry file.
func RunDeps(args Arguments, out io.Writer, logger *zap.Logger) error {
	projects := newProjectSet(args, logger)
	entries, err := CollectEntries(args.Paths, projects, logger)
	if err != nil {
		return fmt.Errorf("failed to collect entries: %w", err)
	}
	if len(entries) != 1 {
		return fmt.Errorf("deps needs exactly one entry file, got %d", len(entries))
	}

	entry := entries[0]
	content, err := os.ReadFile(entry.Path)
	if err != nil {
		return fmt.Errorf("error reading entry %s: %w", entry.Path, err)
	}

	res, err := entry.Project.Merger.Resolve(entry.Path, string(content), entry.Project.Root)
	if err != nil {
		return err
	}

	if args.Flat {
		_, err = io.WriteString(out, RenderFlat(res))
		return err
	}
	_, err = io.WriteString(out, RenderTree(res))
	return err
}
