// File: pkg/combine/worker.go
package combine

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Outcome is the result of merging one entry file.
type Outcome struct {
	Entry       string // Absolute path of the entry file.
	Output      string // Output path; empty when printing to stdout.
	Content     string // Merged text.
	Written     bool   // The output file was (re)written.
	Fingerprint uint64 // highwayhash-64 of Content.
	Err         error
}

type job struct {
	index int
	entry Entry
}

// MergeConcurrently merges entries on a pool of workers. Every merge runs with
// its own state; outcomes are returned in the order of entries.
func MergeConcurrently(entries []Entry, maxWorkers int, write, force bool, logger *zap.Logger) []Outcome {
	jobs := make(chan job, len(entries))
	outcomes := make([]Outcome, len(entries))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(entries) {
		maxWorkers = len(entries)
	}

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(jobs, outcomes, write, force, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i, entry := range entries {
		jobs <- job{index: i, entry: entry}
	}
	close(jobs)

	wg.Wait()
	logger.Debug("All entries processed", zap.Int("entries", len(outcomes)))
	return outcomes
}

// worker merges entries from the jobs channel. Each job owns its slot in
// outcomes, so no further locking is needed.
func worker(jobs <-chan job, outcomes []Outcome, write, force bool, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for j := range jobs {
		logger.Debug("Worker received entry", zap.String("entry", j.entry.Path))
		outcomes[j.index] = mergeEntry(j.entry, write, force, logger)
	}
}

// mergeEntry reads, merges and optionally writes a single entry.
func mergeEntry(entry Entry, write, force bool, logger *zap.Logger) Outcome {
	out := Outcome{Entry: entry.Path}
	p := entry.Project

	content, err := os.ReadFile(entry.Path)
	if err != nil {
		out.Err = fmt.Errorf("error reading entry %s: %w", entry.Path, err)
		return out
	}

	merged, err := p.Merger.Merge(entry.Path, string(content), p.Root)
	if err != nil {
		out.Err = err
		return out
	}
	out.Content = merged

	if !write {
		out.Fingerprint, out.Err = Fingerprint([]byte(merged))
		return out
	}

	out.Output = p.OutputPath(entry.Path)
	out.Written, out.Fingerprint, out.Err = WriteOutput(out.Output, []byte(merged), force, logger)
	return out
}
