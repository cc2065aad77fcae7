package cmd

import (
	"cppmerge/pkg/combine"
	"cppmerge/pkg/logging"

	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var args combine.Arguments

	mergeCmd := &cobra.Command{
		Use:   "merge <entry.cpp|dir>...",
		Short: "Merge entry files into single-file sources",
		Long: `Merge each entry .cpp file (or every .cpp file below a directory) with the
local headers it includes. Results are written to the project's output
directory under the entry's file name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			args.Paths = paths
			return combine.RunMerge(args, cmd.OutOrStdout(), logging.Logger)
		},
	}

	flags := mergeCmd.Flags()
	flags.StringVarP(&args.Root, "root", "r", "", "Project root (default: discovered from the entry file)")
	flags.StringVarP(&args.OutputDir, "output-dir", "o", "", "Output directory (default: output_dir from .cppmerge.yaml)")
	flags.BoolVar(&args.Stdout, "stdout", false, "Print the merged file instead of writing it")
	flags.StringArrayVarP(&args.IgnorePatterns, "ignore", "i", nil, "Ignore pattern for headers and entries (repeatable)")
	flags.StringVar(&args.GlobalIgnoreFile, "global-ignore", "", "Global ignore file (default: $"+combine.GlobalIgnoreEnv+")")
	flags.IntVarP(&args.MaxWorkers, "workers", "w", 0, "Concurrent merges (default: workers from config, then one per CPU)")
	flags.BoolVarP(&args.Force, "force", "f", false, "Write outputs even when they are unchanged")

	return mergeCmd
}

func newDepsCmd() *cobra.Command {
	var args combine.Arguments

	depsCmd := &cobra.Command{
		Use:   "deps <entry.cpp>",
		Short: "Print the local include tree of an entry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			args.Paths = paths
			return combine.RunDeps(args, cmd.OutOrStdout(), logging.Logger)
		},
	}

	depsCmd.Flags().StringVarP(&args.Root, "root", "r", "", "Project root (default: discovered from the entry file)")
	depsCmd.Flags().StringArrayVarP(&args.IgnorePatterns, "ignore", "i", nil, "Ignore pattern for headers (repeatable)")
	depsCmd.Flags().BoolVar(&args.Flat, "flat", false, "List files with directive counts instead of a tree")
	return depsCmd
}
