package cmd

import (
	"cppmerge/pkg/logging"
	"cppmerge/pkg/version"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var (
		debug   bool
		logFile string
	)

	root := &cobra.Command{
		Use:   "cppmerge",
		Short: "cppmerge flattens a C++ entry file and its local headers into one file",
		Long: `cppmerge follows the relative #include "..." directives of a C++ entry file,
merges every reachable header once in dependency order, deduplicates standard
includes and using declarations, and produces a single self-contained .cpp file
for judges that accept only one source file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(debug, "cppmerge", version.Get().Version, logFile)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable development logging at debug level")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(newMergeCmd(), newDepsCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
