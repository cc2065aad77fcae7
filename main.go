package main

import (
	"log"
	"os"
	"strings"

	"cppmerge/cmd"
	"cppmerge/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()

	// Syncing stderr fails with "invalid argument" on pipes and some consoles,
	// so only sync when stderr is a terminal or a regular file.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logging.Logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
