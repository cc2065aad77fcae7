// Package version reports which cppmerge build produced a merged file.
//
// Release builds stamp Version, Commit and BuildTime through -ldflags:
//
//	go build -ldflags "-X 'cppmerge/pkg/version.Version=1.2.3' -X 'cppmerge/pkg/version.Commit=abcdefg'"
//
// Binaries installed with `go install cppmerge@v1.2.3` carry no ldflags; for
// those the module version and VCS revision recorded by the Go toolchain are
// used instead.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info describes the running cppmerge binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get returns the build information, falling back to debug.ReadBuildInfo for
// fields that were not stamped.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "none" && s.Value != "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("cppmerge version %s (commit: %s) built at %s with %s on %s",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
