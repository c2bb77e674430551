// Package version contains build information for clinput, set with
// -ldflags "-X" at release time.
package version

import "fmt"

var (
	// Version is the current version of clinput.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// String returns the version line printed by "clinput --version"
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
