// Package version provides a single source of truth for cogniplexity's
// build version, overridable at build time with -ldflags.
package version

var (
	// Version is the semantic version of cogniplexity.
	Version = "0.1.0"

	// Commit is the git commit hash, set at build time.
	Commit = "unknown"
)

// Info returns a formatted version string.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}
