package version

import "github.com/fatih/color"

// Build metadata for the bpftrace CLI, overridable via -ldflags.

const (
	major  = "0"
	minor  = "1"
	patch  = "0"
	suffix = "-dev"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version with colored segments for
	// terminal output. color degrades to plain text off-TTY.
	Version = versionMajorColor.Sprint(major) + "." + versionMinorColor.Sprint(minor) + "." + versionPatchColor.Sprint(patch) + suffix

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the semantic version without escape sequences, for
// machine-readable output.
func Plain() string {
	return major + "." + minor + "." + patch + suffix
}
