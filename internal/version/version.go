// Package version carries build metadata injected with -ldflags.
package version

var (
	// Version is the release version.
	Version = "0.5.0-dev"
	// Commit is the git commit the binary was built from.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)
