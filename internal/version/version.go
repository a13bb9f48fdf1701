// Package version holds the build version stamped in at release time.
package version

// Version is overridden by the release pipeline via -ldflags.
var Version = "dev"
