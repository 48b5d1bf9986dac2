// Package version provides build and version information for specforge.
package version

// Version is the current release version of specforge.
// This can be overridden at build time using:
//
//	go build -ldflags "-X github.com/agencykit/specforge/internal/version.Version=x.y.z"
var Version = "1.0.0"
