// Package version records the application version reported by the system
// endpoints.
package version

// Version is the application version. Overridden at build time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
