// Package version reports the build version of argo-signal.
package version

// Version is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-signal/internal/version.Version=1.2.3"
// The default value "main" marks a development build.
var Version = "main"

// GetVersion returns the build version.
func GetVersion() string {
	return Version
}
