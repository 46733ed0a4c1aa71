// Package version exposes the barkit build identity.
package version

import "runtime"

// Overridden at link time via -ldflags "-X ...".
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is a snapshot of the build identity plus the toolchain and platform
// it was compiled for.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get assembles the current build info.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns just the semantic version.
func (i Info) String() string {
	return i.Version
}

// Full returns the long form used by the version command.
func (i Info) Full() string {
	return i.Version + " (" + i.Commit + ") built " + i.BuildDate + " " + i.GoVersion + " " + i.Platform
}
