package version

// Version is the version of the shell this core ships with.
// Overridden at build time with -ldflags "-X .../internal/version.Version=v0.4.0".
var Version = "v0.3.2"

// UserAgent is sent on every feed and artifact request.
const UserAgent = "IVIDS-Android-App"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	if len(Version) > 0 && Version[0] == 'v' {
		return Version
	}
	return "v" + Version
}
