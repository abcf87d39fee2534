package version

// Set at build time via -ldflags "-X .../pkg/version.version=...".
var version = "devel"

func Version() string {
	return version
}
