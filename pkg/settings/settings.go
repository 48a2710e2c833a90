// Package settings provides build metadata and the per-invocation settings
// the jsonwatch command hands to the viewer.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jsonwatch"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation: the positional arguments
// after defaults were applied, plus where the config and log came from.
type Run struct {
	File       string // watched JSON document
	Creature   string // raw creature argument, may be empty
	ConfigPath string // user config file, empty when only defaults apply
	LogFile    string
	LogLevel   string
	NoColor    bool
}

// NewCliParams returns settings for a run on the given file with the default
// creature and info-level logging.
func NewCliParams(file string) *Run {
	return &Run{
		File:     file,
		LogLevel: "info",
	}
}
