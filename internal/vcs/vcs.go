// Package vcs reports the build's version from the module build info.
package vcs

import (
	"runtime/debug"
)

// Version returns the VCS revision the binary was built from, suffixed with
// "-dirty" for builds with uncommitted changes. Builds without VCS stamping
// fall back to the main module version.
func Version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return version(buildInfo)
}

func version(buildInfo *debug.BuildInfo) string {
	var revision string
	var modified bool
	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		if buildInfo.Main.Version != "" {
			return buildInfo.Main.Version
		}
		return "unknown"
	}

	if modified {
		return revision + "-dirty"
	}

	return revision
}
