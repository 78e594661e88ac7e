// Package version reports the unyson executable's own version, which is
// distinct from the installed plugin version printed by `unyson version`.
package version

import (
	"fmt"
	rtdebug "runtime/debug"
)

// set at build time via ldflags.
var version = "dev"
var commit = ""

// Get returns the embedded version string, falling back to module build info.
func Get() string {
	v := version
	if v == "dev" {
		if info, ok := rtdebug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if commit != "" {
		return fmt.Sprintf("%s (%s)", v, commit)
	}
	return v
}
