package compat

import "runtime/debug"

// SetBuildInfo replaces the build info source until the returned func runs.
func SetBuildInfo(fn func() (*debug.BuildInfo, bool)) (restore func()) {
	prev := readBuildInfo
	readBuildInfo = fn
	return func() { readBuildInfo = prev }
}
