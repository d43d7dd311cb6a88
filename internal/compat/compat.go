// Package compat checks that the linked primitive library is new enough.
//
// The primitives come from golang.org/x/crypto. Its version is read from the
// binary's build info; when it cannot be determined the check fails closed.
package compat

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/mod/semver"

	"keystone/internal/domain/types"
)

// PrimitiveModule is the module that provides every primitive.
const PrimitiveModule = "golang.org/x/crypto"

// Minimum supported release of PrimitiveModule.
const (
	MinMajor = 0
	MinMinor = 19
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// PrimitiveVersion returns the linked version of PrimitiveModule, honouring
// replace directives. ok is false when the version is unknown.
func PrimitiveVersion() (version string, ok bool) {
	bi, ok := readBuildInfo()
	if !ok {
		return "", false
	}
	for _, m := range bi.Deps {
		if m.Path != PrimitiveModule {
			continue
		}
		if m.Replace != nil {
			m = m.Replace
		}
		if !semver.IsValid(m.Version) {
			return "", false
		}
		return m.Version, true
	}
	return "", false
}

// AtLeast reports whether version is a valid semantic version no older than
// vMAJOR.MINOR.0. Prereleases of that exact release do not count.
func AtLeast(version string, minMajor, minMinor int) bool {
	if !semver.IsValid(version) || minMajor < 0 || minMinor < 0 {
		return false
	}
	return semver.Compare(version, fmt.Sprintf("v%d.%d.0", minMajor, minMinor)) >= 0
}

// IsPrimitiveLibraryCompatible reports whether the linked primitive library is
// at least minMajor.minMinor. An unknown version is not compatible.
func IsPrimitiveLibraryCompatible(minMajor, minMinor int) bool {
	v, ok := PrimitiveVersion()
	if !ok {
		return false
	}
	return AtLeast(v, minMajor, minMinor)
}

// Check returns ErrIncompatibleLibrary unless the linked primitive library
// meets MinMajor.MinMinor.
func Check() error {
	v, ok := PrimitiveVersion()
	if !ok {
		return fmt.Errorf("%w: %s version unknown", types.ErrIncompatibleLibrary, PrimitiveModule)
	}
	if !AtLeast(v, MinMajor, MinMinor) {
		return fmt.Errorf("%w: %s %s is older than v%d.%d", types.ErrIncompatibleLibrary, PrimitiveModule, v, MinMajor, MinMinor)
	}
	return nil
}
