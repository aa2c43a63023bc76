// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"strings"

	"github.com/blang/semver"
)

// ParseVersion parses a strict semantic version. A leading "v" is
// tolerated since publishers routinely tag "v1.2.3".
func ParseVersion(s string) (semver.Version, error) {
	return semver.Parse(strings.TrimPrefix(s, "v"))
}

func IsValidVersion(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// ParseRange parses a semver range expression such as
// ">=1.0.0 <2.0.0". Space separated constraints are AND'ed, "||"
// separates alternatives.
func ParseRange(s string) (semver.Range, error) {
	return semver.ParseRange(s)
}

func IsValidRange(s string) bool {
	_, err := ParseRange(s)
	return err == nil
}

// CompareVersions orders two version strings by semver precedence.
// Malformed versions sort below every valid one so they can never win
// a highest-version selection; two malformed versions compare equal.
func CompareVersions(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)

	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}

	return va.Compare(vb)
}
