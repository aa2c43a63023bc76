// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the lowercase hex SHA-256 digest of b. Bundle,
// asset and manifest content addressing all go through this single
// function so identical bytes always map to the same storage identity.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashString is HashBytes over the UTF-8 bytes of s.
func HashString(s string) string {
	return HashBytes([]byte(s))
}
