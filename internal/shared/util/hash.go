package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a filesystem-safe directory name from a user ID, so
// guest identifiers and emails never appear in storage paths.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
