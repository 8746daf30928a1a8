package internal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Version is the current rimlocale release
const Version = "0.3.0"

// HashText returns the hex encoded SHA-256 digest of text.
// The result is 64 lowercase alphanumeric characters and is safe to use as a
// file name. It is used for cache keys only.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
