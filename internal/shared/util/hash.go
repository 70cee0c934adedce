package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// StorageKeyForUser returns a path-safe identifier for a user ID.
func StorageKeyForUser(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
