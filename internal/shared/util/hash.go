package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex digest of the given bytes.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
