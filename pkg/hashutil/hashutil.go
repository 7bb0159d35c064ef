package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Digest returns the BLAKE3-256 hash of data as a hex string. Seed files
// are digested on write so successive runs can be compared without
// diffing file contents.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
