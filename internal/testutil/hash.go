package testutil

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// XXH3Hex returns the 128-bit XXH3 digest of data as a lowercase hex string.
// Matches the content hash format stored in the catalog.
func XXH3Hex(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(sum[:])
}
