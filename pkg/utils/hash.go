package utils

import (
	"fmt"

	"github.com/cespare/xxhash"
)

// Fingerprint returns the xxhash of data, used to identify
// a ROM image independently of its file name.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintString returns the fingerprint of data formatted
// as hex.
func FingerprintString(data []byte) string {
	return fmt.Sprintf("%016x", Fingerprint(data))
}
