// Package hash provides the xxHash64 helpers used for track identifiers and payload
// checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a track name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
