// Package hash derives fixed-size field identifiers from field names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string. Frame headers store the
// resulting 64-bit value instead of the variable-length field name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
