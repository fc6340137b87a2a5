package kv6

import (
	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns the xxhash64 of m's little-endian encoding. Two models
// have the same fingerprint when they encode to the same bytes.
func (m *Model) Fingerprint() (uint64, error) {
	buf, err := Encode(m)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(buf), nil
}
