package uuidmap

import (
	"encoding/binary"
	"hash/maphash"
)

// HashFunc produces the 64-bit hash the index probes with.
type HashFunc func(Key) uint64

func makeDefaultHashFunc() HashFunc {
	seed := maphash.MakeSeed()

	return func(k Key) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// KeyBitsHash folds the key's own bits instead of re-hashing them.
// Randomly generated keys are already uniformly distributed, so their bits
// make a perfectly good hash. Avoid it for tables populated through
// AddWithKey with hand-picked keys, those may cluster.
func KeyBitsHash(k Key) uint64 {
	return binary.LittleEndian.Uint64(k[:8]) ^ binary.LittleEndian.Uint64(k[8:])
}

func hashSplit(hash uint64) (uintptr, uint8) {
	h1 := uintptr(hash >> 7)
	h2 := uint8(hash & 0x7F)

	return h1, h2
}
