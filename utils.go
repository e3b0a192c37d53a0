package uuidmap

import (
	"math/bits"
	"unsafe"
)

// Returns the next power of 2 for the given value `v`.
func nextPowerOf2(v uint32) uint32 {
	return uint32(1) << min(bits.Len32(v-1), 31)
}

// CapacityFromSize estimates capacity (number of index slots) from the given
// memory size in bytes. The result can be fed to WithCapacity to budget a
// table's index by memory rather than by element count.
func CapacityFromSize(size uintptr) int {
	sizeOfGroup := unsafe.Sizeof(group{})
	numGroups := size / sizeOfGroup

	return int(numGroups * groupSize)
}
