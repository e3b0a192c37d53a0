package uuidmap

import (
	"unsafe"
)

// keyIndex maps keys to dense-store slots. It is a swiss table: control-byte
// groups matched a word at a time, quadratic probing, tombstone deletes.
// Unlike the dense store it grows by rehashing, at 7/8 load.
type keyIndex struct {
	groups []group

	capacity          uintptr
	numGroupsMask     uintptr
	capacityEffective uintptr
	size              uintptr
	tombstones        uintptr

	hashFunc HashFunc
}

func (ix *keyIndex) init(capacity int, hashFunc HashFunc) {
	if capacity < groupSize {
		capacity = groupSize
	}

	normalizedCapacity := uintptr(nextPowerOf2(uint32(capacity)))
	// Number of groups required
	numGroups := normalizedCapacity / groupSize

	ix.groups = make([]group, numGroups)
	ix.capacity = normalizedCapacity
	ix.numGroupsMask = numGroups - 1
	ix.capacityEffective = normalizedCapacity * 7 / 8
	ix.size = 0
	ix.tombstones = 0
	ix.hashFunc = hashFunc

	// Initialize all control bytes to Empty
	for i := range ix.groups {
		copy(ix.groups[i].ctrls[:], emptyCtrls[:])
	}
}

// get returns the slot currently held by key.
func (ix *keyIndex) get(key Key) (int, bool) {
	h1, h2 := hashSplit(ix.hashFunc(key))
	mask := ix.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &ix.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		// SIMD-like match
		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.keys[idx] == key {
				return g.slots[idx], true
			}

			matches = matches.removeFirst()
		}

		// Termination
		if matchEmpty(ctrl) != 0 {
			return 0, false
		}

		// Quadratic probe math
		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return 0, false
}

// set inserts key -> slot, or rewrites the slot if key is already present.
// When the index hits its load bound it relieves tombstone pressure in place
// before paying for a bigger table.
func (ix *keyIndex) set(key Key, slot int) {
	for ix.put(key, slot) {
		if ix.tombstones >= ix.size/2 {
			ix.compact()
		} else {
			ix.rehash(int(ix.capacity) * 2)
		}
	}
}

// put is one insert-or-update attempt. It reports whether the index is at
// its load bound and must be compacted or grown before the key can go in.
func (ix *keyIndex) put(key Key, slot int) bool {
	// We reached the 87.5% of the capacity, table needs rehashing.
	if ix.size+ix.tombstones >= ix.capacityEffective {
		return true
	}

	var (
		h1, h2 = hashSplit(ix.hashFunc(key))
		mask   = ix.numGroupsMask
		start  = (h1 / groupSize) & mask

		targetGroup *group
		targetSlot  uintptr
		foundSlot   bool
	)

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &ix.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		// 1. Existing check
		matchMask := matchH2(ctrl, h2)
		for matchMask != 0 {
			idx := matchMask.first()
			if g.keys[idx] == key {
				g.slots[idx] = slot
				return false
			}

			matchMask = matchMask.removeFirst()
		}

		// 2. Cache first available slot
		if !foundSlot {
			matchMask = matchEmptyOrDeleted(ctrl)
			if matchMask != 0 {
				targetGroup = g
				targetSlot = matchMask.first()
				foundSlot = true
			}
		}

		// 3. Termination condition
		matchMask = matchEmpty(ctrl)
		if matchMask != 0 {
			if foundSlot {
				if targetGroup.ctrls[targetSlot] == slotDeleted {
					ix.tombstones--
				}

				targetGroup.ctrls[targetSlot] = h2
				targetGroup.keys[targetSlot] = key
				targetGroup.slots[targetSlot] = slot
				ix.size++

				return false
			}

			return true
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return true
}

// update rewrites the slot of a key the caller has already proven live
// (the key displaced from the last slot during a swap removal). A missing
// key is left untouched.
func (ix *keyIndex) update(key Key, slot int) {
	h1, h2 := hashSplit(ix.hashFunc(key))
	mask := ix.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &ix.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.keys[idx] == key {
				g.slots[idx] = slot
				return
			}

			matches = matches.removeFirst()
		}

		if matchEmpty(ctrl) != 0 {
			return
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}
}

// delete removes key from the index and returns the slot it held.
func (ix *keyIndex) delete(key Key) (int, bool) {
	h1, h2 := hashSplit(ix.hashFunc(key))
	mask := ix.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &ix.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		matchMask := matchH2(ctrl, h2)
		for matchMask != 0 {
			idx := matchMask.first()
			if g.keys[idx] == key {
				// Mark as Deleted (0xFE) to preserve the probe chain
				g.ctrls[idx] = slotDeleted
				ix.size--
				ix.tombstones++

				return g.slots[idx], true
			}

			matchMask = matchMask.removeFirst()
		}

		if matchEmpty(ctrl) != 0 {
			return 0, false
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return 0, false
}

// iterKeys yields every live key in probe order, which is unrelated to
// dense-store slot order.
func (ix *keyIndex) iterKeys(yield func(Key) bool) {
	for i := range ix.groups {
		g := &ix.groups[i]
		for j := range groupSize {
			// Full slots have the MSB clear
			if g.ctrls[j] < slotEmpty {
				if !yield(g.keys[j]) {
					return
				}
			}
		}
	}
}

func (ix *keyIndex) reset() {
	for i := range ix.groups {
		copy(ix.groups[i].ctrls[:], emptyCtrls[:])
	}

	ix.size = 0
	ix.tombstones = 0
}

// rehash rebuilds the index at the given capacity.
func (ix *keyIndex) rehash(capacity int) {
	old := ix.groups
	ix.init(capacity, ix.hashFunc)

	for i := range old {
		g := &old[i]
		for j := range groupSize {
			if g.ctrls[j] < slotEmpty {
				ix.put(g.keys[j], g.slots[j])
			}
		}
	}
}

func (ix *keyIndex) compact() {
	// We want to drop all of the deletes in place. We first walk over the
	// control bytes and mark every DELETED slot as EMPTY and every FULL slot
	// as DELETED. Marking the DELETED slots as EMPTY has effectively dropped
	// the tombstones, but we fouled up the probe invariant. Marking the FULL
	// slots as DELETED gives us a marker to locate the previously FULL slots.
	for i := range ix.groups {
		ctrls := (*uint64)(unsafe.Pointer(&ix.groups[i].ctrls))
		*ctrls = invertCtrls(*ctrls)
	}

	for idx := 0; idx < len(ix.groups); idx++ {
		g := &ix.groups[idx]
		for j := uintptr(0); j < groupSize; j++ {
			// Only process slots we marked as Deleted (which were originally Full)
			if g.ctrls[j] != slotDeleted {
				continue
			}

			var (
				key          = g.keys[j]
				slot         = g.slots[j]
				h1, h2       = hashSplit(ix.hashFunc(key))
				destGroupIdx = (h1 / groupSize) & ix.numGroupsMask

				targetGroup *group
				targetSlot  uintptr

				p        = uintptr(0)
				currGIdx = destGroupIdx
			)

			for {
				tg := &ix.groups[currGIdx]
				tc := *(*uint64)(unsafe.Pointer(&tg.ctrls))
				m := matchEmptyOrDeleted(tc)
				if m != 0 {
					targetGroup = tg
					targetSlot = m.first()
					break
				}
				p++
				currGIdx = (currGIdx + p) & ix.numGroupsMask
			}

			// Swap / Move logic
			if targetGroup == g && targetSlot == j {
				// Already home; just restore the ctrl byte
				g.ctrls[j] = h2
			} else if targetGroup.ctrls[targetSlot] == slotEmpty {
				// Target slot is empty, plain move
				targetGroup.ctrls[targetSlot] = h2
				targetGroup.keys[targetSlot] = key
				targetGroup.slots[targetSlot] = slot
				g.ctrls[j] = slotEmpty
			} else {
				// Target holds another displaced entry; swap and process
				// the evicted entry in the next iteration.
				targetGroup.ctrls[targetSlot] = h2
				g.keys[j], targetGroup.keys[targetSlot] = targetGroup.keys[targetSlot], key
				g.slots[j], targetGroup.slots[targetSlot] = targetGroup.slots[targetSlot], slot
				j--
			}
		}
	}

	ix.tombstones = 0
}
