package uuidmap

const (
	groupSize = 8

	slotEmpty   = 0x80
	slotDeleted = 0xFE
)

// group is one probe unit of the key index.
type group struct {
	// 8 bytes of metadata (h2 or control states).
	// This fits perfectly in a single uint64 load.
	ctrls [groupSize]uint8

	// 8 keys stored immediately after the metadata.
	// Keys are 16 bytes each, so a group spans a little over two cache
	// lines; the ctrl word keeps most probes from touching the second.
	keys [groupSize]Key

	// Dense-store slot currently held by each key.
	slots [groupSize]int
}

var emptyCtrls = [groupSize]uint8{
	slotEmpty,
	slotEmpty,
	slotEmpty,
	slotEmpty,

	slotEmpty,
	slotEmpty,
	slotEmpty,
	slotEmpty,
}
