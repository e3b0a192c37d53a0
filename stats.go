package uuidmap

// Stats is a point-in-time snapshot of a table's internals, mainly useful
// for sizing decisions and tests.
type Stats struct {
	Count           int
	Capacity        int
	IndexCapacity   int
	IndexTombstones int
}

func (t *Table[V]) Stats() Stats {
	return Stats{
		Count:           len(t.data),
		Capacity:        cap(t.data),
		IndexCapacity:   int(t.idx.capacity),
		IndexTombstones: int(t.idx.tombstones),
	}
}
