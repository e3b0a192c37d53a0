// Package uuidmap implements a keyed dense-storage container: values live in
// one contiguous slice for fast, cache-friendly iteration, while a swiss-table
// index maps opaque random 128-bit keys to their current slots in O(1).
//
// It is designed to resemble a database table whose primary keys are always
// uuids, and suits entity/component style workloads where iteration dominates
// and keys need not be small sequential integers. Random keys need no
// last-index counter, no O(n) free-slot scan and cause no fragmentation; the
// price is 16 bytes per key and a slightly costlier lookup.
//
// If you never iterate, use a plain map. If you never look up by key, use a
// slice. If you need sorted values, use a tree. A Table still works in the
// first two cases, it just wastes some memory for the consistency.
package uuidmap

import "iter"

const defaultCapacity = 32

// Table stores values of type V contiguously and addresses them by random
// 128-bit keys. Add, Get, Remove and Count are O(1); removal swaps the last
// value into the vacated slot, so slot order is not stable across mutations.
//
// A Table is not safe for concurrent use and performs no locking. Pointers
// obtained from GetMut and iterators from Values/Keys/All are valid only
// until the next mutating call, which may relocate or destroy any value.
type Table[V any] struct {
	// Maps a key to its value's slot in data.
	idx keyIndex

	// The values, packed tight. Source of truth for iteration order.
	data []V

	// reverse[s] is the key whose value sits in data[s]. Consulted during
	// swap removal to learn which key's index entry must be repaired.
	reverse []Key

	keyFunc KeyFunc
}

type options struct {
	capacity int
	hashFunc HashFunc
	keyFunc  KeyFunc
}

// Option configures a Table at construction time.
type Option func(*options)

// WithCapacity pre-sizes the table for n values. Purely a performance knob.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithHashFunc overrides the hash function used by the key index.
func WithHashFunc(f HashFunc) Option {
	return func(o *options) {
		o.hashFunc = f
	}
}

// WithKeyFunc overrides the source of keys returned by Add.
func WithKeyFunc(f KeyFunc) Option {
	return func(o *options) {
		o.keyFunc = f
	}
}

// New returns an empty table.
func New[V any](opts ...Option) *Table[V] {
	o := options{
		capacity: defaultCapacity,
		keyFunc:  NewKey,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.hashFunc == nil {
		o.hashFunc = makeDefaultHashFunc()
	}

	t := &Table[V]{
		data:    make([]V, 0, o.capacity),
		reverse: make([]Key, 0, o.capacity),
		keyFunc: o.keyFunc,
	}
	t.idx.init(o.capacity, o.hashFunc)

	return t
}

// Add stores value under a fresh random key and returns the key.
// This is what you want to use 95% of the time.
func (t *Table[V]) Add(value V) Key {
	key := t.keyFunc()
	t.AddWithKey(key, value)

	return key
}

// AddWithKey stores value under a caller-chosen key. Usually used during
// deserialization; also handy when a table doubles as a plain map, e.g.
// KeyCode -> GameEvent.
//
// If key is already live its old value is removed first and the new value is
// appended to the end of the store, so reusing a key moves it to a new slot.
func (t *Table[V]) AddWithKey(key Key, value V) {
	t.Remove(key)

	t.data = append(t.data, value)
	t.reverse = append(t.reverse, key)
	t.idx.set(key, len(t.data)-1)
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key Key) (V, bool) {
	if slot, ok := t.idx.get(key); ok {
		return t.data[slot], true
	}

	var zero V
	return zero, false
}

// GetMut returns a pointer to the value stored under key, for mutating it in
// place. The pointer is invalidated by the next mutating call on the table.
func (t *Table[V]) GetMut(key Key) (*V, bool) {
	if slot, ok := t.idx.get(key); ok {
		return &t.data[slot], true
	}

	return nil, false
}

// Remove deletes the value stored under key and returns it. The last value
// in the store is moved into the vacated slot, so removal leaves no hole but
// relocates one other value; it is O(1) and not order-stable.
func (t *Table[V]) Remove(key Key) (V, bool) {
	slot, ok := t.idx.delete(key)
	if !ok {
		var zero V
		return zero, false
	}

	last := len(t.data) - 1
	value := t.data[slot]
	moved := t.reverse[last]

	t.data[slot] = t.data[last]
	t.reverse[slot] = moved

	var zero V
	t.data[last] = zero // drop the stale copy so V's pointers can be collected
	t.data = t.data[:last]
	t.reverse = t.reverse[:last]

	// If we removed anything but the last value, the formerly-last key now
	// lives in slot and its index entry must follow.
	if slot != last {
		t.idx.update(moved, slot)
	}

	return value, true
}

// Count returns the number of live values.
func (t *Table[V]) Count() int {
	return len(t.data)
}

// Clear empties the table. Capacity is retained.
func (t *Table[V]) Clear() {
	clear(t.data)
	t.data = t.data[:0]
	t.reverse = t.reverse[:0]
	t.idx.reset()
}

// Values iterates over live values in current slot order. The order is
// internal: any removal or key reuse reshuffles it.
func (t *Table[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.data {
			if !yield(v) {
				return
			}
		}
	}
}

// Keys iterates over live keys. Key order follows the index, not the store.
func (t *Table[V]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		t.idx.iterKeys(yield)
	}
}

// All iterates over key/value pairs in current slot order.
func (t *Table[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for slot, v := range t.data {
			if !yield(t.reverse[slot], v) {
				return
			}
		}
	}
}
