package uuidmap

import (
	"strconv"
	"testing"
)

var benchSizes = []int{1024, 1 << 16}

func benchFill(n int) (*Table[int], []Key) {
	tab := New[int](WithCapacity(n))
	keys := make([]Key, 0, n)
	for i := range n {
		keys = append(keys, tab.Add(i))
	}

	return tab, keys
}

func BenchmarkTable_Add(b *testing.B) {
	tab := New[int]()
	b.ReportAllocs()

	for b.Loop() {
		tab.Add(42)
	}
}

func BenchmarkTable_AddWithKey(b *testing.B) {
	tab := New[int]()
	key := testKey(123)

	for b.Loop() {
		tab.AddWithKey(key, 42)
	}
}

func BenchmarkTable_Get_Hit(b *testing.B) {
	for _, n := range benchSizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			b.Run("variant=table", func(b *testing.B) {
				tab, keys := benchFill(n)

				i := 0
				for b.Loop() {
					tab.Get(keys[i&(n-1)])
					i++
				}
			})

			b.Run("variant=tableKeyBitsHash", func(b *testing.B) {
				tab := New[int](WithCapacity(n), WithHashFunc(KeyBitsHash))
				keys := make([]Key, 0, n)
				for i := range n {
					keys = append(keys, tab.Add(i))
				}

				i := 0
				for b.Loop() {
					tab.Get(keys[i&(n-1)])
					i++
				}
			})

			b.Run("variant=stdMap", func(b *testing.B) {
				m := make(map[Key]int, n)
				keys := make([]Key, 0, n)
				for i := range n {
					k := NewKey()
					m[k] = i
					keys = append(keys, k)
				}

				i := 0
				for b.Loop() {
					_ = m[keys[i&(n-1)]]
					i++
				}
			})
		})
	}
}

func BenchmarkTable_Get_Miss(b *testing.B) {
	tab, _ := benchFill(1 << 16)

	i := uint64(1 << 32)
	for b.Loop() {
		tab.Get(testKey(i))
		i++
	}
}

func BenchmarkTable_AddRemove(b *testing.B) {
	tab, _ := benchFill(1024)

	for b.Loop() {
		key := tab.Add(42)
		tab.Remove(key)
	}
}

func BenchmarkTable_Count(b *testing.B) {
	tab, _ := benchFill(1024)

	for b.Loop() {
		tab.Count()
	}
}

func BenchmarkTable_Values(b *testing.B) {
	for _, n := range benchSizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			b.Run("variant=table", func(b *testing.B) {
				tab, _ := benchFill(n)

				for b.Loop() {
					sum := 0
					for v := range tab.Values() {
						sum += v
					}
					_ = sum
				}
			})

			b.Run("variant=stdMap", func(b *testing.B) {
				m := make(map[Key]int, n)
				for i := range n {
					m[NewKey()] = i
				}

				for b.Loop() {
					sum := 0
					for _, v := range m {
						sum += v
					}
					_ = sum
				}
			})
		})
	}
}
