// Package chd implements the Botelho-Pagh-Ziviani compress-hash-displace
// construction: a build-once, read-many perfect-hash dictionary over short
// byte-string keys.
//
// The hash primary is fixed at build time to FNV-1a (see spec.md §9's own
// recommendation to remove the runtime hash-algorithm switch present in the
// original implementation); construction and lookup always agree because
// both call the same primaryHash function.
package chd

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// maxSeedSearch bounds the seed search per bucket. Exceeding it on a
// reasonably-sized, unique-key input set is a programming bug (e.g. a
// pathological or duplicate key set), not a runtime condition callers are
// expected to recover from.
const maxSeedSearch = 1 << 20

// entry is one (key, value) slot of the built table. Unused slots hold the
// zero value of both fields; lookups never trust an empty slot because the
// key comparison in Lookup rejects it.
type entry[V any] struct {
	key string
	val V
	set bool
}

// Dictionary is an immutable perfect-hash map from string keys to values
// of type V. Zero value is not usable; construct with Build.
type Dictionary[V any] struct {
	table []entry[V]
	seeds []int64 // 0 = no bucket at this primary slot, >0 = displacement seed, <0 = -(slot+1) direct placement
	n     int     // table size, power of two (0 for empty dictionaries)
	size  int     // number of keys actually stored
}

// Pair is one input (key, value) item for Build.
type Pair[V any] struct {
	Key   string
	Value V
}

// Build constructs a Dictionary from items. Keys must be unique; Build
// panics if a duplicate key is supplied, since the construction algorithm
// has no defined behavior for it and spec.md treats unique keys as a
// precondition, not a validated input.
func Build[V any](items []Pair[V]) *Dictionary[V] {
	if len(items) == 0 {
		return &Dictionary[V]{}
	}

	n := nextPowerOfTwo(2 * len(items))

	type bucket struct {
		slotHash int // h mod n, shared by every item in the bucket
		indices  []int
	}
	buckets := make(map[int]*bucket)
	hashes := make([]uint64, len(items))
	seen := make(map[string]struct{}, len(items))

	for i, it := range items {
		if _, dup := seen[it.Key]; dup {
			panic(fmt.Sprintf("chd: duplicate key %q", it.Key))
		}
		seen[it.Key] = struct{}{}

		h := primaryHash(it.Key)
		hashes[i] = h
		slot := int(h % uint64(n))
		b, ok := buckets[slot]
		if !ok {
			b = &bucket{slotHash: slot}
			buckets[slot] = b
		}
		b.indices = append(b.indices, i)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].indices) != len(ordered[j].indices) {
			return len(ordered[i].indices) > len(ordered[j].indices)
		}
		return ordered[i].slotHash < ordered[j].slotHash
	})

	table := make([]entry[V], n)
	occupied := make([]bool, n)
	seeds := make([]int64, n)

	placeAt := func(slot int, it Pair[V]) {
		table[slot] = entry[V]{key: it.Key, val: it.Value, set: true}
		occupied[slot] = true
	}

	nextFree := 0
	freeSlot := func() int {
		for nextFree < n && occupied[nextFree] {
			nextFree++
		}
		if nextFree >= n {
			panic("chd: no free slot left, table undersized")
		}
		return nextFree
	}

	var singletons []*bucket
	for _, b := range ordered {
		if len(b.indices) == 1 {
			singletons = append(singletons, b)
			continue
		}

		found := false
		for seed := int64(1); seed <= maxSeedSearch; seed++ {
			slots := make([]int, len(b.indices))
			ok := true
			for j, idx := range b.indices {
				slot := seedMix(seed, hashes[idx], n)
				if occupied[slot] {
					ok = false
					break
				}
				for k := 0; k < j; k++ {
					if slots[k] == slot {
						ok = false
						break
					}
				}
				if !ok {
					break
				}
				slots[j] = slot
			}
			if !ok {
				continue
			}
			for j, idx := range b.indices {
				placeAt(slots[j], items[idx])
			}
			seeds[b.slotHash] = seed
			found = true
			break
		}
		if !found {
			panic(fmt.Sprintf("chd: could not find a displacement seed for bucket of size %d", len(b.indices)))
		}
	}

	for _, b := range singletons {
		idx := b.indices[0]
		slot := freeSlot()
		placeAt(slot, items[idx])
		seeds[b.slotHash] = -(int64(slot) + 1)
	}

	return &Dictionary[V]{table: table, seeds: seeds, n: n, size: len(items)}
}

// Lookup returns the value stored under key and true, or the zero value
// and false if key was never built into the dictionary.
func (d *Dictionary[V]) Lookup(key string) (V, bool) {
	var zero V
	if d.n == 0 {
		return zero, false
	}

	h := primaryHash(key)
	idx := int(h % uint64(d.n))
	seed := d.seeds[idx]
	if seed == 0 {
		return zero, false
	}

	var slot int
	if seed < 0 {
		slot = int(-seed - 1)
	} else {
		slot = seedMix(seed, h, d.n)
	}

	e := d.table[slot]
	if !e.set || e.key != key {
		return zero, false
	}
	return e.val, true
}

// Len returns the number of keys stored.
func (d *Dictionary[V]) Len() int {
	return d.size
}

// Keys returns the stored keys in table order (not insertion order; the
// spec only guarantees "insertion order preserved in the pair vector" for
// a from-scratch rebuild, which no caller of this port currently relies
// on, so this iterates the physical table instead of keeping a second
// ordered copy).
func (d *Dictionary[V]) Keys() []string {
	keys := make([]string, 0, d.size)
	for _, e := range d.table {
		if e.set {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// primaryHash is FNV-1a computed one byte at a time over key's bytes.
func primaryHash(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// seedMix reversibly scrambles (seed + h) through three xor-shifts and a
// multiplication by a fixed odd 64-bit constant, returning the low log2(n)
// bits as a table slot.
func seedMix(seed int64, h uint64, n int) int {
	x := uint64(seed) + h
	x ^= x >> 33
	x ^= x >> 21
	x ^= x >> 8
	x *= 0x9e3779b97f4a7c15 // fixed odd 64-bit constant (golden-ratio based)
	mask := uint64(n - 1)
	return int(x & mask)
}

func nextPowerOfTwo(v int) int {
	if v < 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
