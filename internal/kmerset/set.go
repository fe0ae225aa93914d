// Package kmerset implements an open-addressing hash set of packed k-mer
// values. It is the counting structure for one shard: single-writer,
// insert-only, cardinality queried once at the end.
package kmerset

import (
	"encoding/binary"
	"math/bits"

	"github.com/zeebo/xxh3"
)

const (
	minCapacity = 16

	// The table grows once size*4 >= capacity*3 (75% load).
	loadNum, loadDen = 3, 4
)

// Set is a linear-probing hash set of uint64 values. The zero value of a
// slot marks it empty, so the key 0 (a poly-A k-mer) is tracked out of
// band.
type Set struct {
	slots   []uint64
	mask    uint64
	size    int
	hasZero bool
}

// New returns a Set pre-sized for roughly sizeHint insertions.
func New(sizeHint int) *Set {
	capacity := minCapacity
	if sizeHint > 0 {
		// Round up so sizeHint stays below the grow threshold.
		capacity = 1 << bits.Len(uint(sizeHint*loadDen/loadNum))
		if capacity < minCapacity {
			capacity = minCapacity
		}
	}
	return &Set{
		slots: make([]uint64, capacity),
		mask:  uint64(capacity - 1),
	}
}

// hash mixes a k-mer value into a table index seed. xxh3 is effectively
// free at 8 bytes and spreads the low-entropy 2-bit-packed values well.
func hash(v uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return xxh3.Hash(b[:])
}

// Add inserts v into the set. Duplicate inserts are no-ops.
func (s *Set) Add(v uint64) {
	if v == 0 {
		if !s.hasZero {
			s.hasZero = true
			s.size++
		}
		return
	}
	if (s.size+1)*loadDen >= len(s.slots)*loadNum {
		s.grow()
	}
	i := hash(v) & s.mask
	for {
		slot := s.slots[i]
		if slot == 0 {
			s.slots[i] = v
			s.size++
			return
		}
		if slot == v {
			return
		}
		i = (i + 1) & s.mask
	}
}

// Contains reports whether v has been added.
func (s *Set) Contains(v uint64) bool {
	if v == 0 {
		return s.hasZero
	}
	i := hash(v) & s.mask
	for {
		slot := s.slots[i]
		if slot == 0 {
			return false
		}
		if slot == v {
			return true
		}
		i = (i + 1) & s.mask
	}
}

// Len returns the number of distinct values added.
func (s *Set) Len() int { return s.size }

func (s *Set) grow() {
	old := s.slots
	s.slots = make([]uint64, 2*len(old))
	s.mask = uint64(len(s.slots) - 1)
	for _, v := range old {
		if v == 0 {
			continue
		}
		i := hash(v) & s.mask
		for s.slots[i] != 0 {
			i = (i + 1) & s.mask
		}
		s.slots[i] = v
	}
}
