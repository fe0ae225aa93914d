// Package skmer packs superkmers into fixed-size binary words and extracts
// their constituent k-mers again during counting.
package skmer

import (
	"encoding/binary"

	"github.com/tamirms/superkmer/internal/dna"
)

const (
	// MaxBases is the largest base count a Word can hold. Superkmer spans
	// never exceed 2k-m <= 63 for k <= 32 and m >= 1.
	MaxBases = 63

	// LenBits is the width of the base-count field in the serialized form.
	LenBits = 6

	// EncodedSize is the size of a Word's serialized form in bytes.
	EncodedSize = 17
)

// Word is one encoded superkmer: up to 63 bases at 2 bits each packed into
// two 64-bit limbs (first base in the lowest bits of lo, continuing into
// hi), plus the base count. A maximal 63-base span needs 126 bits, so the
// count lives in its own field rather than below the bases, where it would
// push the payload past 128 bits and truncate the final bases.
type Word struct {
	lo, hi uint64
	n      uint8
}

// Encode packs the base range [start, end) of seg into a Word. The range
// is split at its midpoint so that each half is at most 32 bases and packs
// into a single limb extraction; the upper half is then shifted into place
// above the lower. end-start must be in [1, MaxBases].
func Encode(seg *dna.PackedSeq, start, end int) Word {
	mid := (start + end) / 2
	lowLen := mid - start
	low := seg.Word(start, lowLen)
	high := seg.Word(mid, end-mid)
	sh := uint(2 * lowLen)
	return Word{
		lo: low | high<<sh,
		hi: high >> (64 - sh),
		n:  uint8(end - start),
	}
}

// Len returns the number of bases in the superkmer.
func (w Word) Len() int { return int(w.n) }

// Base returns the 2-bit code of base i.
func (w Word) Base(i int) uint8 {
	off := uint(2 * i)
	if off < 64 {
		return uint8(w.lo>>off) & 3
	}
	return uint8(w.hi>>(off-64)) & 3
}

// Kmer extracts the 2k-bit k-mer starting at base offset i, first base in
// the least significant 2 bits. Requires i+k <= Len() and k <= 32.
func (w Word) Kmer(i, k int) uint64 {
	s := uint(2 * i)
	mask := ^uint64(0) >> (64 - uint(2*k))
	if s >= 64 {
		return (w.hi >> (s - 64)) & mask
	}
	return ((w.lo >> s) | (w.hi << (64 - s))) & mask
}

// AppendASCII appends the decoded bases to dst as upper-case ASCII.
func (w Word) AppendASCII(dst []byte) []byte {
	letter := [4]byte{'A', 'C', 'G', 'T'}
	for i := 0; i < int(w.n); i++ {
		dst = append(dst, letter[w.Base(i)])
	}
	return dst
}

// PutBinary writes the word's canonical serialized form: the base count in
// the low LenBits bits followed by the packed bases, little-endian across
// 17 bytes. Used for content digests; the in-memory form is never
// persisted.
func (w Word) PutBinary(dst *[EncodedSize]byte) {
	binary.LittleEndian.PutUint64(dst[0:8], w.lo<<LenBits|uint64(w.n))
	binary.LittleEndian.PutUint64(dst[8:16], w.hi<<LenBits|w.lo>>(64-LenBits))
	dst[16] = byte(w.hi >> (64 - LenBits))
}
