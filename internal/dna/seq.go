// Package dna provides 2-bit packed nucleotide sequences and the record
// cleaner that produces them from raw FASTA/FASTQ sequence bytes.
package dna

// code maps ASCII nucleotides to 2-bit codes: A=0, C=1, G=2, T=3,
// case-insensitive. The numeric order matches lexicographic base order,
// which the minimizer comparison relies on. Any byte outside the four
// unambiguous bases is an upstream contract violation; the table maps it
// to 0 rather than branching in the packing loop.
var code = [256]uint8{
	'A': 0, 'a': 0,
	'C': 1, 'c': 1,
	'G': 2, 'g': 2,
	'T': 3, 't': 3,
}

// letter is the inverse of code, used for decoding and diagnostics.
var letter = [4]byte{'A', 'C', 'G', 'T'}

// PackedSeq is an immutable-after-construction nucleotide sequence packed
// 2 bits per base into 64-bit limbs, first base in the lowest-order bits
// of the first limb.
type PackedSeq struct {
	limbs []uint64
	n     int
}

// Len returns the number of bases in the sequence.
func (s *PackedSeq) Len() int { return s.n }

// Reset empties the sequence, retaining limb capacity for reuse.
func (s *PackedSeq) Reset() {
	s.limbs = s.limbs[:0]
	s.n = 0
}

// Grow reserves capacity for n additional bases.
func (s *PackedSeq) Grow(n int) {
	need := (s.n + n + 31) / 32
	if cap(s.limbs) < need {
		limbs := make([]uint64, len(s.limbs), need)
		copy(limbs, s.limbs)
		s.limbs = limbs
	}
}

// PushASCII appends ASCII bases to the sequence. The input must contain
// only unambiguous bases (either case); line breaks must already be gone.
func (s *PackedSeq) PushASCII(line []byte) {
	for _, b := range line {
		off := uint(2*s.n) & 63
		if off == 0 {
			s.limbs = append(s.limbs, 0)
		}
		s.limbs[len(s.limbs)-1] |= uint64(code[b]) << off
		s.n++
	}
}

// Base returns the 2-bit code of the base at position i.
func (s *PackedSeq) Base(i int) uint8 {
	off := uint(2 * i)
	return uint8(s.limbs[off>>6]>>(off&63)) & 3
}

// Word extracts n consecutive bases starting at position start as a packed
// integer, first base in the lowest 2 bits. n must be at most 32 and the
// range must lie within the sequence.
func (s *PackedSeq) Word(start, n int) uint64 {
	if n == 0 {
		return 0
	}
	off := uint(2 * start)
	limb := off >> 6
	sh := off & 63
	v := s.limbs[limb] >> sh
	if sh != 0 && sh+uint(2*n) > 64 {
		v |= s.limbs[limb+1] << (64 - sh)
	}
	return v & (^uint64(0) >> (64 - uint(2*n)))
}

// AppendASCII appends the sequence's bases to dst as upper-case ASCII.
func (s *PackedSeq) AppendASCII(dst []byte) []byte {
	for i := 0; i < s.n; i++ {
		dst = append(dst, letter[s.Base(i)])
	}
	return dst
}
