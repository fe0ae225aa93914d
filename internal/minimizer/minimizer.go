// Package minimizer computes superkmer boundaries: the partition of a
// packed sequence's k-mer start positions into maximal runs that share a
// single minimizing m-mer.
package minimizer

import "github.com/tamirms/superkmer/internal/dna"

// mmerEntry is one candidate minimizer in the sliding-window deque.
type mmerEntry struct {
	pos  uint32
	rank uint64
}

// Scanner computes superkmer boundaries for one (k, m) configuration.
// It owns reusable scratch buffers, so each worker needs its own Scanner.
type Scanner struct {
	k, m int

	// MinPos[i] is the segment-relative start of superkmer i's minimizer.
	// SkStart[i] is the first k-mer start position covered by superkmer i.
	// Superkmer i covers k-mer starts [SkStart[i], SkStart[i+1]), the last
	// one running to len-k inclusive. Valid until the next Scan call.
	MinPos  []uint32
	SkStart []uint32

	deque []mmerEntry
}

// NewScanner returns a Scanner for the given k-mer and minimizer lengths.
// Requires 1 <= m <= k <= 32.
func NewScanner(k, m int) *Scanner {
	return &Scanner{k: k, m: m}
}

// Scan partitions seg's k-mer start positions into superkmers, overwriting
// MinPos and SkStart. For each k-mer window the minimizer is the m-mer with
// the smallest rank among the w = k-m+1 m-mers covering the window, ties
// broken by the leftmost occurrence. Rank order is lexicographic: the m-mer
// is read as an integer with its first base in the most significant bits,
// so rank comparison and base-string comparison agree. The scan is O(len):
// every m-mer enters and leaves the deque at most once.
func (s *Scanner) Scan(seg *dna.PackedSeq) {
	s.MinPos = s.MinPos[:0]
	s.SkStart = s.SkStart[:0]

	n := seg.Len()
	k, m := s.k, s.m
	if n < k {
		return
	}
	w := k - m + 1
	mask := ^uint64(0) >> (64 - uint(2*m))

	dq := s.deque[:0]
	head := 0
	prevMin := int64(-1)
	var rank uint64

	for e := 0; e < n; e++ {
		rank = ((rank << 2) | uint64(seg.Base(e))) & mask
		t := e - m + 1 // start of the m-mer ending at e
		if t < 0 {
			continue
		}
		// Drop dominated candidates. Strictly-greater keeps an earlier
		// equal-rank m-mer at the front, giving the leftmost tie-break.
		for len(dq) > head && dq[len(dq)-1].rank > rank {
			dq = dq[:len(dq)-1]
		}
		dq = append(dq, mmerEntry{pos: uint32(t), rank: rank})

		j := t - w + 1 // k-mer start whose window [j, j+w) is now complete
		if j < 0 {
			continue
		}
		for dq[head].pos < uint32(j) {
			head++
		}
		p := dq[head].pos
		if int64(p) != prevMin {
			s.MinPos = append(s.MinPos, p)
			s.SkStart = append(s.SkStart, uint32(j))
			prevMin = int64(p)
		}
	}

	s.deque = dq[:0]
}
