package minimizer

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	"github.com/tamirms/superkmer/internal/dna"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

func packRandom(rng *rand.Rand, n int) *dna.PackedSeq {
	letters := []byte("ACGT")
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = letters[rng.IntN(4)]
	}
	var s dna.PackedSeq
	s.PushASCII(raw)
	return &s
}

func pack(s string) *dna.PackedSeq {
	var seq dna.PackedSeq
	seq.PushASCII([]byte(s))
	return &seq
}

// naiveMinimizerPos recomputes the minimizer position for k-mer start j by
// comparing all w m-mers in the window, first base most significant, ties
// to the leftmost.
func naiveMinimizerPos(seg *dna.PackedSeq, j, k, m int) int {
	best := -1
	var bestRank uint64
	for t := j; t+m <= j+k; t++ {
		var rank uint64
		for i := 0; i < m; i++ {
			rank = rank<<2 | uint64(seg.Base(t+i))
		}
		if best < 0 || rank < bestRank {
			best = t
			bestRank = rank
		}
	}
	return best
}

func TestScanMatchesNaive(t *testing.T) {
	rng := newTestRNG(t)
	cases := []struct{ k, m int }{
		{4, 2}, {4, 4}, {7, 3}, {21, 11}, {31, 21}, {32, 1}, {32, 32}, {1, 1},
	}
	for _, tc := range cases {
		sc := NewScanner(tc.k, tc.m)
		for iter := 0; iter < 50; iter++ {
			n := tc.k + rng.IntN(300)
			seg := packRandom(rng, n)
			sc.Scan(seg)

			numK := n - tc.k + 1
			// Expand superkmers back to a per-kmer minimizer position.
			perKmer := make([]int, 0, numK)
			for i, start := range sc.SkStart {
				end := numK
				if i+1 < len(sc.SkStart) {
					end = int(sc.SkStart[i+1])
				}
				if int(start) != len(perKmer) {
					t.Fatalf("k=%d m=%d: superkmer %d starts at %d, want %d (gap or overlap)",
						tc.k, tc.m, i, start, len(perKmer))
				}
				for j := int(start); j < end; j++ {
					perKmer = append(perKmer, int(sc.MinPos[i]))
				}
			}
			if len(perKmer) != numK {
				t.Fatalf("k=%d m=%d: covered %d k-mer starts, want %d", tc.k, tc.m, len(perKmer), numK)
			}
			for j := 0; j < numK; j++ {
				if want := naiveMinimizerPos(seg, j, tc.k, tc.m); perKmer[j] != want {
					t.Fatalf("k=%d m=%d len=%d: kmer %d minimizer at %d, want %d",
						tc.k, tc.m, n, j, perKmer[j], want)
				}
			}
		}
	}
}

func TestScanBoundariesAreMaximalRuns(t *testing.T) {
	rng := newTestRNG(t)
	sc := NewScanner(9, 4)
	for iter := 0; iter < 100; iter++ {
		seg := packRandom(rng, 9+rng.IntN(200))
		sc.Scan(seg)
		for i := 1; i < len(sc.MinPos); i++ {
			if sc.MinPos[i] == sc.MinPos[i-1] {
				t.Fatalf("adjacent superkmers share minimizer position %d; runs not maximal", sc.MinPos[i])
			}
			if sc.SkStart[i] <= sc.SkStart[i-1] {
				t.Fatalf("superkmer starts not increasing: %v", sc.SkStart)
			}
		}
	}
}

// TestScanSpanBound verifies the invariant the encoder relies on: no
// superkmer spans more than 2k-m bases.
func TestScanSpanBound(t *testing.T) {
	rng := newTestRNG(t)
	for _, tc := range []struct{ k, m int }{{32, 1}, {21, 11}, {5, 2}} {
		sc := NewScanner(tc.k, tc.m)
		maxSpan := 2*tc.k - tc.m
		for iter := 0; iter < 50; iter++ {
			seg := packRandom(rng, tc.k+rng.IntN(500))
			sc.Scan(seg)
			numK := seg.Len() - tc.k + 1
			for i, start := range sc.SkStart {
				end := numK
				if i+1 < len(sc.SkStart) {
					end = int(sc.SkStart[i+1])
				}
				if span := end - int(start) + tc.k - 1; span > maxSpan {
					t.Fatalf("k=%d m=%d: superkmer spans %d bases, max %d", tc.k, tc.m, span, maxSpan)
				}
			}
		}
	}
}

func TestScanLeftmostTieBreak(t *testing.T) {
	// Poly-A: every m-mer is identical, so the minimizer for each window
	// is its leftmost m-mer and every k-mer start opens a new superkmer.
	seg := pack("AAAAAAAAAA")
	sc := NewScanner(4, 2)
	sc.Scan(seg)
	numK := seg.Len() - 4 + 1
	if len(sc.MinPos) != numK {
		t.Fatalf("got %d superkmers, want %d", len(sc.MinPos), numK)
	}
	for i := range sc.MinPos {
		if int(sc.MinPos[i]) != i || int(sc.SkStart[i]) != i {
			t.Fatalf("superkmer %d: minPos=%d skStart=%d, want both %d", i, sc.MinPos[i], sc.SkStart[i], i)
		}
	}
}

func TestScanShortSegment(t *testing.T) {
	sc := NewScanner(8, 4)
	sc.Scan(pack("ACGT"))
	if len(sc.MinPos) != 0 || len(sc.SkStart) != 0 {
		t.Fatalf("expected no superkmers for segment shorter than k")
	}
}

func TestScanSingleKmer(t *testing.T) {
	sc := NewScanner(4, 2)
	sc.Scan(pack("GTCA"))
	if len(sc.SkStart) != 1 || sc.SkStart[0] != 0 {
		t.Fatalf("got starts %v, want [0]", sc.SkStart)
	}
	if want := naiveMinimizerPos(pack("GTCA"), 0, 4, 2); int(sc.MinPos[0]) != want {
		t.Fatalf("minimizer at %d, want %d", sc.MinPos[0], want)
	}
}

// TestScanReuse runs two scans with one scanner and checks the second is
// unaffected by the first.
func TestScanReuse(t *testing.T) {
	sc := NewScanner(4, 2)
	sc.Scan(pack("ACGTACGTACGTACGTACGT"))
	firstLen := len(sc.SkStart)
	if firstLen == 0 {
		t.Fatal("first scan found no superkmers")
	}
	sc.Scan(pack("GTCA"))
	if len(sc.SkStart) != 1 {
		t.Fatalf("second scan: got %d superkmers, want 1", len(sc.SkStart))
	}
}
