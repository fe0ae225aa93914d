package superkmer

import (
	"github.com/cespare/xxhash/v2"

	"github.com/tamirms/superkmer/internal/kmerset"
	"github.com/tamirms/superkmer/internal/skmer"
)

// countShard decodes every superkmer word in one finalized bucket, inserts
// each constituent k-mer into a distinct set, and returns the set's
// cardinality. When wantDigest is set it also XOR-folds a 64-bit hash of
// every word's serialized form; XOR makes the fold independent of append
// order, which ingestion does not fix.
func countShard(words []skmer.Word, k, m int, wantDigest bool) (distinct, digest uint64) {
	if len(words) == 0 {
		return 0, 0
	}

	// A word carries at most w = k-m+1 k-mers; the 3/5 factor discounts
	// for repeats within the shard.
	w := k - m + 1
	set := kmerset.New(len(words) * (w + 1) * 3 / 5)

	var buf [skmer.EncodedSize]byte
	for _, word := range words {
		if wantDigest {
			word.PutBinary(&buf)
			digest ^= xxhash.Sum64(buf[:])
		}
		n := word.Len()
		for i := 0; i+k <= n; i++ {
			set.Add(word.Kmer(i, k))
		}
	}
	return uint64(set.Len()), digest
}
