package superkmer

import (
	"sync"

	"github.com/tamirms/superkmer/internal/dna"
	"github.com/tamirms/superkmer/internal/skmer"
)

// bucket is one shard's collection of encoded superkmer words. During
// ingestion it is append-only under a per-shard mutex, so appends to
// different shards never contend; after the workers join it is read-only
// and accessed without the lock.
type bucket struct {
	mu    sync.Mutex
	words []skmer.Word
}

func (b *bucket) append(w skmer.Word) {
	b.mu.Lock()
	b.words = append(b.words, w)
	b.mu.Unlock()
}

// shardIndex routes a superkmer by the packed value of the first
// shardBases bases of its minimizer, read from the cleaned segment. The
// minimizer is a pure function of k-mer window content and lies inside it
// (shardBases is capped at m, so the shard window does too), so every
// occurrence of a k-mer resolves to the same shard.
func (p *Pipeline) shardIndex(seg *dna.PackedSeq, minPos int) int {
	return int(seg.Word(minPos, p.shardBases))
}
