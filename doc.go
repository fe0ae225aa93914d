// Package superkmer counts distinct fixed-length nucleotide substrings
// (k-mers, k <= 32) across a FASTA/FASTQ corpus using minimizer-derived
// sharding, so the count is computed in parallel with bounded per-shard
// memory and no cross-shard synchronization.
//
// Records are cleaned (split on ambiguous-base runs, packed 2 bits per
// base), partitioned into superkmers — maximal runs of consecutive k-mers
// sharing one minimizer — and each superkmer is packed into a compact
// binary word and appended to the shard selected by its minimizer's
// leading bases. Because the minimizer is a pure function of window
// content, every occurrence of a k-mer lands in the same shard, and the
// final answer is the sum of independent per-shard distinct counts.
//
// # Basic Usage
//
//	p, err := superkmer.New(21, 11, []string{"genome.fa.gz"},
//	    superkmer.WithThreads(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := p.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d distinct 21-mers\n", res.Distinct)
//
// # Package Structure
//
//   - Public API: pipeline.go (New, Run, Result), options.go (Option, With* functions)
//   - Sharding: bucket.go (shard routing, concurrent buckets)
//   - Counting: counter.go (per-shard distinct counts, content digest)
//   - Input: reader.go (record streaming), inputs.go (list-file expansion)
//   - Cleaning/packing: internal/dna
//   - Superkmer boundaries: internal/minimizer
//   - Superkmer codec: internal/skmer
//   - Distinct set: internal/kmerset
package superkmer
