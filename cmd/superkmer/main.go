// Superkmer counts distinct k-mers (k <= 32) in FASTA/FASTQ files, plain
// or compressed, using minimizer-based sharding for parallel counting.
//
// Usage:
//
//	superkmer -i genome.fa.gz -k 21
//	superkmer -i @inputs.txt -k 31 -m 15 -t 16
//
// The input may be a single file or "@LISTFILE" naming one input path per
// line. Diagnostics go to stderr; the final count goes to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gonum.org/v1/gonum/stat"

	"github.com/tamirms/superkmer"
)

var (
	flagInput      string
	flagK          int
	flagM          int
	flagThreads    int
	flagFastq      bool
	flagShardBases int
	flagBucketCap  int
	flagDigest     bool
	flagVerbose    bool
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "superkmer",
	Short: "count distinct k-mers in FASTA/Q files",
	Long: `superkmer counts the number of distinct k-mers (k <= 32) occurring in a
genomic sequence corpus. Input files may be FASTA or FASTQ, optionally
compressed (auto-detected). Only forward-strand k-mers are counted.

The input flag accepts either a single file or "@LISTFILE", where LISTFILE
contains one input path per line.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	fs := rootCmd.Flags()
	fs.StringVarP(&flagInput, "input", "i", "", "input file, or @LISTFILE with one path per line (required)")
	fs.IntVarP(&flagK, "kmer-len", "k", 0, "k-mer length, in [1, 32] (required)")
	fs.IntVarP(&flagM, "minimizer-len", "m", 21, "minimizer length, at most k")
	fs.IntVarP(&flagThreads, "threads", "t", 0, "worker count (default: all cores)")
	fs.BoolVarP(&flagFastq, "fastq", "f", false, "require FASTQ input")
	fs.IntVar(&flagShardBases, "shard-bases", 0, "minimizer bases used for shard routing (default 5)")
	fs.IntVar(&flagBucketCap, "bucket-cap", 0, "pre-sized capacity of each shard bucket, in superkmers")
	fs.BoolVar(&flagDigest, "digest", false, "report an order-independent content digest of all superkmers")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "print progress and extra diagnostics")
	fs.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress timing diagnostics")

	cobra.CheckErr(rootCmd.MarkFlagRequired("input"))
	cobra.CheckErr(rootCmd.MarkFlagRequired("kmer-len"))
}

func run(cmd *cobra.Command, args []string) error {
	// Sequence bytes are consumed raw by the cleaner; parser-side alphabet
	// validation would only slow the reader down.
	seq.ValidateSeq = false

	inputs, err := superkmer.ExpandInput(flagInput)
	if err != nil {
		return err
	}

	opts := []superkmer.Option{}
	if flagThreads > 0 {
		opts = append(opts, superkmer.WithThreads(flagThreads))
	}
	if flagShardBases > 0 {
		opts = append(opts, superkmer.WithShardBases(flagShardBases))
	}
	if flagBucketCap > 0 {
		opts = append(opts, superkmer.WithBucketCapacity(flagBucketCap))
	}
	if flagFastq {
		opts = append(opts, superkmer.WithFastqOnly())
	}
	if flagDigest {
		opts = append(opts, superkmer.WithDigest())
	}

	var progress *mpb.Progress
	if flagVerbose {
		progress = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar := progress.AddBar(int64(len(inputs)),
			mpb.PrependDecorators(
				decor.Name("ingesting: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		)
		opts = append(opts, superkmer.WithFileCallback(func(string) {
			bar.Increment()
		}))
	}

	p, err := superkmer.New(flagK, flagM, inputs, opts...)
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context())
	if progress != nil {
		if err != nil {
			// The bar never completes on an aborted run; Wait would hang.
			progress.Shutdown()
		} else {
			progress.Wait()
		}
	}
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "threads: %d\n", res.Threads)
		fmt.Fprintf(os.Stderr, "ingest: %.3fs (%d records, %d segments, %d superkmers)\n",
			res.IngestElapsed.Seconds(), res.Records, res.Segments, res.Superkmers)
		fmt.Fprintf(os.Stderr, "count: %.3fs\n", res.CountElapsed.Seconds())
	}
	if flagDigest {
		fmt.Fprintf(os.Stderr, "digest: %016x\n", res.Digest)
	}
	if flagVerbose {
		printShardBalance(res.ShardDistinct)
		if rss := maxRSS(); rss > 0 {
			fmt.Fprintf(os.Stderr, "peak rss: %.1f MB\n", float64(rss)/(1<<20))
		}
	}

	fmt.Printf("%d distinct %d-mers\n", res.Distinct, flagK)
	return nil
}

// printShardBalance summarizes how evenly distinct k-mers spread across
// shards. A heavily skewed distribution means one shard dominates the
// counting phase.
func printShardBalance(shardDistinct []uint64) {
	xs := make([]float64, len(shardDistinct))
	var max float64
	for i, c := range shardDistinct {
		xs[i] = float64(c)
		if xs[i] > max {
			max = xs[i]
		}
	}
	mean := stat.Mean(xs, nil)
	sd := stat.StdDev(xs, nil)
	fmt.Fprintf(os.Stderr, "shards: %d (distinct per shard: mean %.1f, stddev %.1f, max %.0f)\n",
		len(xs), mean, sd, max)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
