package superkmer

import "runtime"

const (
	// defaultShardBases is the number of leading minimizer bases that
	// select a shard, giving 4^5 = 1024 shards. Purely a load-balance
	// knob; any value in [1, maxShardBases] gives the same count.
	defaultShardBases = 5

	// maxShardBases caps the shard table at 4^12 entries.
	maxShardBases = 12
)

// Option is a functional option for configuring a Pipeline.
type Option func(*config)

type config struct {
	threads    int
	shardBases int
	bucketCap  int
	fastqOnly  bool
	digest     bool
	onFile     func(path string)
}

func defaultConfig() *config {
	return &config{
		threads:    runtime.NumCPU(),
		shardBases: defaultShardBases,
	}
}

// WithThreads sets the number of worker goroutines used for both the
// ingestion and counting phases. Defaults to all available cores.
func WithThreads(n int) Option {
	return func(c *config) {
		c.threads = n
	}
}

// WithShardBases sets how many leading bases of each minimizer select a
// shard; the pipeline uses 4^n shards. Values above the minimizer length
// are capped at it, since the shard window must not leave the minimizer.
func WithShardBases(n int) Option {
	return func(c *config) {
		c.shardBases = n
	}
}

// WithBucketCapacity pre-sizes every shard bucket for n superkmer words.
// This is a performance knob only; buckets grow past it as needed.
func WithBucketCapacity(n int) Option {
	return func(c *config) {
		c.bucketCap = n
	}
}

// WithFastqOnly makes the pipeline reject inputs that are not FASTQ.
// The record reader detects the format either way; this turns a silent
// format mix-up into an error.
func WithFastqOnly() Option {
	return func(c *config) {
		c.fastqOnly = true
	}
}

// WithDigest enables the order-independent content digest: an XOR fold of
// a 64-bit hash of every encoded superkmer word. The digest is invariant
// under thread count and record order, making runs comparable.
func WithDigest() Option {
	return func(c *config) {
		c.digest = true
	}
}

// WithFileCallback registers fn to be called after each input file has
// been fully read during ingestion. Used for progress reporting.
func WithFileCallback(fn func(path string)) Option {
	return func(c *config) {
		c.onFile = fn
	}
}
