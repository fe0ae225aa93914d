package superkmer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shenwei356/util/pathutil"
	"golang.org/x/sync/errgroup"

	skerrors "github.com/tamirms/superkmer/errors"
	"github.com/tamirms/superkmer/internal/dna"
	"github.com/tamirms/superkmer/internal/minimizer"
	"github.com/tamirms/superkmer/internal/skmer"
)

const (
	// recordChanBufferMultiplier is the multiplier for the record channel
	// buffer size.
	recordChanBufferMultiplier = 2

	// contextCheckInterval is how many records a worker processes between
	// context cancellation checks.
	contextCheckInterval = 1024
)

// Pipeline counts distinct k-mers across a set of input files.
// It runs four strictly sequential phases: validation (in New), parallel
// ingestion, parallel per-shard counting, and reporting via Result.
// A Pipeline is single-use: call Run exactly once.
type Pipeline struct {
	cfg    *config
	k, m   int
	inputs []string

	shardBases int
	shards     int
	buckets    []bucket
}

// Result holds the outcome of a run.
type Result struct {
	// Distinct is the number of distinct k-mers across the whole corpus.
	Distinct uint64

	// ShardDistinct is the per-shard breakdown; Distinct is its sum.
	ShardDistinct []uint64

	// Digest is the order-independent content digest of all encoded
	// superkmers. Zero unless WithDigest was set.
	Digest uint64

	Records    uint64
	Segments   uint64
	Superkmers uint64

	Threads       int
	IngestElapsed time.Duration
	CountElapsed  time.Duration
}

// New validates the configuration and constructs a pipeline for the given
// k-mer length, minimizer length, and input files. Use ExpandInput to turn
// an @LISTFILE argument into the inputs slice. Validation happens here,
// before any input is opened: k must be in [1, 32], m must be in [1, k],
// and every input file must exist.
func New(k, m int, inputs []string, opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if k < 1 || k > 32 {
		return nil, fmt.Errorf("%w: got %d", skerrors.ErrKOutOfRange, k)
	}
	if cfg.shardBases < 1 || cfg.shardBases > maxShardBases {
		return nil, fmt.Errorf("%w: got %d", skerrors.ErrShardBasesOutOfRange, cfg.shardBases)
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: got %d", skerrors.ErrMinimizerOutOfRange, m)
	}
	if m > k {
		return nil, fmt.Errorf("%w: m=%d k=%d", skerrors.ErrMinimizerTooLarge, m, k)
	}
	if cfg.threads < 1 {
		return nil, fmt.Errorf("%w: got %d", skerrors.ErrThreadsOutOfRange, cfg.threads)
	}
	if len(inputs) == 0 {
		return nil, skerrors.ErrNoInput
	}
	for _, path := range inputs {
		ok, err := pathutil.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", skerrors.ErrInputNotFound, path)
		}
	}

	// The shard window must stay inside the minimizer so that routing is
	// a pure function of k-mer content; for short minimizers the window
	// shrinks to m bases.
	shardBases := cfg.shardBases
	if shardBases > m {
		shardBases = m
	}
	shards := 1 << (2 * shardBases)
	p := &Pipeline{
		cfg:        cfg,
		k:          k,
		m:          m,
		inputs:     inputs,
		shardBases: shardBases,
		shards:     shards,
		buckets:    make([]bucket, shards),
	}
	if cfg.bucketCap > 0 {
		for i := range p.buckets {
			p.buckets[i].words = make([]skmer.Word, 0, cfg.bucketCap)
		}
	}
	return p, nil
}

// Run executes ingestion and counting and returns the result. The context
// is checked at record and shard boundaries; there is no finer-grained
// cancellation. Any read error aborts the whole run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{Threads: p.cfg.threads}

	ingestStart := time.Now()
	if err := p.ingest(ctx, res); err != nil {
		return nil, err
	}
	res.IngestElapsed = time.Since(ingestStart)

	// All workers have joined: buckets are frozen and safe to read
	// without locks from here on.
	countStart := time.Now()
	if err := p.countAll(ctx, res); err != nil {
		return nil, err
	}
	res.CountElapsed = time.Since(countStart)

	return res, nil
}

// ingest streams records from all inputs through the worker pool. A single
// reader goroutine feeds the record channel; workers clean, partition,
// encode, and route superkmers into the shared buckets.
func (p *Pipeline) ingest(ctx context.Context, res *Result) error {
	g, gctx := errgroup.WithContext(ctx)
	records := make(chan []byte, p.cfg.threads*recordChanBufferMultiplier)

	var nRecords, nSegments, nSuperkmers atomic.Uint64

	g.Go(func() error {
		defer close(records)
		return p.readRecords(gctx, records, &nRecords)
	})

	for range p.cfg.threads {
		g.Go(func() error {
			return p.runWorker(gctx, records, &nSegments, &nSuperkmers)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	res.Records = nRecords.Load()
	res.Segments = nSegments.Load()
	res.Superkmers = nSuperkmers.Load()
	return nil
}

// runWorker consumes raw record sequences until the channel closes.
// Each worker owns its scanner and segment scratch, cleared and reused per
// record, so no per-record state is shared between workers.
func (p *Pipeline) runWorker(ctx context.Context, records <-chan []byte, nSegments, nSuperkmers *atomic.Uint64) error {
	sc := minimizer.NewScanner(p.k, p.m)
	var seg dna.PackedSeq
	var segments, superkmers uint64
	defer func() {
		nSegments.Add(segments)
		nSuperkmers.Add(superkmers)
	}()

	processed := 0
	for raw := range records {
		processed++
		if processed%contextCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		dna.Clean(raw, p.k, &seg, func(seg *dna.PackedSeq) {
			segments++
			superkmers += p.routeSegment(seg, sc)
		})
	}
	return nil
}

// routeSegment partitions one cleaned segment into superkmers and appends
// each encoded word to its shard's bucket. Returns the number of
// superkmers emitted.
func (p *Pipeline) routeSegment(seg *dna.PackedSeq, sc *minimizer.Scanner) uint64 {
	sc.Scan(seg)
	numKmers := seg.Len() - p.k + 1
	for i, start := range sc.SkStart {
		end := numKmers
		if i+1 < len(sc.SkStart) {
			end = int(sc.SkStart[i+1])
		}
		word := skmer.Encode(seg, int(start), end+p.k-1)
		p.buckets[p.shardIndex(seg, int(sc.MinPos[i]))].append(word)
	}
	return uint64(len(sc.SkStart))
}

// countAll runs the per-shard distinct counts in parallel and sums them.
// Each shard is an independent task over frozen data, so this phase needs
// no locking at all.
func (p *Pipeline) countAll(ctx context.Context, res *Result) error {
	res.ShardDistinct = make([]uint64, p.shards)
	digests := make([]uint64, p.shards)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.threads)
	for s := range p.buckets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res.ShardDistinct[s], digests[s] = countShard(p.buckets[s].words, p.k, p.m, p.cfg.digest)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for s := range p.shards {
		res.Distinct += res.ShardDistinct[s]
		res.Digest ^= digests[s]
	}
	return nil
}
