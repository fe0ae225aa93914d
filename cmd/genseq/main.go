// Genseq generates deterministic random FASTA/FASTQ files for exercising
// and benchmarking the superkmer pipeline. The base stream is derived from
// a seed via murmur3, so the same flags always produce the same corpus.
//
// Usage:
//
//	go run ./cmd/genseq -out corpus.fa -records 100 -length 10000
//	go run ./cmd/genseq -out reads.fq.gz -fastq -gzip -length 150 -records 1000000
//
// Flags:
//
//	-out       Output path (required)
//	-records   Number of records (default: 10)
//	-length    Bases per record (default: 10,000)
//	-seed      Generator seed (default: 42)
//	-wrap      FASTA line width, 0 for single-line (default: 70)
//	-fastq     Emit FASTQ instead of FASTA
//	-gzip      Gzip-compress the output
//	-n-every   Insert an ambiguous run every N bases, 0 to disable
//	-n-len     Length of each inserted ambiguous run (default: 5)
package main

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spaolacci/murmur3"
)

var alphabet = [4]byte{'A', 'C', 'G', 'T'}

// baseStream yields a deterministic pseudo-random base sequence. Each
// murmur3 128-bit block provides 64 two-bit bases.
type baseStream struct {
	seed    uint32
	counter uint64
	block   [2]uint64
	used    int
}

func newBaseStream(seed uint64) *baseStream {
	return &baseStream{seed: uint32(seed), counter: seed}
}

func (s *baseStream) next() byte {
	if s.used == 0 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], s.counter)
		s.counter++
		s.block[0], s.block[1] = murmur3.Sum128WithSeed(buf[:], s.seed)
		s.used = 64
	}
	s.used--
	word := s.block[s.used/32]
	b := alphabet[(word>>(2*(s.used%32)))&3]
	return b
}

func main() {
	outFlag := flag.String("out", "", "output path (required)")
	recordsFlag := flag.Int("records", 10, "number of records")
	lengthFlag := flag.Int("length", 10_000, "bases per record")
	seedFlag := flag.Uint64("seed", 42, "generator seed")
	wrapFlag := flag.Int("wrap", 70, "FASTA line width, 0 for single-line")
	fastqFlag := flag.Bool("fastq", false, "emit FASTQ instead of FASTA")
	gzipFlag := flag.Bool("gzip", false, "gzip-compress the output")
	nEveryFlag := flag.Int("n-every", 0, "insert an ambiguous run every N bases, 0 to disable")
	nLenFlag := flag.Int("n-len", 5, "length of each inserted ambiguous run")
	flag.Parse()

	if *outFlag == "" {
		fmt.Fprintln(os.Stderr, "genseq: -out is required")
		os.Exit(2)
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genseq: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if *gzipFlag {
		gz = gzip.NewWriter(f)
		w = gz
	}
	bw := bufio.NewWriter(w)

	stream := newBaseStream(*seedFlag)
	for r := 0; r < *recordsFlag; r++ {
		seq := makeRecord(stream, *lengthFlag, *nEveryFlag, *nLenFlag)
		if *fastqFlag {
			writeFastq(bw, r, seq)
		} else {
			writeFasta(bw, r, seq, *wrapFlag)
		}
	}

	err = bw.Flush()
	if err == nil && gz != nil {
		err = gz.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "genseq: %v\n", err)
		os.Exit(1)
	}
}

// makeRecord draws length bases, optionally replacing a run of nLen bases
// with 'N' every nEvery positions. A run length below 1 disables insertion;
// a zero-length run would leave the position counter stuck and never
// finish the record.
func makeRecord(stream *baseStream, length, nEvery, nLen int) []byte {
	seq := make([]byte, 0, length)
	for len(seq) < length {
		if nEvery > 0 && nLen > 0 && len(seq) > 0 && len(seq)%nEvery == 0 {
			for i := 0; i < nLen && len(seq) < length; i++ {
				seq = append(seq, 'N')
				stream.next()
			}
			continue
		}
		seq = append(seq, stream.next())
	}
	return seq
}

func writeFasta(w *bufio.Writer, id int, seq []byte, wrap int) {
	fmt.Fprintf(w, ">seq_%d\n", id)
	if wrap <= 0 {
		w.Write(seq)
		w.WriteByte('\n')
		return
	}
	for i := 0; i < len(seq); i += wrap {
		end := i + wrap
		if end > len(seq) {
			end = len(seq)
		}
		w.Write(seq[i:end])
		w.WriteByte('\n')
	}
}

func writeFastq(w *bufio.Writer, id int, seq []byte) {
	fmt.Fprintf(w, "@read_%d\n", id)
	w.Write(seq)
	w.WriteString("\n+\n")
	for range seq {
		w.WriteByte('I')
	}
	w.WriteByte('\n')
}
