package superkmer

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/shenwei356/bio/seqio/fastx"

	skerrors "github.com/tamirms/superkmer/errors"
)

// readRecords streams every record from every input file, in order, into
// the record channel. The reader is the only goroutine touching the fastx
// parser; workers receive private copies of each record's sequence bytes
// because the parser reuses its buffers between reads. Any failure aborts
// the whole run, including in list-file mode.
func (p *Pipeline) readRecords(ctx context.Context, out chan<- []byte, nRecords *atomic.Uint64) error {
	for _, path := range p.inputs {
		if err := p.readFile(ctx, path, out, nRecords); err != nil {
			return err
		}
		if p.cfg.onFile != nil {
			p.cfg.onFile(path)
		}
	}
	return nil
}

func (p *Pipeline) readFile(ctx context.Context, path string, out chan<- []byte, nRecords *atomic.Uint64) error {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	first := true
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		if first {
			first = false
			// The parser detects the format itself; the FASTQ flag is an
			// assertion that the caller got the file they expected.
			if p.cfg.fastqOnly && len(record.Seq.Qual) == 0 {
				return fmt.Errorf("%w: %s", skerrors.ErrNotFastq, path)
			}
		}

		raw := make([]byte, len(record.Seq.Seq))
		copy(raw, record.Seq.Seq)
		nRecords.Add(1)

		select {
		case out <- raw:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
