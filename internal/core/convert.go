package core

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextCheckInterval is how often (in rows) the converter checks for
// cancellation. Values below 1 mean every row.
var ContextCheckInterval = 100

// Options configures a conversion run.
type Options struct {
	BaseName  string
	OutDir    string // "" means the working directory
	SplitSize int
	Pretty    bool
	KeepGoing bool
	Logger    *zap.Logger
}

// Converter runs the header → validate → build → batch pipeline over one input.
type Converter struct {
	opts Options
	log  *zap.Logger
}

// NewConverter creates a converter with the given options.
func NewConverter(opts Options) *Converter {
	if opts.SplitSize <= 0 {
		opts.SplitSize = DefaultSplitSize
	}
	if opts.BaseName == "" {
		opts.BaseName = DefaultBaseName
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{opts: opts, log: log}
}

// newCSVReader configures encoding/csv for the ';'-delimited input. Quoting is
// tolerated and rows may have varying widths; width is checked per row.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// Run converts the delimited input read from r. Every data row ends up either
// as an item in a batch file or as a line in the reject log. The returned
// Result is populated even when an error is returned.
func (c *Converter) Run(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := c.log.With(zap.String("run_id", runID))

	result := &Result{RunID: runID}
	defer func() { result.Duration = time.Since(start) }()

	input, counter := WrapInput(r)
	cr := newCSVReader(input)

	header, err := cr.Read()
	if err == io.EOF {
		return result, errors.WithHint(errors.New("empty file: no header row"),
			"the first line must name the columns")
	}
	if err != nil {
		return result, errors.Wrap(err, "read header")
	}

	fm, err := ResolveFields(header)
	if err != nil {
		return result, err
	}

	log.Debug("conversion started",
		zap.String("base_name", c.opts.BaseName),
		zap.String("out_dir", c.opts.OutDir),
		zap.Int("split_size", c.opts.SplitSize),
		zap.Bool("pretty", c.opts.Pretty),
	)

	sink := NewRejectSink(c.opts.OutDir)
	batches := NewBatchWriter(BatchOptions{
		Dir:       c.opts.OutDir,
		BaseName:  c.opts.BaseName,
		SplitSize: c.opts.SplitSize,
		Pretty:    c.opts.Pretty,
		KeepGoing: c.opts.KeepGoing,
		Logger:    log,
	})

	finish := func() {
		result.RowsRejected = sink.Count()
		result.Files = batches.Files()
		result.BatchesWritten = len(result.Files)
		result.BatchesDropped = batches.dropped
		result.ItemsWritten = batches.itemsWritten
		result.ItemsDropped = batches.itemsDropped
		result.BytesRead = counter.BytesRead
		if result.RowsRejected > 0 {
			result.RejectLog = sink.Path()
		}
	}
	defer finish()

	interval := ContextCheckInterval
	if interval < 1 {
		interval = 1
	}

	for {
		if result.RowsRead%interval == 0 {
			if err := ctx.Err(); err != nil {
				return result, errors.Wrap(err, "conversion cancelled")
			}
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Wrapf(err, "read row %d", result.RowsRead+1)
		}
		result.RowsRead++
		line, _ := cr.FieldPos(0)

		if rerr := CheckRow(line, row, fm); rerr != nil {
			log.Debug("row rejected", zap.Int("line", line), zap.Error(rerr))
			if err := sink.Reject(row); err != nil {
				return result, err
			}
			continue
		}

		if err := batches.Add(BuildItem(row, fm)); err != nil {
			return result, err
		}
	}

	if err := batches.Close(); err != nil {
		return result, err
	}

	finish()
	log.Debug("conversion complete",
		zap.Int("rows", result.RowsRead),
		zap.Int("items", result.ItemsWritten),
		zap.Int("rejected", result.RowsRejected),
		zap.String("reject_log", result.RejectLog),
		zap.Int("batches", result.BatchesWritten),
		zap.Int("batches_dropped", result.BatchesDropped),
		zap.Int64("bytes", result.BytesRead),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
