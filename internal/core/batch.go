package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultSplitSize is the number of items per output file when none is configured.
const DefaultSplitSize = 200

// DefaultBaseName is the output file stem when none is configured.
const DefaultBaseName = "bulk_upload"

// BatchSerializationError reports a batch that could not be rendered as XML.
type BatchSerializationError struct {
	Number int
	Items  int
	Err    error
}

func (e *BatchSerializationError) Error() string {
	return fmt.Sprintf("batch %03d (%d items): serialization failed: %v", e.Number, e.Items, e.Err)
}

func (e *BatchSerializationError) Unwrap() error { return e.Err }

// BatchOptions configures a BatchWriter.
type BatchOptions struct {
	Dir       string // output directory; "" means the working directory
	BaseName  string
	SplitSize int
	Pretty    bool

	// KeepGoing drops a batch that fails to serialize instead of failing the run.
	KeepGoing bool

	Logger *zap.Logger
}

// BatchWriter accumulates Items and writes them as numbered XML documents of
// at most SplitSize items each. It is not safe for concurrent use.
type BatchWriter struct {
	opts    BatchOptions
	log     *zap.Logger
	pending []Item
	next    int // number of the next batch, starting at 1

	files        []string
	dropped      int
	itemsWritten int
	itemsDropped int

	// marshal is swapped in tests to exercise the serialization failure path.
	marshal func([]Item, bool) ([]byte, error)
}

// NewBatchWriter creates a writer. A non-positive SplitSize falls back to
// DefaultSplitSize and an empty BaseName to DefaultBaseName.
func NewBatchWriter(opts BatchOptions) *BatchWriter {
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
	return &BatchWriter{
		opts:    opts,
		log:     log,
		pending: make([]Item, 0, opts.SplitSize),
		next:    1,
		marshal: MarshalBatch,
	}
}

// Add appends an item and writes the batch once it reaches SplitSize.
func (w *BatchWriter) Add(it Item) error {
	w.pending = append(w.pending, it)
	if len(w.pending) >= w.opts.SplitSize {
		return w.Flush()
	}
	return nil
}

// Flush writes the pending items as the next numbered batch. It is a no-op
// when nothing is pending, so an empty trailing batch never produces a file.
func (w *BatchWriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}

	num := w.next
	w.next++
	items := w.pending
	w.pending = make([]Item, 0, w.opts.SplitSize)

	data, err := w.marshal(items, w.opts.Pretty)
	if err != nil {
		serr := &BatchSerializationError{Number: num, Items: len(items), Err: err}
		if !w.opts.KeepGoing {
			return serr
		}
		w.log.Error("batch dropped",
			zap.Int("batch", num),
			zap.Int("items", len(items)),
			zap.Error(serr),
		)
		w.dropped++
		w.itemsDropped += len(items)
		return nil
	}

	path := w.Path(num)
	if err := writeFileAtomic(path, data); err != nil {
		return errors.Wrapf(err, "write batch %03d", num)
	}

	w.files = append(w.files, path)
	w.itemsWritten += len(items)
	w.log.Debug("batch written",
		zap.Int("batch", num),
		zap.Int("items", len(items)),
		zap.String("file", path),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Close flushes the trailing partial batch.
func (w *BatchWriter) Close() error {
	return w.Flush()
}

// Path returns the output path of batch number n.
func (w *BatchWriter) Path(n int) string {
	return filepath.Join(w.opts.Dir, BatchFileName(w.opts.BaseName, n))
}

// Files returns the paths of the batches written so far, in order.
func (w *BatchWriter) Files() []string {
	return append([]string(nil), w.files...)
}

// BatchFileName returns "<base>_<NNN>.xml" with n zero-padded to three digits.
func BatchFileName(base string, n int) string {
	return fmt.Sprintf("%s_%03d.xml", base, n)
}

// writeFileAtomic writes data to a temporary file in the target directory and
// renames it into place, so readers never observe a partial batch.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
