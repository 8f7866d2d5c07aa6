package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// RejectFileName is the reject log written next to the batch files.
const RejectFileName = "bad_rows.txt"

// RejectSink appends rejected rows to bad_rows.txt. The file is opened in
// append mode for every row, so rows accumulate across runs and nothing is
// buffered in memory.
type RejectSink struct {
	path  string
	count int
}

// NewRejectSink returns a sink writing to dir/bad_rows.txt, or to the working
// directory when dir is empty.
func NewRejectSink(dir string) *RejectSink {
	return &RejectSink{path: filepath.Join(dir, RejectFileName)}
}

// Reject appends the row's cells, rejoined with the delimiter, as one line.
func (s *RejectSink) Reject(row []string) (err error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open reject log")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close reject log")
		}
	}()

	line := strings.Join(row, string(Delimiter)) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return errors.Wrap(err, "append reject log")
	}
	s.count++
	return nil
}

// Path returns the reject log location.
func (s *RejectSink) Path() string { return s.path }

// Count returns the number of rows rejected through this sink.
func (s *RejectSink) Count() int { return s.count }
