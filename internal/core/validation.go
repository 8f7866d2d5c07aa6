package core

// validation.go checks header and data rows before item construction.
//
// Validation happens at two levels:
//  1. Header validation: every recognised field must be present
//  2. Row validation: the joined row must be valid UTF-8 and long enough to
//     hold every mapped column
//
// A failed header check aborts the run. A failed row check only diverts that
// row to the reject sink.

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// MissingFieldError reports header fields that could not be found.
type MissingFieldError struct {
	Missing []Field
	Header  []string
}

func (e *MissingFieldError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "missing required columns: " + strings.Join(names, ", ")
}

// RowEncodingError reports a data row whose bytes are not valid UTF-8.
type RowEncodingError struct {
	Line int
}

func (e *RowEncodingError) Error() string {
	return fmt.Sprintf("line %d: encoding error: row is not valid UTF-8", e.Line)
}

// ShortRowError reports a data row with fewer cells than the header mapping needs.
type ShortRowError struct {
	Line  int
	Cells int
	Need  int
}

func (e *ShortRowError) Error() string {
	return fmt.Sprintf("line %d: row has %d cells, need at least %d", e.Line, e.Cells, e.Need)
}

// ResolveFields maps each recognised field to its position in the header.
// The first matching column wins. Column order and extra columns are irrelevant.
func ResolveFields(header []string) (FieldMap, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	fm := make(FieldMap, len(Fields))
	var missing []Field
	for _, f := range Fields {
		pos, ok := idx[string(f)]
		if !ok {
			missing = append(missing, f)
			continue
		}
		fm[f] = pos
	}

	if len(missing) > 0 {
		err := &MissingFieldError{Missing: missing, Header: header}
		return nil, errors.WithHintf(err, "header found: %s", strings.Join(header, string(Delimiter)))
	}
	return fm, nil
}

// Width returns the minimum number of cells a row needs to cover every mapped column.
func (fm FieldMap) Width() int {
	w := 0
	for _, pos := range fm {
		if pos+1 > w {
			w = pos + 1
		}
	}
	return w
}

// Cell returns the raw cell for f.
func (fm FieldMap) Cell(row []string, f Field) string {
	return row[fm[f]]
}

// ValidRow reports whether the row, joined with the delimiter, is valid UTF-8.
// An empty row is valid.
func ValidRow(row []string) bool {
	for _, cell := range row {
		if !utf8.ValidString(cell) {
			return false
		}
	}
	// The delimiter is ASCII, so validity of each cell implies validity of the join.
	return true
}

// CheckRow validates a data row against the field mapping. line is the 1-based
// line number in the input, used only for error messages.
func CheckRow(line int, row []string, fm FieldMap) error {
	if !ValidRow(row) {
		return &RowEncodingError{Line: line}
	}
	if need := fm.Width(); len(row) < need {
		return &ShortRowError{Line: line, Cells: len(row), Need: need}
	}
	return nil
}
