package core

import (
	"context"
	"io/fs"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing field",
			err:      errors.WithHint(&MissingFieldError{Missing: []Field{FieldName}}, "hint"),
			wantCode: "VAL004",
		},
		{
			name:     "short row",
			err:      errors.Wrap(&ShortRowError{Line: 2, Cells: 1, Need: 9}, "row"),
			wantCode: "VAL007",
		},
		{
			name:     "row encoding",
			err:      &RowEncodingError{Line: 4},
			wantCode: "FILE003",
		},
		{
			name:     "batch serialization",
			err:      &BatchSerializationError{Number: 1, Items: 3, Err: errors.New("boom")},
			wantCode: "OUT001",
		},
		{
			name:     "cancelled",
			err:      errors.Wrap(context.Canceled, "conversion cancelled"),
			wantCode: "RUN001",
		},
		{
			name:     "not found",
			err:      errors.Wrap(&fs.PathError{Op: "open", Path: "x.csv", Err: fs.ErrNotExist}, "open input"),
			wantCode: "FILE006",
		},
		{
			name:     "permission",
			err:      &fs.PathError{Op: "open", Path: "out", Err: fs.ErrPermission},
			wantCode: "FILE007",
		},
		{
			name:     "empty file by pattern",
			err:      errors.New("empty file: no header row"),
			wantCode: "FILE005",
		},
		{
			name:     "pattern is case-insensitive",
			err:      errors.New("MISSING REQUIRED COLUMNS: name"),
			wantCode: "VAL004",
		},
		{
			name:     "config validation",
			err:      errors.Wrap(errors.New("config validation failed:\n  - MRSS_SPLIT_SIZE (0) must be positive"), "invalid flags"),
			wantCode: "CFG001",
		},
		{
			name:     "config parse",
			err:      errors.Wrap(errors.New(`invalid value for MRSS_PRETTY="maybe"`), "config load"),
			wantCode: "CFG001",
		},
		{
			name:     "unknown falls back",
			err:      errors.New("something odd"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.err != nil {
				assert.NotEmpty(t, got.Message)
				assert.NotEmpty(t, got.Action)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t, "", FormatUserError(nil))
	assert.Equal(t,
		"The input file is empty (Code: FILE005). Provide a file with a header row and data rows",
		FormatUserError(errors.New("empty file")))
}
