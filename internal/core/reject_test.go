package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectSink_AppendsRows(t *testing.T) {
	dir := t.TempDir()
	sink := NewRejectSink(dir)

	require.NoError(t, sink.Reject([]string{"1", "bad\x80", ""}))
	require.NoError(t, sink.Reject([]string{"2"}))

	data, err := os.ReadFile(filepath.Join(dir, RejectFileName))
	require.NoError(t, err)
	assert.Equal(t, "1;bad\x80;\n2\n", string(data))
	assert.Equal(t, 2, sink.Count())
}

func TestRejectSink_NeverTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RejectFileName)
	require.NoError(t, os.WriteFile(path, []byte("earlier;run\n"), 0o644))

	require.NoError(t, NewRejectSink(dir).Reject([]string{"this", "run"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier;run\nthis;run\n", string(data))
}

func TestRejectSink_DefaultsToWorkingDirectory(t *testing.T) {
	sink := NewRejectSink("")
	assert.Equal(t, RejectFileName, sink.Path())
}

func TestRejectSink_MissingDir(t *testing.T) {
	sink := NewRejectSink(filepath.Join(t.TempDir(), "missing"))

	err := sink.Reject([]string{"x"})
	require.Error(t, err)
	assert.Zero(t, sink.Count())
}
