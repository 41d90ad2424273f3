package logx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestLinesWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "debug")
	require.NoError(t, err)

	ln := NewLines(zl)
	ln.WriteLineString("sample seq=1")
	ln.WriteLineBytes([]byte("sample seq=2"))

	out := buf.String()
	require.Contains(t, out, "sample seq=1")
	require.Contains(t, out, "sample seq=2")
	require.Zero(t, ln.Dropped())
}

func TestLinesLevelFiltersInfo(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "warn")
	require.NoError(t, err)

	NewLines(zl).WriteLineString("quiet")
	require.Empty(t, buf.String())
}

func TestLinesRateLimit(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "info")
	require.NoError(t, err)

	ln := NewLines(zl).WithRate(0.001, 2)
	for i := 0; i < 5; i++ {
		ln.WriteLineString("burst")
	}
	require.Equal(t, uint64(3), ln.Dropped())
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("burst")))
}
