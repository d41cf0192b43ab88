package ingest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteplot/internal/event"
)

func TestReadAll_AllValid(t *testing.T) {
	input := "(0, 10, 60)\n(1, 20, 62)\n(2, 30, 64)\n"

	var diag bytes.Buffer
	events, dropped, err := ReadAll(strings.NewReader(input), &diag)

	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Empty(t, diag.String())
	assert.Equal(t, []event.Event{
		{Channel: 0, Timestamp: 10, Note: 60},
		{Channel: 1, Timestamp: 20, Note: 62},
		{Channel: 2, Timestamp: 30, Note: 64},
	}, events)
}

func TestReadAll_DropsBadLinesPreservesOrder(t *testing.T) {
	input := strings.Join([]string{
		"(0, 1, 10)",
		"not an event",
		"(1, 2, 20)",
		"(bad, 3, 30)",
		"(2, 4, 40)",
		"(3, x)",
	}, "\n")

	var diag bytes.Buffer
	events, dropped, err := ReadAll(strings.NewReader(input), &diag)

	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, []event.Event{
		{Channel: 0, Timestamp: 1, Note: 10},
		{Channel: 1, Timestamp: 2, Note: 20},
		{Channel: 2, Timestamp: 4, Note: 40},
	}, events)

	diags := strings.Split(strings.TrimRight(diag.String(), "\n"), "\n")
	require.Len(t, diags, 3)
	assert.Equal(t, `error: bad event "not an event"`, diags[0])
	assert.Equal(t, `error: bad event: malformed channel "bad"`, diags[1])
	assert.Equal(t, `error: bad event: malformed timestamp "x"`, diags[2])
}

func TestReadAll_OversizedBadLineIsJustDropped(t *testing.T) {
	// A garbage line far beyond bufio.Scanner's 64KB token limit must be
	// dropped like any other malformed line, not kill the stream.
	input := "(0, 1, 2)\n" + strings.Repeat("x", 70*1024) + "\n(1, 2, 3)\n"

	var diag bytes.Buffer
	events, dropped, err := ReadAll(strings.NewReader(input), &diag)

	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []event.Event{
		{Channel: 0, Timestamp: 1, Note: 2},
		{Channel: 1, Timestamp: 2, Note: 3},
	}, events)
	assert.Contains(t, diag.String(), "bad event")
}

func TestReadAll_CRLFAndMissingFinalNewline(t *testing.T) {
	input := "(0, 1, 2)\r\n(1, 2, 3)"

	events, dropped, err := ReadAll(strings.NewReader(input), io.Discard)

	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, []event.Event{
		{Channel: 0, Timestamp: 1, Note: 2},
		{Channel: 1, Timestamp: 2, Note: 3},
	}, events)
}

func TestReadAll_BlankLineIsDiagnosed(t *testing.T) {
	var diag bytes.Buffer
	events, dropped, err := ReadAll(strings.NewReader("(0, 1, 2)\n\n(1, 2, 3)\n"), &diag)

	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Len(t, events, 2)
	assert.Contains(t, diag.String(), `bad event ""`)
}

func TestReadAll_EmptyInput(t *testing.T) {
	events, dropped, err := ReadAll(strings.NewReader(""), io.Discard)

	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Empty(t, events)
}

// failingReader yields some valid data and then fails.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReadAll_ReaderErrorSurfaces(t *testing.T) {
	readErr := errors.New("disk on fire")
	r := &failingReader{data: []byte("(0, 1, 2)\n"), err: readErr}

	events, _, err := ReadAll(r, io.Discard)

	require.ErrorIs(t, err, readErr)
	// Events read before the failure are still returned.
	assert.Equal(t, []event.Event{{Channel: 0, Timestamp: 1, Note: 2}}, events)
}
