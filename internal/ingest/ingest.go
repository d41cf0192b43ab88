package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"noteplot/internal/event"
)

// ReadAll consumes r line by line and returns every event that parsed, in
// input order, together with the number of lines dropped.
//
// Lines that fail to parse are written to diag as a diagnostic and skipped;
// a single bad line never aborts ingestion, no matter how long it is. A
// failure to read from r is a different matter: the error is returned
// (along with whatever was ingested before it) so the caller can
// distinguish lost input from rejected input.
func ReadAll(r io.Reader, diag io.Writer) ([]event.Event, int, error) {
	var (
		events  []event.Event
		dropped int
	)

	// bufio.Reader rather than bufio.Scanner: a Scanner refuses tokens
	// over its buffer size, which would turn one oversized garbage line
	// into a fatal read error for the rest of the stream.
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return events, dropped, fmt.Errorf("reading input: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		// Skip only the phantom empty line after a trailing newline;
		// genuine blank lines mid-stream still get diagnosed.
		if line != "" || !eof {
			ev, perr := event.ParseLine(line)
			if perr != nil {
				fmt.Fprintf(diag, "error: %v\n", perr)
				dropped++
			} else {
				events = append(events, ev)
			}
		}

		if eof {
			return events, dropped, nil
		}
	}
}
