package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is one parsed (channel, timestamp, note) record.
// Channel selects a palette entry, Timestamp positions the event on the
// horizontal axis, Note is the vertical pixel row.
type Event struct {
	Channel   uint8
	Timestamp uint64
	Note      uint8
}

// Field identifies which part of a line failed to parse.
type Field int

const (
	// FieldLine means the line as a whole was rejected (missing the
	// "(...)" wrapper), before any field was examined.
	FieldLine Field = iota
	FieldChannel
	FieldTimestamp
	FieldNote
)

// String returns the field name as it appears in diagnostics.
func (f Field) String() string {
	switch f {
	case FieldChannel:
		return "channel"
	case FieldTimestamp:
		return "timestamp"
	case FieldNote:
		return "note"
	default:
		return "line"
	}
}

// ParseError reports why a line was rejected. Field says what failed,
// Raw carries the offending text (the whole line for FieldLine), and
// Missing is set when the field was absent rather than malformed.
type ParseError struct {
	Field   Field
	Raw     string
	Missing bool
}

func (e *ParseError) Error() string {
	switch {
	case e.Field == FieldLine:
		return fmt.Sprintf("bad event %q", e.Raw)
	case e.Missing:
		return fmt.Sprintf("bad event: missing %s", e.Field)
	default:
		return fmt.Sprintf("bad event: malformed %s %q", e.Field, e.Raw)
	}
}

// ParseLine parses a single "(channel, timestamp, note)" line into an Event.
// channel and note are unsigned 8-bit decimals, timestamp an unsigned 64-bit
// decimal, separated by exactly ", ". Any failure returns a *ParseError.
func ParseLine(line string) (Event, error) {
	if len(line) < 2 || line[0] != '(' || line[len(line)-1] != ')' {
		return Event{}, &ParseError{Field: FieldLine, Raw: line}
	}

	// Strip the wrapper; the last split is non-greedy so the note field
	// takes whatever remains, separators included.
	parts := strings.SplitN(line[1:len(line)-1], ", ", 3)

	channel, err := parseField(parts, 0, FieldChannel, 8)
	if err != nil {
		return Event{}, err
	}
	timestamp, err := parseField(parts, 1, FieldTimestamp, 64)
	if err != nil {
		return Event{}, err
	}
	note, err := parseField(parts, 2, FieldNote, 8)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Channel:   uint8(channel),
		Timestamp: timestamp,
		Note:      uint8(note),
	}, nil
}

// parseField decodes parts[i] as an unsigned decimal of the given bit size.
func parseField(parts []string, i int, field Field, bits int) (uint64, error) {
	if i >= len(parts) {
		return 0, &ParseError{Field: field, Missing: true}
	}
	v, err := strconv.ParseUint(parts[i], 10, bits)
	if err != nil {
		return 0, &ParseError{Field: field, Raw: parts[i]}
	}
	return v, nil
}
