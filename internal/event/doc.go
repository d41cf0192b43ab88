// Package event defines the note-event record and its line grammar.
//
// One event per line, in the form:
//
//	(channel, timestamp, note)
//
// channel and note are unsigned 8-bit decimals, timestamp is an unsigned
// 64-bit decimal, and the separator is the exact two-byte sequence ", ".
// ParseLine is a pure function: it either yields an Event or a *ParseError
// identifying the failing field, and never touches any I/O.
package event
