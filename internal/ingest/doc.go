// Package ingest materializes an event stream from a line-oriented reader.
//
// Ingestion is eager: the whole input is consumed before anything downstream
// runs, because range normalization needs a global view of the timestamps.
// Malformed lines are reported and dropped, never fatal; reader errors are
// surfaced to the caller instead of being silently conflated with parse
// failures.
package ingest
