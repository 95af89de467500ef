// Package space models Genie space configuration documents.
//
// A document is a tree rooted at Export: sample questions, data sources
// (tables and metric views), instructions (text, SQL examples, functions,
// join specs), and benchmarks. Multi-line text is stored as an ordered
// sequence of lines, one entry per line; constructors split raw text on
// newlines and callers rejoin with "\n" for display.
//
// Serialization is loss-aware: a nil slice means the field was absent and
// is omitted from JSON, a non-nil empty slice means the field was present
// and empty and serializes as []. Parsing preserves the distinction, so
// documents round-trip byte-for-byte modulo nulls and unknown keys.
//
// The Golden Rule: pkg/space imports ONLY the standard library and
// github.com/google/uuid. Everything else depends on space, not the
// reverse.
package space
