// Package diag defines the diagnostic model shared by the lexer, the parser
// and the migration passes.
//
// Diagnostic is the central record: a severity, a numeric Code with a stable
// string ID (LEX/SYN/MIG/IO/CFG), a short message, a primary span and optional
// notes and fixes. Producers emit through a Reporter; BagReporter collects into
// a Bag, which supports sorting and deduplication.
//
// ParseError is the error value handed back to callers when a file could not be
// tokenized or parsed. It carries the path, the offending span and its resolved
// line and column.
//
// Package diag does not render anything. Rendering lives in internal/diagfmt.
package diag
