// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string ID
// (LEX1001, SYN2001, IO4001), a short Message, the Primary span and optional
// Notes and Fixes. Producers emit through a Reporter so they never depend on
// storage; BagReporter collects into a Bag which supports limits, sorting and
// deduplication.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
