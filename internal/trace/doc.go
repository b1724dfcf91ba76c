// Package trace is the structured logging layer of simpleparser.
//
// A run is recorded as spans and marks. The CLI command or directory walk is
// a ScopeCommand span, tokenizing and parsing a file are ScopeStage spans,
// each file of a directory walk is a ScopeFile span, and cache lookups are
// ScopeProduction marks. Spans carry the file they work on and counters such
// as tokens=12 nodes=7 on their end event.
//
// Levels:
//
//   - off: nothing
//   - error: end events of failed commands, stages and files
//   - phase: command and stage spans
//   - detail: adds file spans
//   - debug: everything
//
// Usage:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", path, trace.ParentID(ctx))
//	defer span.End("")
//
// LineTracer writes text or NDJSON lines as events arrive; RingTracer keeps
// the last events in memory for the CLI to dump when a command fails.
package trace
