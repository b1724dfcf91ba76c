package parser

import (
	"context"
	"testing"

	"simpleparser/internal/source"
	"simpleparser/internal/trace"
)

func TestParseFileTraceSpan(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("ok.js", []byte("let a = f(1);")))
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := ParseFile(ctx, file, Options{}); err != nil {
		t.Fatal(err)
	}

	events := ring.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want begin+end", len(events))
	}
	end := events[1]
	if end.Kind != trace.KindEnd || end.Name != "parse" {
		t.Fatalf("unexpected end event %+v", end)
	}
	// let a = f ( 1 ) ;
	if got, _ := end.Lookup("tokens"); got != "8" {
		t.Errorf("tokens = %q, want 8", got)
	}
	// Program, VariableDeclaration, VariableDeclarator, Identifier, CallExpression, Identifier, NumericLiteral
	if got, _ := end.Lookup("nodes"); got != "7" {
		t.Errorf("nodes = %q, want 7", got)
	}
	if end.File != "ok.js" || end.Scope != trace.ScopeStage {
		t.Errorf("file = %q, scope = %v", end.File, end.Scope)
	}
}

func TestParseFileErrorEndsSpan(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.js", []byte("let;")))
	ring := trace.NewRingTracer(16, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := ParseFile(ctx, file, Options{}); err == nil {
		t.Fatal("expected error")
	}
	events := ring.Events()
	if len(events) != 2 || events[1].Outcome != "error" {
		t.Fatalf("events = %+v", events)
	}
}

func TestParseFileErrorLevelKeepsOnlyFailure(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)

	fs := source.NewFileSet()
	good := fs.Get(fs.AddVirtual("good.js", []byte("a;")))
	bad := fs.Get(fs.AddVirtual("bad.js", []byte("a")))
	if _, err := ParseFile(ctx, good, Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(ctx, bad, Options{}); err == nil {
		t.Fatal("expected error")
	}
	events := ring.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want only the failed end: %+v", len(events), events)
	}
	if ev := events[0]; ev.Kind != trace.KindEnd || ev.File != "bad.js" || ev.Outcome != "error" {
		t.Errorf("event = %+v", ev)
	}
}
