package driver

import (
	"context"
	"errors"
	"io"

	"simpleparser/internal/ast"
	"simpleparser/internal/diag"
	"simpleparser/internal/observ"
	"simpleparser/internal/parser"
	"simpleparser/internal/source"
	"simpleparser/internal/trace"
)

// Options are shared by the single-file and directory entry points.
type Options struct {
	MaxDiagnostics int
	// KeepTrivia is honoured by Tokenize only; the parser never looks at trivia.
	KeepTrivia bool
	// Cache, when set, short-circuits parsing of unchanged sources.
	Cache *ParseCache
	// Timer records load/tokenize/parse phases. Ignored by ParseDir.
	Timer *observ.Timer
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil when parsing failed
	Bag     *diag.Bag
	// Err is the *parser.ParseError that stopped the parse, if any.
	Err    error
	Cached bool
}

// Parse loads and parses path. The returned error is only for I/O failures;
// syntax errors land in the result's Err and Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.Load(path) })
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseReader is Parse for a stream such as stdin.
func ParseReader(ctx context.Context, name string, r io.Reader, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.LoadReader(name, r) })
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts), nil
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	phase := opts.Timer.Begin("parse")
	defer func() {
		note := ""
		switch {
		case res.Cached:
			note = "cached"
		case res.Err != nil:
			note = "error"
		}
		opts.Timer.End(phase, note)
	}()

	if prog, ok := opts.Cache.Load(file); ok {
		trace.Mark(trace.FromContext(ctx), trace.ScopeProduction, "cache-hit", file.DisplayPath(""), trace.ParentID(ctx), "")
		res.Program = prog
		res.Cached = true
		return res
	}

	prog, err := parser.ParseFile(ctx, file, parser.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
	})
	if err != nil {
		res.Err = err
		return res
	}
	res.Program = prog
	if err := opts.Cache.Store(file, prog); err != nil {
		// кэш не должен ломать разбор
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID}, "parse cache: "+err.Error()).Emit()
	}
	return res
}

// SyntaxError extracts the parser error from a result error chain.
func SyntaxError(err error) (*parser.ParseError, bool) {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

func loadTimed(t *observ.Timer, load func() (source.FileID, error)) (source.FileID, error) {
	idx := t.Begin("load")
	id, err := load()
	if err != nil {
		t.End(idx, "error")
		return 0, err
	}
	t.End(idx, "")
	return id, nil
}
