package driver

import (
	"context"
	"io"

	"simpleparser/internal/diag"
	"simpleparser/internal/lexer"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
	"simpleparser/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns its whole token stream, EOF included.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.Load(path) })
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

// TokenizeReader is Tokenize for a stream such as stdin.
func TokenizeReader(ctx context.Context, name string, r io.Reader, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.LoadReader(name, r) })
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "tokenize", file.DisplayPath(""), trace.ParentID(ctx))
	phase := opts.Timer.Begin("tokenize")

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		KeepTrivia: opts.KeepTrivia,
	})

	// Собираем все токены до EOF включительно
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	opts.Timer.End(phase, "")
	span.Count("tokens", len(tokens))
	span.End("")
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
