package parser

import (
	"context"
	"errors"

	"simpleparser/internal/ast"
	"simpleparser/internal/diag"
	"simpleparser/internal/lexer"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
	"simpleparser/internal/trace"
)

type Options struct {
	// Reporter receives lexer diagnostics and the ParseError, if any.
	Reporter diag.Reporter
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx        *lexer.Lexer
	file      *source.File
	opts      Options
	lastSpan  source.Span // span последнего съеденного токена
	consumed  int
	lookahead token.Token
}

// Parse parses src as an anonymous file.
func Parse(src string) (*ast.Program, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(src)))
	return newParser(file, Options{}).program()
}

// ParseFile parses a loaded file. The parse is wrapped in a stage span of the
// context tracer and a failure is also sent to opts.Reporter.
func ParseFile(ctx context.Context, file *source.File, opts Options) (*ast.Program, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeStage, "parse", file.DisplayPath(""), trace.ParentID(ctx))

	p := newParser(file, opts)
	prog, err := p.program()

	span.Count("tokens", p.consumed)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.report(opts.Reporter)
		}
		span.End("error")
		return nil, err
	}
	if tracer.Enabled() {
		span.Count("nodes", countNodes(prog))
	}
	span.End("")
	return prog, nil
}

func newParser(file *source.File, opts Options) *Parser {
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file: file,
		opts: opts,
	}
	p.lookahead = p.lx.Next()
	return p
}

// program — StatementList до EOF.
func (p *Parser) program() (*ast.Program, error) {
	body, err := p.statementList(token.EOF)
	if err != nil {
		return nil, err
	}
	// Program покрывает весь файл, включая ведущие и хвостовые пробелы
	return &ast.Program{Body: body, Span: p.file.Span()}, nil
}

func countNodes(n ast.Node) int {
	count := 0
	ast.Inspect(n, func(n ast.Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	return count
}
