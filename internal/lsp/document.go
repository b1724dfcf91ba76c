package lsp

import (
	"context"

	"simpleparser/internal/ast"
	"simpleparser/internal/diag"
	"simpleparser/internal/lexer"
	"simpleparser/internal/parser"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

// document — открытый в редакторе текст
type document struct {
	uri     string
	version int
	text    string
	rev     uint64 // растёт на каждое изменение текста
}

// snapshot is the analysis of one document revision. Program is nil when the
// text does not parse; Tokens are always available.
type snapshot struct {
	uri      string
	version  int
	rev      uint64
	fs       *source.FileSet
	file     *source.File
	tokens   []token.Token
	program  *ast.Program
	parseErr error
	diags    []diag.Diagnostic
}

// analyzeDocument lexes and parses text as-is, so offsets match the editor
// buffer byte for byte.
func analyzeDocument(ctx context.Context, doc document, maxDiagnostics int) *snapshot {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(displayName(doc.uri), []byte(doc.text)))

	bag := diag.NewBag(maxDiagnostics)
	prog, err := parser.ParseFile(ctx, file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	lx := lexer.New(file, lexer.Options{KeepTrivia: true})
	tokens := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &snapshot{
		uri:      doc.uri,
		version:  doc.version,
		rev:      doc.rev,
		fs:       fs,
		file:     file,
		tokens:   tokens,
		program:  prog,
		parseErr: err,
		diags:    bag.Items(),
	}
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

func (snap *snapshot) lspDiagnostics() []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(snap.diags))
	for _, d := range snap.diags {
		out = append(out, snap.toLSP(d))
	}
	return out
}

func (snap *snapshot) toLSP(d diag.Diagnostic) lspDiagnostic {
	return lspDiagnostic{
		Range:    rangeForSpan(snap.file, d.Primary),
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   "simpleparser",
		Message:  d.Message,
	}
}

// nodeAt returns the innermost node whose span contains offset, with the
// chain of its ancestors (outermost first).
func (snap *snapshot) nodeAt(offset uint32) (ast.Node, []ast.Node) {
	if snap.program == nil {
		return nil, nil
	}
	var path []ast.Node
	var cur ast.Node = snap.program
	for cur != nil {
		var next ast.Node
		for _, child := range ast.Children(cur) {
			if containsOffset(child, offset) {
				next = child
				break
			}
		}
		if next == nil {
			return cur, path
		}
		path = append(path, cur)
		cur = next
	}
	return nil, nil
}

// containsOffset treats spans as half-open, except that a cursor placed right
// after an identifier or literal still hits it: editors report the position
// after the last typed character.
func containsOffset(n ast.Node, offset uint32) bool {
	sp := n.Pos()
	if offset >= sp.Start && offset < sp.End {
		return true
	}
	if offset != sp.End {
		return false
	}
	switch n.Kind() {
	case ast.NodeIdentifier, ast.NodeNumericLiteral, ast.NodeStringLiteral, ast.NodeBooleanLiteral, ast.NodeNullLiteral:
		return true
	}
	return false
}
