package lsp

import (
	"sort"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

type braceEntry struct {
	line int
	skip bool
}

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(snap))
}

// buildFoldingRanges folds functions from their keyword, any other multi-line
// brace pair, and multi-line block comments. Brace matching runs on tokens so
// it still works while the document does not parse.
func buildFoldingRanges(snap *snapshot) []foldingRange {
	file := snap.file
	ranges, skipBraces := functionFoldingRanges(snap)
	stack := make([]braceEntry, 0, 8)
	for _, tok := range snap.tokens {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaBlockComment {
				continue
			}
			start, end := lineForOffset(file, tr.Span.Start), lineForOffset(file, spanLastOffset(tr.Span))
			if start < end {
				ranges = append(ranges, foldingRange{StartLine: start, EndLine: end, Kind: "comment"})
			}
		}
		switch tok.Kind {
		case token.OpenBlock:
			_, skip := skipBraces[tok.Span.Start]
			stack = append(stack, braceEntry{line: lineForOffset(file, tok.Span.Start), skip: skip})
		case token.CloseBlock:
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if open.skip {
				continue
			}
			if endLine := lineForOffset(file, tok.Span.Start); open.line < endLine {
				ranges = append(ranges, foldingRange{StartLine: open.line, EndLine: endLine})
			}
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}

// functionFoldingRanges returns one range per multi-line function and the
// body braces those ranges already cover.
func functionFoldingRanges(snap *snapshot) (ranges []foldingRange, skipBraces map[uint32]struct{}) {
	ranges = make([]foldingRange, 0)
	skipBraces = make(map[uint32]struct{})
	if snap.program == nil {
		return ranges, skipBraces
	}
	ast.Inspect(snap.program, func(n ast.Node) bool {
		fn, ok := n.(*ast.FunctionDeclaration)
		if !ok || fn.Body == nil {
			return true
		}
		startLine := lineForOffset(snap.file, fn.Span.Start)
		endLine := lineForOffset(snap.file, spanLastOffset(fn.Body.Span))
		if startLine < endLine {
			ranges = append(ranges, foldingRange{StartLine: startLine, EndLine: endLine})
			skipBraces[fn.Body.Span.Start] = struct{}{}
		}
		return true
	})
	return ranges, skipBraces
}

func spanLastOffset(span source.Span) uint32 {
	if span.End > span.Start {
		return span.End - 1
	}
	return span.End
}
