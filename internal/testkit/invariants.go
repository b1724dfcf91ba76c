package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) the program span points at sf and stays within its content
// 2) every other node span is non-empty and belongs to sf
// 3) every child span is contained in its parent span
// 4) siblings appear in source order without overlapping
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", prog.Span.File, sf.ID)
	}
	if prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", prog.Span.End, lenContent)
	}
	return checkNode(prog, sf.ID)
}

func checkNode(parent ast.Node, file source.FileID) error {
	var prev source.Span
	for i, child := range ast.Children(parent) {
		sp := child.Pos()
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", child.Kind(), sp)
		}
		if sp.File != file {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", child.Kind(), sp.File, file)
		}
		if !parent.Pos().Contains(sp) {
			return fmt.Errorf("%s span %v is outside %s span %v", child.Kind(), sp, parent.Kind(), parent.Pos())
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("%s span %v overlaps previous sibling %v", child.Kind(), sp, prev)
		}
		prev = sp
		if err := checkNode(child, file); err != nil {
			return err
		}
	}
	return nil
}
