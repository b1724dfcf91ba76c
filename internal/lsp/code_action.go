package lsp

import "simpleparser/internal/source"

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	return s.sendResponse(msg.ID, buildCodeActions(snap, params.Range))
}

// buildCodeActions turns the fixes of diagnostics touching rng into quick fixes.
func buildCodeActions(snap *snapshot, rng lspRange) []codeAction {
	want := spanForRange(snap.file, rng)
	actions := []codeAction{}
	for _, d := range snap.diags {
		if len(d.Fixes) == 0 || !touches(d.Primary, want) {
			continue
		}
		for i, f := range d.Fixes {
			edits := make([]textEdit, 0, len(f.Edits))
			for _, e := range f.Edits {
				edits = append(edits, textEdit{Range: rangeForSpan(snap.file, e.Span), NewText: e.NewText})
			}
			actions = append(actions, codeAction{
				Title:       f.Title,
				Kind:        "quickfix",
				Diagnostics: []lspDiagnostic{snap.toLSP(d)},
				IsPreferred: i == 0,
				Edit:        workspaceEdit{Changes: map[string][]textEdit{snap.uri: edits}},
			})
		}
	}
	return actions
}

// touches reports whether two spans overlap or meet; empty spans count.
func touches(a, b source.Span) bool {
	return a.Start <= b.End && b.Start <= a.End
}
