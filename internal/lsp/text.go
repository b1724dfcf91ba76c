package lsp

import "unicode/utf8"

// applyChanges applies incremental edits in order; a change without a range
// replaces the whole document.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := clampOffset(offsetForPosition(text, change.Range.Start), 0, len(text))
		end := clampOffset(offsetForPosition(text, change.Range.End), start, len(text))
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func clampOffset(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// offsetForPosition maps a UTF-16 based LSP position to a byte offset.
// Positions past the end of a line snap to the line end.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		nl := indexNewline(text, i)
		if nl < 0 {
			return len(text)
		}
		i = nl + 1
	}
	units := 0
	for i < len(text) && text[i] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

func indexNewline(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] == '\n' {
			return j
		}
	}
	return -1
}
