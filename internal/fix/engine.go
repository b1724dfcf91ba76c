// Package fix applies the quick fixes attached to parse diagnostics.
package fix

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"simpleparser/internal/diag"
	"simpleparser/internal/parser"
	"simpleparser/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// DefaultMaxRounds bounds the parse/fix loop of Run.
const DefaultMaxRounds = 64

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title   string
	Code    diag.Code
	Message string
	// Offset is where the first edit landed, in the source of that round.
	Offset uint32
}

// Result is the outcome of Run.
type Result struct {
	Source  []byte
	Applied []AppliedFix
	// Remaining holds the diagnostics of the last parse; empty when the fixed
	// source parses cleanly.
	Remaining []diag.Diagnostic
	// FileSet owns the last parsed version, for rendering Remaining.
	FileSet *source.FileSet
}

// Clean reports whether the fixed source parses without errors.
func (r *Result) Clean() bool {
	for _, d := range r.Remaining {
		if d.Severity >= diag.SevError {
			return false
		}
	}
	return true
}

// Run parses content, applies the first fix of the failing diagnostic and
// parses again, until the source parses, no fix is offered, or maxRounds
// (DefaultMaxRounds when <= 0) is reached. ErrNoFixes is returned alongside
// the result when nothing could be applied.
func Run(ctx context.Context, name string, content []byte, maxRounds int) (*Result, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	res := &Result{Source: append([]byte(nil), content...)}
	for iter := 0; iter < maxRounds; iter++ {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual(name, res.Source))
		bag := diag.NewBag(0)
		_, err := parser.ParseFile(ctx, file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		res.FileSet = fs
		res.Remaining = bag.Items()
		if err != nil && ctx.Err() != nil {
			return res, ctx.Err()
		}
		if err == nil {
			break
		}

		d, f, ok := firstFix(res.Remaining)
		if !ok {
			break
		}
		next, err := ApplyEdits(res.Source, f.Edits)
		if err != nil {
			return res, fmt.Errorf("fix %q: %w", f.Title, err)
		}
		res.Source = next
		res.Applied = append(res.Applied, AppliedFix{
			Title:   f.Title,
			Code:    d.Code,
			Message: d.Message,
			Offset:  f.Edits[0].Span.Start,
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	return res, nil
}

func firstFix(items []diag.Diagnostic) (diag.Diagnostic, diag.Fix, bool) {
	for _, d := range items {
		for _, f := range d.Fixes {
			if len(f.Edits) > 0 {
				return d, f, true
			}
		}
	}
	return diag.Diagnostic{}, diag.Fix{}, false
}

// ApplyEdits returns content with every edit applied. Edit spans refer to the
// original content; overlapping edits are rejected.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	// с конца к началу, чтобы смещения ещё не применённых правок не сдвигались;
	// вставки в одной точке идут в обратном порядке, тогда в тексте порядок исходный
	sort.Slice(order, func(i, j int) bool {
		a, b := edits[order[i]].Span, edits[order[j]].Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return order[i] > order[j]
	})
	sorted := make([]diag.FixEdit, len(order))
	for i, idx := range order {
		sorted[i] = edits[idx]
	}
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return nil, fmt.Errorf("edits at %d and %d overlap", sorted[i].Span.Start, sorted[i-1].Span.Start)
		}
	}

	working := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		if start < 0 || end < start || end > len(working) {
			return nil, fmt.Errorf("edit span %d-%d out of range", start, end)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)
	}
	return working, nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
