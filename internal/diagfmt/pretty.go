package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"simpleparser/internal/diag"
	"simpleparser/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	add, del        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			FormatPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, opts.Context, pal)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				ns, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
					FormatPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, note.Msg)
			}
		}
		if opts.ShowFixes {
			for i, fix := range d.Fixes {
				fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
				for _, edit := range fix.Edits {
					fmt.Fprintf(w, "    edit %s apply=%q\n", formatSpan(edit.Span, fs), edit.NewText)
					if opts.ShowPreview {
						writePreview(w, fs, edit, pal)
					}
				}
			}
		}
	}
}

// writeSnippet печатает строку с ошибкой, context строк вокруг и подчёркивание.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, pal palette) {
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	total := lineCount(file)
	if start.Line > total {
		return
	}

	first := start.Line
	last := start.Line
	if context > 0 {
		c := uint32(context) // #nosec G115 -- context > 0
		first = firstContextLine(start.Line, c)
		last = min(total, start.Line+c)
	}
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(file.GetLine(ln))
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", width, ln), pal.gutter.Sprint("|"), text)
		if ln != start.Line {
			continue
		}
		raw := file.GetLine(ln)
		col := min(int(start.Col)-1, len(raw))
		endCol := len(raw)
		if end.Line == start.Line {
			endCol = min(max(int(end.Col)-1, col), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:col]))
		span := max(runewidth.StringWidth(expandTabs(raw[col:endCol])), 1)
		marker := "^" + strings.Repeat("~", span-1)
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", width), pal.gutter.Sprint("|"),
			strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}
}

// firstContextLine returns line-c clamped at 1 without underflow.
func firstContextLine(line, c uint32) uint32 {
	if line <= c {
		return 1
	}
	return line - c
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func writePreview(w io.Writer, fs *source.FileSet, edit diag.FixEdit, pal palette) {
	preview, err := buildFixEditPreview(fs, edit)
	if err != nil {
		return
	}
	fmt.Fprintln(w, "      preview:")
	for _, line := range preview.before {
		fmt.Fprintf(w, "        %s\n", pal.del.Sprint("- "+line))
	}
	for _, line := range preview.after {
		fmt.Fprintf(w, "        %s\n", pal.add.Sprint("+ "+line))
	}
}
