package diag

import (
	"fmt"
	"strings"

	"simpleparser/internal/source"
)

// FormatShort renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>", in the given order.
// Spans pointing outside fs are rendered without a location.
func FormatShort(diags []Diagnostic, fs *source.FileSet, baseDir string) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s ", d.Severity.Label(), d.Code.ID())
		if fs != nil && int(d.Primary.File) < fs.Len() {
			f := fs.Get(d.Primary.File)
			start, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(&b, "%s:%d:%d ", f.DisplayPath(baseDir), start.Line, start.Col)
		}
		b.WriteString(sanitizeMessage(d.Message))
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
