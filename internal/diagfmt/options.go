package diagfmt

import (
	"fmt"
	"path/filepath"

	"simpleparser/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows short paths as is and long absolute paths by basename.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк исходника до и после строки ошибки
	PathMode    PathMode
	BaseDir     string // для PathModeRelative
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

const autoPathLimit = 40

// FormatPath renders the path of f according to mode.
func FormatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := source.AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeRelative:
		if baseDir == "" {
			return f.Path
		}
		if rel, err := source.RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}

// formatSpan renders span as "startLine:startCol-endLine:endCol", or as raw
// byte offsets when fs is nil.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
