package main

import (
	"io"

	"simpleparser/internal/diag"
	"simpleparser/internal/diagfmt"
	"simpleparser/internal/source"
)

// printDiagnostics writes bag to w and reports whether it held errors.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	bag.Sort()
	switch s.diagFormat {
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			Max:              s.cfg.Parse.MaxDiagnostics,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(w, bag, fs, opts); err != nil {
			return bag.HasErrors(), err
		}
	case "short":
		if _, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs, "")+"\n"); err != nil {
			return bag.HasErrors(), err
		}
	default:
		opts := diagfmt.PrettyOpts{
			Color:       s.useColor,
			Context:     2,
			PathMode:    diagfmt.PathModeAuto,
			ShowNotes:   true,
			ShowFixes:   !s.quiet,
			ShowPreview: !s.quiet,
		}
		diagfmt.Pretty(w, bag, fs, opts)
	}
	return bag.HasErrors(), nil
}
