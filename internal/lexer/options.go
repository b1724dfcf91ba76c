package lexer

import (
	"simpleparser/internal/diag"
	"simpleparser/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// KeepTrivia attaches skipped whitespace and comments to the following token.
	// Without it Leading stays nil.
	KeepTrivia bool
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
