package token

var keywords = map[string]Kind{
	"let":       KwLet,
	"var":       KwVar,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"do":        KwDo,
	"for":       KwFor,
	"function":  KwFunction,
	"return":    KwReturn,
	"undefined": KwUndefined,
	"true":      BooleanLiteral,
	"false":     BooleanLiteral,
	"null":      NullLiteral,
}

// LookupKeyword возвращает тип и bool если это зарезервированное слово.
// Регистр важен: "Let" остаётся идентификатором.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for w := range keywords {
		out = append(out, w)
	}
	return out
}
