// Package token defines lexical token kinds and trivia for simpleparser.
// Invariants:
//   - Token.Span covers the raw lexeme; Text is the lexeme after its transform
//     (string literals lose their quotes, so Text may be shorter than Span).
//   - Whitespace and comments never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
//   - true/false lex as BooleanLiteral and null as NullLiteral, not as keywords.
//   - undefined is a keyword (KwUndefined); the parser treats it as an identifier
//     in expression position.
package token
