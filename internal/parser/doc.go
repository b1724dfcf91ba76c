// Package parser builds an ast.Program from source text.
//
// The parser is LL(1) recursive descent: it pulls tokens from the lexer on
// demand, looks at most one token ahead and never backtracks. The first
// syntax error aborts the parse and is returned as a *ParseError; there is no
// recovery and no partial tree.
//
// Grammar, lowest precedence first:
//
//	Program            = StatementList EOF
//	Statement          = Block | ";" | VariableStatement | If | While | DoWhile
//	                   | For | FunctionDeclaration | Return | ExpressionStatement
//	Expression         = Assignment
//	Assignment         = LogicalOr [ AssignOp Assignment ]
//	LogicalOr          = LogicalAnd { "||" LogicalAnd }
//	LogicalAnd         = Equality { "&&" Equality }
//	Equality           = Relational { ("==" | "!=") Relational }
//	Relational         = Additive { ("<" | ">" | "<=" | ">=") Additive }
//	Additive           = Multiplicative { ("+" | "-") Multiplicative }
//	Multiplicative     = Unary { ("*" | "/") Unary }
//	Unary              = ("!" | "+" | "-") Unary | CallMember
//	CallMember         = Primary { "(" Args ")" | "." Identifier | "[" Expression "]" }
//	Primary            = Identifier | "undefined" | "(" Expression ")" | Literal
package parser
