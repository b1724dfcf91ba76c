// Package ast holds the syntax tree produced by internal/parser.
//
// Every node kind is its own struct and carries only its own fields. The
// closed set is discriminated by NodeKind; Statement and Expression are
// marker interfaces so the compiler rejects a statement in expression
// position. Nodes form a strict tree and are fully populated when built.
//
// Nodes encode to JSON as {"type": "<NodeKind>", ...fields} with nullable
// fields written as explicit null. Spans are kept in memory only.
package ast
