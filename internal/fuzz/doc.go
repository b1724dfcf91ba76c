// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). Its goal is to smoke test robustness and guard
// against panics, hangs, or broken span invariants on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
