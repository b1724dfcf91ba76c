package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"simpleparser/internal/ast"
)

// FormatASTJSON пишет дерево в JSON, по одному узлу на строку при indent == "".
func FormatASTJSON(w io.Writer, prog *ast.Program, indent string) error {
	data, err := ast.Marshal(prog, indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// FormatASTMsgpack encodes the same document as FormatASTJSON in msgpack.
// Map keys are sorted so equal trees give equal bytes.
func FormatASTMsgpack(w io.Writer, prog *ast.Program) error {
	doc, err := ASTDocument(prog)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(doc)
}

// ASTDocument returns the JSON interchange form of prog as plain Go values.
func ASTDocument(prog *ast.Program) (map[string]any, error) {
	data, err := ast.Marshal(prog, "")
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ast document: %w", err)
	}
	return doc, nil
}
