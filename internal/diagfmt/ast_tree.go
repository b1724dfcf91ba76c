package diagfmt

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTPretty prints prog as an indented tree, one node per line with
// its field name, label and span.
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	root := buildTreeNode("", prog, fs)
	if fs != nil {
		root.label = fmt.Sprintf("%s %s", FormatPath(fs.Get(prog.Span.File), PathModeAuto, ""), root.label)
	}
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	return writeIndented(w, root.children, "")
}

func writeIndented(w io.Writer, nodes []*treeNode, prefix string) error {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label); err != nil {
			return err
		}
		if err := writeIndented(w, n.children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTGraph draws prog top-down in ASCII art. Spans are omitted to keep
// the picture narrow.
func FormatASTGraph(w io.Writer, prog *ast.Program) error {
	block := renderTree(buildTreeNode("", prog, nil))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	name string
	node ast.Node // nil для отсутствующих необязательных полей
}

// buildTreeNode labels n and recurses into its fields. Absent optional
// fields become "name: null" leaves.
func buildTreeNode(name string, n ast.Node, fs *source.FileSet) *treeNode {
	label := nodeLabel(n)
	if fs != nil {
		label = fmt.Sprintf("%s (span: %s)", label, formatSpan(n.Pos(), fs))
	}
	if name != "" {
		label = name + ": " + label
	}
	node := &treeNode{label: label}
	for _, f := range nodeFields(n) {
		if f.node == nil {
			node.children = append(node.children, &treeNode{label: f.name + ": null"})
			continue
		}
		node.children = append(node.children, buildTreeNode(f.name, f.node, fs))
	}
	return node
}

func nodeLabel(n ast.Node) string {
	kind := n.Kind().String()
	switch n := n.(type) {
	case *ast.NumericLiteral:
		if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
			return kind + " " + strconv.FormatFloat(n.Value, 'g', -1, 64)
		}
		return kind + " " + strconv.FormatFloat(n.Value, 'f', -1, 64)
	case *ast.StringLiteral:
		return kind + " " + strconv.Quote(n.Value)
	case *ast.BooleanLiteral:
		return kind + " " + strconv.FormatBool(n.Value)
	case *ast.Identifier:
		return kind + " " + n.Name
	case *ast.BinaryExpression:
		return kind + " " + n.Operator
	case *ast.UnaryExpression:
		return kind + " " + n.Operator
	case *ast.AssignmentExpression:
		return kind + " " + n.Operator
	case *ast.MemberExpression:
		if n.Computed {
			return kind + " [computed]"
		}
	case *ast.VariableDeclaration:
		return kind + " " + n.DeclKind
	}
	return kind
}

func nodeFields(n ast.Node) []field {
	switch n := n.(type) {
	case *ast.Program:
		return stmtFields("body", n.Body)
	case *ast.BlockStatement:
		return stmtFields("body", n.Body)
	case *ast.BinaryExpression:
		return []field{{"left", n.Left}, {"right", n.Right}}
	case *ast.AssignmentExpression:
		return []field{{"left", n.Left}, {"right", n.Right}}
	case *ast.UnaryExpression:
		return []field{{"argument", n.Argument}}
	case *ast.MemberExpression:
		return []field{{"object", n.Object}, {"property", n.Property}}
	case *ast.CallExpression:
		out := []field{{"callee", n.Callee}}
		for i, a := range n.Arguments {
			out = append(out, field{fmt.Sprintf("arguments[%d]", i), a})
		}
		return out
	case *ast.FunctionDeclaration:
		out := []field{{"id", n.ID}}
		for i, p := range n.Params {
			out = append(out, field{fmt.Sprintf("params[%d]", i), p})
		}
		return append(out, field{"body", n.Body})
	case *ast.VariableDeclaration:
		out := make([]field, 0, len(n.Declarations))
		for i, d := range n.Declarations {
			out = append(out, field{fmt.Sprintf("declarations[%d]", i), d})
		}
		return out
	case *ast.VariableDeclarator:
		return []field{{"id", n.ID}, {"init", exprOrNil(n.Init)}}
	case *ast.ExpressionStatement:
		return []field{{"expression", n.Expression}}
	case *ast.IfStatement:
		return []field{{"test", n.Test}, {"consequent", n.Consequent}, {"alternate", stmtOrNil(n.Alternate)}}
	case *ast.WhileStatement:
		return []field{{"test", n.Test}, {"body", n.Body}}
	case *ast.DoWhileStatement:
		return []field{{"body", n.Body}, {"test", n.Test}}
	case *ast.ForStatement:
		var init ast.Node
		if n.Init != nil {
			init = n.Init
		}
		return []field{{"init", init}, {"test", exprOrNil(n.Test)}, {"update", exprOrNil(n.Update)}, {"body", n.Body}}
	case *ast.ReturnStatement:
		return []field{{"argument", exprOrNil(n.Argument)}}
	}
	return nil
}

func stmtFields(name string, list []ast.Statement) []field {
	out := make([]field, 0, len(list))
	for i, s := range list {
		out = append(out, field{fmt.Sprintf("%s[%d]", name, i), s})
	}
	return out
}

// exprOrNil и stmtOrNil не дают nil-интерфейсу стать ненулевым ast.Node.
func exprOrNil(e ast.Expression) ast.Node {
	if e == nil {
		return nil
	}
	return e
}

func stmtOrNil(s ast.Statement) ast.Node {
	if s == nil {
		return nil
	}
	return s
}

// renderTree converts a treeNode into a treeBlock containing an ASCII-art
// representation. root is the column of the node's vertical connector.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := runewidth.StringWidth(label)

	if len(node.children) == 0 {
		return treeBlock{lines: []string{label}, width: labelWidth, root: labelWidth / 2}
	}

	const spacing = 3

	childBlocks := make([]treeBlock, len(node.children))
	positions := make([]int, len(node.children))
	maxChildHeight := 0
	totalWidth := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		maxChildHeight = max(maxChildHeight, len(childBlocks[i].lines))
		positions[i] = totalWidth + childBlocks[i].root
		totalWidth += childBlocks[i].width
		if i != len(node.children)-1 {
			totalWidth += spacing
		}
	}

	// центр над детьми; если подпись шире, сдвигаем детей вправо
	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	shift := childrenCenter - labelWidth/2
	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	}
	rootPos := shift + labelWidth/2
	width := max(totalWidth, shift+labelWidth)

	rootLine := padRight(strings.Repeat(" ", shift)+label, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		}
	}

	lines := make([]string, 0, 2+maxChildHeight)
	lines = append(lines, rootLine, string(connector))
	for row := 0; row < maxChildHeight; row++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childPrefix))
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(padRight(line, block.width))
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		lines = append(lines, padRight(sb.String(), width))
	}

	return treeBlock{lines: lines, width: width, root: rootPos}
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
