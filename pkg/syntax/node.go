package syntax

import (
	"fmt"
	"sort"
)

// Node types produced by the parser.
const (
	TypeSourceFile          = "source_file"
	TypeHostCode            = "host_code"
	TypeComment             = "comment"
	TypeZxBlock             = "zx_block"
	TypeElement             = "element"
	TypeSelfClosingElement  = "self_closing_element"
	TypeFragment            = "fragment"
	TypeStartTag            = "start_tag"
	TypeEndTag              = "end_tag"
	TypeTagName             = "tag_name"
	TypeAttribute           = "attribute"
	TypeBuiltinAttribute    = "builtin_attribute"
	TypeAttributeName       = "attribute_name"
	TypeString              = "string"
	TypeStringContent       = "string_content"
	TypeBuiltinIdentifier   = "builtin_identifier"
	TypeExpressionBlock     = "expression_block"
	TypeExpression          = "expression"
	TypeArrayType           = "array_type"
	TypeText                = "text"
	TypeIfExpression        = "if_expression"
	TypeIfBlock             = "if_block"
	TypeForExpression       = "for_expression"
	TypeForBlock            = "for_block"
	TypeWhileExpression     = "while_expression"
	TypeWhileBlock          = "while_block"
	TypeSwitchExpression    = "switch_expression"
	TypeSwitchBlock         = "switch_block"
	TypeSwitchCase          = "switch_case"
	TypePayload             = "payload"
	TypeIdentifier          = "identifier"
	TypeAssignment          = "assignment_expression"
	TypeBlock               = "block"
	TypeVariableDeclaration = "variable_declaration"
	TypeBuiltinFunction     = "builtin_function"
	TypeArguments           = "arguments"
)

// Node is a concrete syntax tree node spanning Source[Start:End].
type Node struct {
	Type     string
	Start    int
	End      int
	Children []*Node

	fields map[string]*Node
}

// Kind returns the grammar symbol of the node.
func (n *Node) Kind() string { return n.Type }

// StartByte returns the byte offset where the node begins.
func (n *Node) StartByte() int { return n.Start }

// EndByte returns the byte offset just past the node.
func (n *Node) EndByte() int { return n.End }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.Children) }

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildByFieldName returns the child stored under a field name, or nil.
func (n *Node) ChildByFieldName(name string) *Node {
	if n == nil {
		return nil
	}
	return n.fields[name]
}

// String returns a compact description for debugging.
func (n *Node) String() string {
	return fmt.Sprintf("%s[%d:%d]", n.Type, n.Start, n.End)
}

func (n *Node) add(field string, child *Node) {
	n.Children = append(n.Children, child)
	if field != "" {
		if n.fields == nil {
			n.fields = make(map[string]*Node)
		}
		n.fields[field] = child
	}
}

// Walk calls fn for n and every descendant in source order. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Position is a location in a source file. Line and Column are 1-based;
// Column counts bytes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// String returns "file:line:col".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Tree is a parsed source file.
type Tree struct {
	Filename string
	Source   []byte
	Root     *Node

	lines []int // offsets of line starts
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return string(t.Source[n.Start:n.End])
}

// LineCol returns the 0-based line and byte column of an offset.
func (t *Tree) LineCol(offset int) (line, col int) {
	line = sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return line, offset - t.lines[line]
}

// Position returns the 1-based position of an offset.
func (t *Tree) Position(offset int) Position {
	line, col := t.LineCol(offset)
	return Position{Filename: t.Filename, Offset: offset, Line: line + 1, Column: col + 1}
}

func lineStarts(src []byte) []int {
	lines := []int{0}
	for i, c := range src {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}
