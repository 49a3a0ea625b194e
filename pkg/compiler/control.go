package compiler

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/vango-dev/zx/pkg/syntax"
)

// Control-flow forms are emitted as immediately invoked closures returning a
// zx.Component, so they can appear anywhere an expression can. Loops take a
// fresh block index for their local names because they may nest.

func (t *transpiler) emitControl(c *Context, n *syntax.Node, pre bool) error {
	switch Classify(n) {
	case KindIfExpression, KindIfBlock:
		return t.emitIf(c, n, pre)
	case KindForExpression, KindForBlock:
		return t.emitFor(c, n, pre)
	case KindWhileExpression, KindWhileBlock:
		return t.emitWhile(c, n, pre)
	case KindSwitchExpression, KindSwitchBlock:
		return t.emitSwitch(c, n, pre)
	default:
		return t.errorf("E001", n.Start, "expected control flow, found %s", n.Kind())
	}
}

// emitIf:
//
//	func() zx.Component {
//	    if (cond) {
//	        return <consequence>
//	    }
//	    return <alternative, or zx.Fragment()>
//	}()
func (t *transpiler) emitIf(c *Context, n *syntax.Node, pre bool) error {
	c.mapped("func() zx.Component {\n", n.Start)
	c.Indent()

	c.WriteIndent()
	c.WriteString("if (")
	if err := t.emitHost(c, n.ChildByFieldName("condition"), false); err != nil {
		return err
	}
	c.WriteString(") {\n")
	c.Indent()
	if err := t.emitReturn(c, n.ChildByFieldName("consequence"), pre); err != nil {
		return err
	}
	c.Dedent()
	c.WriteIndent()
	c.WriteString("}\n")

	if alt := n.ChildByFieldName("alternative"); alt != nil {
		if err := t.emitReturn(c, alt, pre); err != nil {
			return err
		}
	} else {
		c.WriteIndent()
		c.WriteString("return zx.Fragment()\n")
	}

	c.Dedent()
	c.WriteIndent()
	c.WriteString("}()")
	return nil
}

// emitFor:
//
//	func() zx.Component {
//	    _zx_src0 := (iterable)
//	    _zx_items0 := make([]zx.Component, len(_zx_src0))
//	    for _zx_idx0, item := range _zx_src0 {
//	        _zx_items0[_zx_idx0] = <body>
//	    }
//	    return zx.Fragment(_zx_items0...)
//	}()
func (t *transpiler) emitFor(c *Context, n *syntax.Node, pre bool) error {
	idx := c.NextBlockIndex()
	src := fmt.Sprintf("_zx_src%d", idx)
	items := fmt.Sprintf("_zx_items%d", idx)
	index := fmt.Sprintf("_zx_idx%d", idx)

	body := n.ChildByFieldName("body")
	payload := n.ChildByFieldName("payload")
	item := t.tree.Text(payload.Child(0))
	if p := payload.Child(1); p != nil && t.tree.Text(p) != "_" {
		index = t.tree.Text(p)
	}
	if !t.usesIdent(body, item) {
		item = "_"
	}

	c.mapped("func() zx.Component {\n", n.Start)
	c.Indent()

	c.WriteIndent()
	c.WriteString(src + " := (")
	if err := t.emitHost(c, n.ChildByFieldName("iterable"), false); err != nil {
		return err
	}
	c.WriteString(")\n")
	c.WriteIndent()
	fmt.Fprintf(c, "%s := make([]zx.Component, len(%s))\n", items, src)
	c.WriteIndent()
	c.mapped(fmt.Sprintf("for %s, %s := range %s {\n", index, item, src), payload.Start)
	c.Indent()
	c.WriteIndent()
	fmt.Fprintf(c, "%s[%s] = ", items, index)
	if err := t.emitBranch(c, body, pre); err != nil {
		return err
	}
	c.WriteString("\n")
	c.Dedent()
	c.WriteIndent()
	c.WriteString("}\n")
	c.WriteIndent()
	fmt.Fprintf(c, "return zx.Fragment(%s...)\n", items)

	c.Dedent()
	c.WriteIndent()
	c.WriteString("}()")
	return nil
}

// emitWhile:
//
//	func() zx.Component {
//	    var _zx_items0 []zx.Component
//	    for ; (cond); continuation {
//	        _zx_items0 = append(_zx_items0, <body>)
//	    }
//	    return zx.Fragment(_zx_items0...)
//	}()
func (t *transpiler) emitWhile(c *Context, n *syntax.Node, pre bool) error {
	items := fmt.Sprintf("_zx_items%d", c.NextBlockIndex())

	c.mapped("func() zx.Component {\n", n.Start)
	c.Indent()

	c.WriteIndent()
	fmt.Fprintf(c, "var %s []zx.Component\n", items)
	c.WriteIndent()
	cont := n.ChildByFieldName("continuation")
	if cont != nil {
		c.WriteString("for ; (")
	} else {
		c.WriteString("for (")
	}
	if err := t.emitHost(c, n.ChildByFieldName("condition"), false); err != nil {
		return err
	}
	c.WriteString(")")
	if cont != nil {
		c.WriteString("; ")
		if err := t.emitHost(c, cont, false); err != nil {
			return err
		}
	}
	c.WriteString(" {\n")
	c.Indent()
	c.WriteIndent()
	fmt.Fprintf(c, "%s = append(%s, ", items, items)
	if err := t.emitBranch(c, n.ChildByFieldName("body"), pre); err != nil {
		return err
	}
	c.WriteString(")\n")
	c.Dedent()
	c.WriteIndent()
	c.WriteString("}\n")
	c.WriteIndent()
	fmt.Fprintf(c, "return zx.Fragment(%s...)\n", items)

	c.Dedent()
	c.WriteIndent()
	c.WriteString("}()")
	return nil
}

// emitSwitch:
//
//	func() zx.Component {
//	    switch (value) {
//	    case pattern:
//	        return <value>
//	    default:
//	        return <value>
//	    }
//	    return zx.Fragment()
//	}()
//
// The trailing fallback is only emitted when there is no default case.
// Patterns written as "else" or "_" become the default case.
func (t *transpiler) emitSwitch(c *Context, n *syntax.Node, pre bool) error {
	c.mapped("func() zx.Component {\n", n.Start)
	c.Indent()

	c.WriteIndent()
	c.WriteString("switch (")
	if err := t.emitHost(c, n.ChildByFieldName("value"), false); err != nil {
		return err
	}
	c.WriteString(") {\n")

	hasDefault := false
	for _, sc := range n.Children {
		if Classify(sc) != KindSwitchCase {
			continue
		}
		pattern := sc.ChildByFieldName("pattern")
		c.WriteIndent()
		if p := strings.TrimSpace(t.tree.Text(pattern)); p == "else" || p == "_" {
			hasDefault = true
			c.mapped("default:\n", pattern.Start)
		} else {
			c.WriteString("case ")
			if err := t.emitHost(c, pattern, false); err != nil {
				return err
			}
			c.WriteString(":\n")
		}
		c.Indent()
		if err := t.emitReturn(c, sc.ChildByFieldName("value"), pre); err != nil {
			return err
		}
		c.Dedent()
	}

	c.WriteIndent()
	c.WriteString("}\n")
	if !hasDefault {
		c.WriteIndent()
		c.WriteString("return zx.Fragment()\n")
	}

	c.Dedent()
	c.WriteIndent()
	c.WriteString("}()")
	return nil
}

// emitReturn writes an indented "return <branch>" line.
func (t *transpiler) emitReturn(c *Context, n *syntax.Node, pre bool) error {
	c.WriteIndent()
	c.WriteString("return ")
	if err := t.emitBranch(c, n, pre); err != nil {
		return err
	}
	c.WriteString("\n")
	return nil
}

// emitBranch emits the value of a control-flow branch: markup, a nested
// control-flow form, a statement block, or a bare expression.
func (t *transpiler) emitBranch(c *Context, n *syntax.Node, pre bool) error {
	kind := Classify(n)
	switch {
	case kind.IsMarkup():
		return t.emitMarkup(c, n, pre)
	case kind.IsControlFlow():
		return t.emitControl(c, n, pre)
	case kind == KindBlock:
		c.mapped("func() zx.Component {\n", n.Start)
		c.Indent()
		c.WriteIndent()
		if err := t.emitHost(c, n, false); err != nil {
			return err
		}
		c.WriteString("\n")
		c.Dedent()
		c.WriteIndent()
		c.WriteString("}()")
		return nil
	default:
		return t.emitExpr(c, n, pre)
	}
}

// usesIdent reports whether name is referenced from Go code inside n.
// Markup text, attribute strings and comments do not count, and neither
// does a nested loop body whose payload rebinds name.
func (t *transpiler) usesIdent(n *syntax.Node, name string) bool {
	if name == "" || name == "_" {
		return false
	}
	found := false
	syntax.Walk(n, func(m *syntax.Node) bool {
		if found {
			return false
		}
		switch Classify(m) {
		case KindForExpression, KindForBlock:
			if t.rebinds(m.ChildByFieldName("payload"), name) {
				found = t.usesIdent(m.ChildByFieldName("iterable"), name)
				return false
			}
		case KindHostCode:
			found = hostUsesIdent(t.tree.Source[m.Start:m.End], name)
			return false
		}
		return true
	})
	return found
}

func (t *transpiler) rebinds(payload *syntax.Node, name string) bool {
	if payload == nil {
		return false
	}
	for _, id := range payload.Children {
		if t.tree.Text(id) == name {
			return true
		}
	}
	return false
}

// hostUsesIdent scans a fragment of Go for name as an identifier. Field
// selectors such as v.name are not references to name.
func hostUsesIdent(src []byte, name string) bool {
	var s scanner.Scanner
	file := token.NewFileSet().AddFile("", -1, len(src))
	s.Init(file, src, func(token.Position, string) {}, 0)
	prev := token.ILLEGAL
	for {
		_, tok, lit := s.Scan()
		switch {
		case tok == token.EOF:
			return false
		case tok == token.IDENT && lit == name && prev != token.PERIOD:
			return true
		}
		prev = tok
	}
}
