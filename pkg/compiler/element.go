package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vango-dev/zx/pkg/syntax"
	"github.com/vango-dev/zx/pkg/zx"
)

// Attribute is an attribute as written in markup.
type Attribute struct {
	Name        string
	Value       string // Raw value text: string content or expression source
	ValueOffset int
	IsBuiltin   bool

	node  *syntax.Node // attribute node
	value *syntax.Node // value node, nil for bare attributes
}

// Directive returns the value of a builtin attribute with the leading dot
// and surrounding quotes removed: {.raw}, "raw" and {"raw"} all give "raw".
func (a Attribute) Directive() string {
	return strings.TrimPrefix(strings.Trim(strings.TrimSpace(a.Value), `"`), ".")
}

// Builtin attribute names.
const (
	builtinRendering = "rendering"
	builtinEscaping  = "escaping"
	builtinCaching   = "caching"
	builtinKey       = "key"
)

// attributes collects and validates the attributes of an element node.
func (t *transpiler) attributes(n *syntax.Node) ([]Attribute, error) {
	holder := n
	if Classify(n) == KindElement {
		holder = n.ChildByFieldName("open")
	}

	var attrs []Attribute
	for _, child := range holder.Children {
		kind := Classify(child)
		if kind != KindAttribute && kind != KindBuiltinAttribute {
			continue
		}
		a := Attribute{
			Name:      t.tree.Text(child.ChildByFieldName("name")),
			IsBuiltin: kind == KindBuiltinAttribute,
			node:      child,
			value:     child.ChildByFieldName("value"),
		}
		if v := a.value; v != nil {
			if Classify(v) == KindString {
				v = v.Child(0)
			}
			a.Value = t.tree.Text(v)
			a.ValueOffset = v.Start
		}
		if a.IsBuiltin {
			if err := t.checkBuiltin(a); err != nil {
				return nil, err
			}
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (t *transpiler) checkBuiltin(a Attribute) error {
	var allowed []string
	switch a.Name {
	case builtinRendering:
		allowed = []string{"ssr", "csr", "csz"}
	case builtinEscaping:
		allowed = []string{"html", "raw"}
	case builtinCaching, builtinKey:
		if a.value == nil {
			return t.errorf("E005", a.node.Start, "@%s requires a value", a.Name)
		}
		return nil
	default:
		return t.errorf("E004", a.node.Start, "@%s", a.Name)
	}

	if a.value == nil {
		return t.errorf("E005", a.node.Start, "@%s requires a value", a.Name)
	}
	d := a.Directive()
	for _, v := range allowed {
		if d == v {
			return nil
		}
	}
	return t.errorf("E005", a.ValueOffset, "@%s={.%s}", a.Name, d)
}

func builtin(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.IsBuiltin && a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// elementParts returns the tag name node and the content nodes of an
// element or self-closing element.
func elementParts(n *syntax.Node) (name *syntax.Node, content []*syntax.Node) {
	if Classify(n) == KindSelfClosingElement {
		return n.ChildByFieldName("name"), nil
	}
	name = n.ChildByFieldName("open").ChildByFieldName("name")
	for _, c := range n.Children {
		switch Classify(c) {
		case KindStartTag, KindEndTag:
		default:
			content = append(content, c)
		}
	}
	return name, content
}

// isComponentTag reports whether a tag names a Go component: the last
// dot-separated segment starts with an uppercase letter (Card, ui.Button).
func isComponentTag(tag string) bool {
	r, _ := utf8.DecodeRuneInString(tag[strings.LastIndexByte(tag, '.')+1:])
	return unicode.IsUpper(r)
}

func (t *transpiler) emitElement(c *Context, n *syntax.Node, pre bool) error {
	nameNode, content := elementParts(n)
	tag := t.tree.Text(nameNode)

	attrs, err := t.attributes(n)
	if err != nil {
		return err
	}
	if isComponentTag(tag) {
		return t.emitComponent(c, n, tag, attrs, content, pre)
	}
	if !zx.KnownTag(tag) {
		return t.errorf("E003", nameNode.Start, "<%s>", tag)
	}

	esc, _ := builtin(attrs, builtinEscaping)
	raw := esc.Directive() == "raw" || tag == "script" || tag == "style"
	pre = pre || tag == "pre"

	c.mapped(fmt.Sprintf("zx.Element(%q, zx.ElementOptions{", tag), n.Start)

	body := c.Scratch()
	body.Indent()

	items := body.Scratch()
	items.Indent()
	for _, a := range attrs {
		if a.IsBuiltin {
			continue
		}
		items.WriteIndent()
		if err := t.emitAttribute(items, a); err != nil {
			return err
		}
		items.WriteString(",\n")
	}
	if items.Len() > 0 {
		body.WriteIndent()
		body.WriteString("Attributes: []zx.Attribute{\n")
		body.Splice(items)
		body.WriteIndent()
		body.WriteString("},\n")
	}

	kids := body.Scratch()
	kids.Indent()
	if raw {
		t.emitRawContent(kids, n)
	} else if err := t.emitChildren(kids, content, pre); err != nil {
		return err
	}
	if kids.Len() > 0 {
		body.WriteIndent()
		body.WriteString("Children: []zx.Component{\n")
		body.Splice(kids)
		body.WriteIndent()
		body.WriteString("},\n")
	}

	if body.Len() > 0 {
		c.WriteString("\n")
		c.Splice(body)
		c.WriteIndent()
	}
	c.WriteString("})")
	return nil
}

// emitRawContent emits the source between the start and end tags as a
// single unescaped text child.
func (t *transpiler) emitRawContent(c *Context, n *syntax.Node) {
	if Classify(n) != KindElement {
		return
	}
	start := n.ChildByFieldName("open").End
	end := n.ChildByFieldName("close").Start
	if end <= start {
		return
	}
	c.WriteIndent()
	c.mapped("zx.RawText("+strconv.Quote(string(t.tree.Source[start:end]))+")", start)
	c.WriteString(",\n")
}

func (t *transpiler) emitAttribute(c *Context, a Attribute) error {
	c.mapped(fmt.Sprintf("zx.Attr(%q, ", a.Name), a.node.Start)
	if err := t.emitValue(c, a); err != nil {
		return err
	}
	c.WriteString(")")
	return nil
}

// emitValue emits an attribute value as a Go expression: bare attributes
// are true, strings are quoted, expressions are copied.
func (t *transpiler) emitValue(c *Context, a Attribute) error {
	switch Classify(a.value) {
	case KindOther:
		c.WriteString("true")
	case KindString:
		c.mapped(strconv.Quote(a.Value), a.ValueOffset)
	case KindBuiltinIdentifier:
		c.mapped(strconv.Quote(a.Directive()), a.ValueOffset)
	default:
		return t.emitHost(c, a.value, false)
	}
	return nil
}

func (t *transpiler) emitFragment(c *Context, n *syntax.Node, pre bool) error {
	var content []*syntax.Node
	for _, child := range n.Children {
		if Classify(child) != KindEndTag {
			content = append(content, child)
		}
	}

	c.mapped("zx.Fragment(", n.Start)
	kids := c.Scratch()
	kids.Indent()
	if err := t.emitChildren(kids, content, pre); err != nil {
		return err
	}
	if kids.Len() > 0 {
		c.WriteString("\n")
		c.Splice(kids)
		c.WriteIndent()
	}
	c.WriteString(")")
	return nil
}

// emitChildren emits one list item per child. Each child is rendered into a
// scratch context first and dropped when it produced nothing.
func (t *transpiler) emitChildren(c *Context, nodes []*syntax.Node, pre bool) error {
	nodes = t.significant(nodes, pre)
	for i, n := range nodes {
		item := c.Scratch()
		if err := t.emitChild(item, n, pre, i > 0, i < len(nodes)-1); err != nil {
			return err
		}
		if item.Len() == 0 {
			continue
		}
		c.WriteIndent()
		c.Splice(item)
		c.WriteString(",\n")
	}
	return nil
}

// significant drops comments and, outside preformatted content,
// whitespace-only text.
func (t *transpiler) significant(nodes []*syntax.Node, pre bool) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(nodes))
	for _, n := range nodes {
		switch Classify(n) {
		case KindComment:
			continue
		case KindText:
			if !pre && strings.TrimSpace(t.tree.Text(n)) == "" {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func (t *transpiler) emitChild(c *Context, n *syntax.Node, pre, hasPrev, hasNext bool) error {
	switch Classify(n) {
	case KindText:
		t.emitText(c, n, pre, hasPrev, hasNext)
		return nil
	case KindExpressionBlock:
		return t.emitExpressionBlock(c, n, pre)
	default:
		return t.emitMarkup(c, n, pre)
	}
}

// emitText emits a text node. Outside preformatted content the text is
// trimmed, keeping a single space on a side only when the original had
// whitespace there and a sibling follows on that side.
func (t *transpiler) emitText(c *Context, n *syntax.Node, pre, hasPrev, hasNext bool) {
	text := t.tree.Text(n)
	if !pre {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return
		}
		if hasPrev && isSpace(text[0]) {
			trimmed = " " + trimmed
		}
		if hasNext && isSpace(text[len(text)-1]) {
			trimmed += " "
		}
		text = trimmed
	}
	if text == "" {
		return
	}
	c.mapped("zx.Text("+strconv.Quote(text)+")", n.Start)
}

func (t *transpiler) emitExpressionBlock(c *Context, n *syntax.Node, pre bool) error {
	value := n.ChildByFieldName("value")
	kind := Classify(value)
	switch {
	case kind == KindArrayType:
		return t.emitFormat(c, value)
	case kind.IsControlFlow():
		return t.emitControl(c, value, pre)
	default:
		return t.emitExpr(c, value, pre)
	}
}

// emitFormat emits {[expr:format]} as a formatted text node.
func (t *transpiler) emitFormat(c *Context, n *syntax.Node) error {
	format := "v"
	if f := n.ChildByFieldName("format"); f != nil && f.End > f.Start {
		format = t.tree.Text(f)
	}
	if !strings.HasPrefix(format, "%") {
		format = "%" + format
	}

	c.mapped("zx.Textf("+strconv.Quote(format)+", ", n.Start)
	if err := t.emitHost(c, n.ChildByFieldName("value"), false); err != nil {
		return err
	}
	c.WriteString(")")
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
