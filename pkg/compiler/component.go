package compiler

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/zx/pkg/syntax"
)

// IslandID returns the stable identifier of an externally rendered
// component: "zx-" followed by the hex MD5 digest of name, a NUL byte and
// path. The separator keeps ("ab", "c") and ("a", "bc") apart.
func IslandID(name, path string) string {
	sum := md5.Sum([]byte(name + "\x00" + path))
	return "zx-" + hex.EncodeToString(sum[:])
}

// emitComponent emits a deferred component invocation:
//
//	zx.Lazy(Card, CardProps{Title: "x"}, zx.Options{Caching: "5s"})
func (t *transpiler) emitComponent(c *Context, n *syntax.Node, tag string, attrs []Attribute, content []*syntax.Node, pre bool) error {
	if r, ok := builtin(attrs, builtinRendering); ok {
		switch mode := r.Directive(); mode {
		case "csr", "csz":
			return t.emitIsland(c, n, tag, mode, attrs, content)
		}
	}

	c.mapped("zx.Lazy("+tag+", "+tag+"Props{", n.Start)

	body := c.Scratch()
	body.Indent()
	for _, a := range attrs {
		if a.IsBuiltin {
			continue
		}
		body.WriteIndent()
		body.mapped(t.fieldName(a.Name)+": ", a.node.Start)
		if err := t.emitValue(body, a); err != nil {
			return err
		}
		body.WriteString(",\n")
	}

	kids := body.Scratch()
	kids.Indent()
	if err := t.emitChildren(kids, content, pre); err != nil {
		return err
	}
	if kids.Len() > 0 {
		body.WriteIndent()
		body.WriteString("Children: zx.Fragment(\n")
		body.Splice(kids)
		body.WriteIndent()
		body.WriteString("),\n")
	}

	if body.Len() > 0 {
		c.WriteString("\n")
		c.Splice(body)
		c.WriteIndent()
	}
	c.WriteString("}")

	var opts []string
	if a, ok := builtin(attrs, builtinCaching); ok {
		v := c.Scratch()
		if err := t.emitValue(v, a); err != nil {
			return err
		}
		opts = append(opts, "Caching: "+string(v.Bytes()))
	}
	if a, ok := builtin(attrs, builtinKey); ok {
		v := c.Scratch()
		if err := t.emitValue(v, a); err != nil {
			return err
		}
		opts = append(opts, "Key: zx.Key("+string(v.Bytes())+")")
	}
	if len(opts) > 0 {
		c.WriteString(", zx.Options{" + strings.Join(opts, ", ") + "}")
	}
	c.WriteString(")")
	return nil
}

// emitIsland emits an externally rendered component. Foreign (.csr) islands
// take their module path from the file's zx.Import declarations, resolved
// against the source directory; Go-native (.csz) islands point at the
// generated file itself.
func (t *transpiler) emitIsland(c *Context, n *syntax.Node, tag, mode string, attrs []Attribute, content []*syntax.Node) error {
	var path string
	switch mode {
	case "csr":
		imp, ok := c.imports[tag]
		if !ok {
			return t.errorf("E006", n.Start, "%s has no zx.Import declaration", tag)
		}
		path = filepath.ToSlash(filepath.Join(filepath.Dir(t.filename), imp))
	default:
		path = filepath.ToSlash(strings.TrimSuffix(t.filename, filepath.Ext(t.filename)) + ".go")
	}

	if len(t.significant(content, false)) > 0 {
		return t.errorf("E007", n.Start, "<%s> has child content", tag)
	}

	id := IslandID(tag, path)
	c.mapped(fmt.Sprintf("zx.Island(zx.IslandRef{ID: %q, Name: %q, Path: %q}, ", id, tag, path), n.Start)

	props := c.Scratch()
	props.Indent()
	for _, a := range attrs {
		if a.IsBuiltin {
			continue
		}
		props.WriteIndent()
		props.mapped(strconv.Quote(a.Name)+": ", a.node.Start)
		if err := t.emitValue(props, a); err != nil {
			return err
		}
		props.WriteString(",\n")
	}

	if props.Len() == 0 {
		c.WriteString("nil)")
		return nil
	}
	c.WriteString("zx.Props{\n")
	c.Splice(props)
	c.WriteIndent()
	c.WriteString("})")
	return nil
}

// fieldName converts an attribute name into an exported Go field name:
// "title" -> "Title", "data-count" -> "DataCount", "onClick" -> "OnClick".
func (t *transpiler) fieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ':' || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(t.caser.String(p))
	}
	return b.String()
}
