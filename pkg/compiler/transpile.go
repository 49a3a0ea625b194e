package compiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	zxerrors "github.com/vango-dev/zx/internal/errors"
	"github.com/vango-dev/zx/pkg/sourcemap"
	"github.com/vango-dev/zx/pkg/syntax"
)

// Transpile compiles a .zx source file into Go source.
//
// Host code is copied verbatim. Every markup root is replaced by an
// expression that builds the equivalent zx.Component at run time. Errors are
// *errors.ZxError values carrying the file, line, column and byte offset of
// the offending construct.
func Transpile(filename string, src []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	tree, err := syntax.Parse(filename, src)
	if err != nil {
		return nil, parseError(filename, src, err)
	}

	ctx := NewContext(tree, opts.IndentWidth)
	ctx.CollectImports()

	t := &transpiler{
		tree:     tree,
		filename: filename,
		caser:    cases.Title(language.Und, cases.NoLower),
	}

	fmt.Fprintf(ctx, "// Code generated by zx from %s. DO NOT EDIT.\n\n", filepath.Base(filename))
	if err := t.emitHost(ctx, tree.Root, true); err != nil {
		return nil, err
	}

	res := &Result{
		Code:    ctx.Bytes(),
		Imports: ctx.Imports(),
		Blocks:  ctx.blocks,
	}
	if opts.SourceMap {
		b := sourcemap.NewBuilder(filepath.Base(OutputName(filename)), filepath.Base(filename))
		if opts.EmbedSource {
			b.SetSourceContent(string(src))
		}
		b.AddAll(ctx.Mappings())
		res.SourceMap = b.Map()
	}

	opts.Logger.Debug("transpiled",
		"file", filename,
		"bytes", len(res.Code),
		"blocks", res.Blocks,
		"imports", len(res.Imports))
	return res, nil
}

// transpiler walks the syntax tree and emits Go. Output goes to whichever
// context is passed in, so children can be rendered speculatively.
type transpiler struct {
	tree     *syntax.Tree
	filename string
	caser    cases.Caser
}

// emitHost copies a host region, transpiling the markup roots inside it.
// At the top level, markup is indented to match the line it starts on.
func (t *transpiler) emitHost(c *Context, region *syntax.Node, top bool) error {
	for _, n := range region.Children {
		switch Classify(n) {
		case KindMarkupRoot:
			saved := c.indent
			if top {
				c.indent = t.lineIndent(n.Start, c.indentWidth)
			}
			err := t.emitMarkup(c, n.ChildByFieldName("markup"), false)
			c.indent = saved
			if err != nil {
				return err
			}
		default:
			c.writeSource(n.Start, n.End)
		}
	}
	return nil
}

// emitMarkup emits the constructor expression for a markup node.
func (t *transpiler) emitMarkup(c *Context, n *syntax.Node, pre bool) error {
	switch Classify(n) {
	case KindMarkupRoot:
		return t.emitMarkup(c, n.ChildByFieldName("markup"), pre)
	case KindElement, KindSelfClosingElement:
		return t.emitElement(c, n, pre)
	case KindFragment:
		return t.emitFragment(c, n, pre)
	default:
		return t.errorf("E001", n.Start, "expected markup, found %s", n.Kind())
	}
}

// emitExpr wraps a host expression as an interpolated value.
func (t *transpiler) emitExpr(c *Context, expr *syntax.Node, pre bool) error {
	if root := soleMarkup(t.tree, expr); root != nil {
		return t.emitMarkup(c, root, pre)
	}
	c.mapped("zx.Expr(", expr.Start)
	if err := t.emitHost(c, expr, false); err != nil {
		return err
	}
	c.WriteString(")")
	return nil
}

// soleMarkup returns the markup root when a host region consists of nothing
// but one parenthesized markup block.
func soleMarkup(tree *syntax.Tree, region *syntax.Node) *syntax.Node {
	var root *syntax.Node
	for _, n := range region.Children {
		switch Classify(n) {
		case KindMarkupRoot:
			if root != nil {
				return nil
			}
			root = n
		default:
			if strings.TrimSpace(tree.Text(n)) != "" {
				return nil
			}
		}
	}
	return root
}

// lineIndent returns the indentation level of the line containing offset.
func (t *transpiler) lineIndent(offset, width int) int {
	start := offset
	for start > 0 && t.tree.Source[start-1] != '\n' {
		start--
	}
	level, spaces := 0, 0
	for _, b := range t.tree.Source[start:offset] {
		switch b {
		case '\t':
			level++
		case ' ':
			spaces++
		default:
			return level + spaces/width
		}
	}
	return level + spaces/width
}

func (t *transpiler) errorf(code string, offset int, format string, args ...any) error {
	return zxerrors.Errorf(code, format, args...).WithOffset(t.filename, t.tree.Source, offset)
}

// parseError converts a parse error into a located ZxError.
func parseError(filename string, src []byte, err error) error {
	var perr *syntax.Error
	if !errors.As(err, &perr) {
		return zxerrors.FromError(err, "E001")
	}
	code := "E001"
	switch perr.Kind {
	case syntax.ErrUnterminated:
		code = "E008"
	case syntax.ErrMismatchedTag:
		code = "E002"
	}
	return zxerrors.Errorf(code, "%s", perr.Msg).WithOffset(filename, src, perr.Pos.Offset)
}
