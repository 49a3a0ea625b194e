package compiler

import (
	"bytes"
	"strings"

	"github.com/vango-dev/zx/pkg/sourcemap"
	"github.com/vango-dev/zx/pkg/syntax"
)

// Context is the mutable state of one transpile pass: the output buffer,
// its source mappings and the indentation level. The import table, the
// pre-pass flag and the block counter are shared with every scratch context
// derived from it.
type Context struct {
	buf      bytes.Buffer
	mappings []sourcemap.Mapping
	line     int // generated position, 0-based
	col      int
	indent   int

	*shared
}

type shared struct {
	tree        *syntax.Tree
	indentWidth int
	imports     map[string]string
	collected   bool
	blocks      int
}

// NewContext creates the root context for a parsed file.
func NewContext(tree *syntax.Tree, indentWidth int) *Context {
	return &Context{
		shared: &shared{
			tree:        tree,
			indentWidth: indentWidth,
			imports:     make(map[string]string),
		},
	}
}

// Write appends p to the output.
func (c *Context) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.line++
			c.col = 0
		} else {
			c.col++
		}
	}
	return c.buf.Write(p)
}

// WriteString appends s to the output.
func (c *Context) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// WriteWithMapping records that the current generated position corresponds
// to the 0-based source position, then appends s.
func (c *Context) WriteWithMapping(s string, srcLine, srcCol int) {
	c.mappings = append(c.mappings, sourcemap.Mapping{
		GenLine: c.line,
		GenCol:  c.col,
		SrcLine: srcLine,
		SrcCol:  srcCol,
	})
	c.WriteString(s)
}

// WriteIndent writes the indentation of the current level.
func (c *Context) WriteIndent() {
	c.WriteString(strings.Repeat(" ", c.indent*c.indentWidth))
}

// Indent increases the indentation level.
func (c *Context) Indent() {
	c.indent++
}

// Dedent decreases the indentation level. It never goes below zero.
func (c *Context) Dedent() {
	if c.indent > 0 {
		c.indent--
	}
}

// NextBlockIndex returns the next value of the block counter. Values are
// unique within one transpile pass, across scratch contexts.
func (c *Context) NextBlockIndex() int {
	i := c.blocks
	c.blocks++
	return i
}

// Scratch returns an empty context at the same indentation that shares the
// import table and block counter. Output written to it is discarded unless
// it is spliced back.
func (c *Context) Scratch() *Context {
	return &Context{indent: c.indent, shared: c.shared}
}

// Splice appends the output of a scratch context, re-basing its mappings
// onto the current position.
func (c *Context) Splice(child *Context) {
	for _, m := range child.mappings {
		if m.GenLine == 0 {
			m.GenCol += c.col
		}
		m.GenLine += c.line
		c.mappings = append(c.mappings, m)
	}
	c.Write(child.buf.Bytes())
}

// Len returns the number of bytes written.
func (c *Context) Len() int {
	return c.buf.Len()
}

// Bytes returns the output.
func (c *Context) Bytes() []byte {
	return c.buf.Bytes()
}

// Mappings returns the recorded source mappings.
func (c *Context) Mappings() []sourcemap.Mapping {
	return c.mappings
}

// Imports returns a copy of the import table.
func (c *Context) Imports() map[string]string {
	out := make(map[string]string, len(c.imports))
	for k, v := range c.imports {
		out[k] = v
	}
	return out
}

// writeSource copies src[start:end] verbatim, mapping the start of every
// line back to the source.
func (c *Context) writeSource(start, end int) {
	src := c.tree.Source
	for start < end {
		stop := bytes.IndexByte(src[start:end], '\n')
		if stop < 0 {
			stop = end
		} else {
			stop = start + stop + 1
		}
		line, col := c.tree.LineCol(start)
		c.WriteWithMapping(string(src[start:stop]), line, col)
		start = stop
	}
}

// mapped writes s mapped to a source offset.
func (c *Context) mapped(s string, offset int) {
	line, col := c.tree.LineCol(offset)
	c.WriteWithMapping(s, line, col)
}
