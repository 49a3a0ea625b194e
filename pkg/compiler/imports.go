package compiler

import (
	"strconv"

	"github.com/vango-dev/zx/pkg/syntax"
)

// CollectImports records every external-import declaration in the file.
// Declarations may follow their first use in markup, so this walks the whole
// tree before any code is emitted. It runs once per transpile pass; later
// calls are no-ops.
func (c *Context) CollectImports() {
	if c.collected {
		return
	}
	c.collected = true

	syntax.Walk(c.tree.Root, func(n *syntax.Node) bool {
		if Classify(n) != KindVariableDeclaration {
			return true
		}
		name := c.tree.Text(n.ChildByFieldName("name"))
		args := n.ChildByFieldName("value").ChildByFieldName("arguments")
		if name == "" || args == nil || args.ChildCount() == 0 {
			return false
		}
		path, err := strconv.Unquote(c.tree.Text(args.Child(0)))
		if err != nil {
			return false
		}
		c.imports[name] = path
		return false
	})
}
