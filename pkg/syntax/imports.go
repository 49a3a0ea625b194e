package syntax

import (
	"sort"

	"github.com/dlclark/regexp2"
)

// importDecl matches external-import declarations:
//
//	var Counter = zx.Import("./Counter.tsx")
//	Counter := Import("./Counter.tsx")
//
// The lookbehind keeps selector expressions (a.Counter = ...) from matching.
var importDecl = regexp2.MustCompile(
	`(?<![\w.])(?:var\s+)?(?<name>[A-Za-z_]\w*)\s*:?=\s*(?<call>(?:\w+\.)?Import\s*\(\s*(?<path>"(?:[^"\\]|\\.)*")\s*\))`,
	regexp2.None,
)

// hostCode builds a host_code node for src[start:end]. Comments found by the
// scanner and import declarations outside them become children.
func (p *parser) hostCode(start, end int, comments []*Node) *Node {
	n := &Node{Type: TypeHostCode, Start: start, End: end}
	children := append([]*Node(nil), comments...)
	children = append(children, p.importDecls(start, end, comments)...)
	sort.SliceStable(children, func(i, j int) bool { return children[i].Start < children[j].Start })
	for _, c := range children {
		n.add("", c)
	}
	return n
}

func (p *parser) importDecls(start, end int, comments []*Node) []*Node {
	s := string(p.src[start:end])
	var decls []*Node

	m, err := importDecl.FindStringMatch(s)
	for ; m != nil && err == nil; m, err = importDecl.FindNextMatch(m) {
		off := start + byteOffset(s, m.Index)
		if inComment(off, comments) {
			continue
		}

		decl := &Node{Type: TypeVariableDeclaration, Start: off, End: start + byteOffset(s, m.Index+m.Length)}
		decl.add("name", p.groupNode(TypeIdentifier, s, start, m.GroupByName("name")))

		call := p.groupNode(TypeBuiltinFunction, s, start, m.GroupByName("call"))
		str := p.groupNode(TypeString, s, start, m.GroupByName("path"))
		str.add("", &Node{Type: TypeStringContent, Start: str.Start + 1, End: str.End - 1})
		args := &Node{Type: TypeArguments, Start: str.Start, End: str.End}
		args.add("", str)
		call.add("arguments", args)
		decl.add("value", call)

		decls = append(decls, decl)
	}
	return decls
}

func (p *parser) groupNode(typ, s string, base int, g *regexp2.Group) *Node {
	return &Node{
		Type:  typ,
		Start: base + byteOffset(s, g.Index),
		End:   base + byteOffset(s, g.Index+g.Length),
	}
}

func inComment(off int, comments []*Node) bool {
	for _, c := range comments {
		if off >= c.Start && off < c.End {
			return true
		}
	}
	return false
}

// byteOffset converts a rune index into s, as reported by regexp2, into a
// byte offset.
func byteOffset(s string, runeIndex int) int {
	i := 0
	for off := range s {
		if i == runeIndex {
			return off
		}
		i++
	}
	return len(s)
}
