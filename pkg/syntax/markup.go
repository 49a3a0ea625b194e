package syntax

import (
	"bytes"
	"strings"
)

// markup parses an element, self-closing element or fragment at "<".
func (p *parser) markup() *Node {
	start := p.pos
	if p.peek() != '<' {
		p.errorf(p.pos, "expected markup, found %q", p.peek())
	}
	if p.peekAt(1) == '>' {
		return p.fragment()
	}
	if !isLetter(p.peekAt(1)) {
		p.errorf(p.pos+1, "expected tag name")
	}

	open := &Node{Type: TypeStartTag, Start: start}
	p.pos++
	name := p.tagName()
	open.add("name", name)
	tag := string(p.src[name.Start:name.End])
	raw := tag == "script" || tag == "style"

	for {
		p.skipSpace()
		if p.eof() {
			p.unterminated(start, "unterminated start tag <"+tag+">")
		}
		if p.hasPrefix("/>") {
			p.pos += 2
			n := &Node{Type: TypeSelfClosingElement, Start: start, End: p.pos}
			for _, c := range open.Children {
				field := ""
				if c == name {
					field = "name"
				}
				n.add(field, c)
			}
			return n
		}
		if p.peek() == '>' {
			p.pos++
			break
		}
		attr := p.attribute()
		if isRawEscaping(p.src, attr) {
			raw = true
		}
		open.add("", attr)
	}
	open.End = p.pos

	el := &Node{Type: TypeElement, Start: start}
	el.add("open", open)
	if raw {
		end := p.rawContentEnd(tag)
		if end > p.pos {
			el.add("", &Node{Type: TypeText, Start: p.pos, End: end})
		}
		p.pos = end
	} else {
		p.children(el, tag)
	}
	el.add("close", p.endTag(tag))
	el.End = p.pos
	return el
}

func (p *parser) fragment() *Node {
	n := &Node{Type: TypeFragment, Start: p.pos}
	p.pos += 2
	p.children(n, "")
	n.add("close", p.endTag(""))
	n.End = p.pos
	return n
}

// children parses element content up to the end tag.
func (p *parser) children(parent *Node, tag string) {
	for {
		if p.eof() {
			if tag == "" {
				p.unterminated(parent.Start, "unclosed fragment")
			}
			p.unterminated(parent.Start, "unclosed element <"+tag+">")
		}
		switch {
		case p.hasPrefix("</"):
			return
		case p.hasPrefix("<!--"):
			parent.add("", p.htmlComment())
		case p.peek() == '<':
			parent.add("", p.markup())
		case p.peek() == '{':
			parent.add("", p.expressionBlock())
		default:
			parent.add("", p.text())
		}
	}
}

func (p *parser) text() *Node {
	n := &Node{Type: TypeText, Start: p.pos}
	for !p.eof() && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
		p.pos++
	}
	n.End = p.pos
	return n
}

func (p *parser) htmlComment() *Node {
	n := &Node{Type: TypeComment, Start: p.pos}
	end := bytes.Index(p.src[p.pos+4:], []byte("-->"))
	if end < 0 {
		p.unterminated(p.pos, "unterminated comment")
	}
	p.pos += 4 + end + 3
	n.End = p.pos
	return n
}

func (p *parser) endTag(tag string) *Node {
	n := &Node{Type: TypeEndTag, Start: p.pos}
	p.expectString("</")
	p.skipSpace()
	got := ""
	if isLetter(p.peek()) {
		name := p.tagName()
		n.add("name", name)
		got = string(p.src[name.Start:name.End])
	}
	p.skipSpace()
	p.expect('>')
	n.End = p.pos

	if got != tag {
		want, found := "</"+tag+">", "</"+got+">"
		panic(bailout{&Error{
			Kind: ErrMismatchedTag,
			Pos:  p.position(n.Start),
			Msg:  "mismatched closing tag: expected " + want + ", found " + found,
		}})
	}
	return n
}

func (p *parser) tagName() *Node {
	n := &Node{Type: TypeTagName, Start: p.pos}
	for !p.eof() && isTagChar(p.src[p.pos]) {
		p.pos++
	}
	n.End = p.pos
	return n
}

// rawContentEnd returns the offset of the "</tag" that closes raw content.
func (p *parser) rawContentEnd(tag string) int {
	closing := []byte("</" + tag)
	for i := p.pos; ; {
		j := bytes.Index(p.src[i:], closing)
		if j < 0 {
			p.unterminated(p.pos, "unclosed element <"+tag+">")
		}
		k := i + j + len(closing)
		for k < len(p.src) && isSpace(p.src[k]) {
			k++
		}
		if k < len(p.src) && p.src[k] == '>' {
			return i + j
		}
		i = k
	}
}

func (p *parser) attribute() *Node {
	n := &Node{Type: TypeAttribute, Start: p.pos}
	if p.peek() == '@' {
		n.Type = TypeBuiltinAttribute
		p.pos++
	}
	name := &Node{Type: TypeAttributeName, Start: p.pos}
	for !p.eof() && isAttrChar(p.src[p.pos]) {
		p.pos++
	}
	name.End = p.pos
	if name.Start == name.End {
		p.errorf(p.pos, "expected attribute name, found %q", p.peek())
	}
	n.add("name", name)

	save := p.pos
	p.skipSpace()
	if p.peek() != '=' {
		p.pos = save
		n.End = p.pos
		return n
	}
	p.pos++
	p.skipSpace()
	n.add("value", p.attributeValue(n.Type == TypeBuiltinAttribute))
	n.End = p.pos
	return n
}

func (p *parser) attributeValue(builtin bool) *Node {
	switch c := p.peek(); c {
	case '"', '\'':
		n := &Node{Type: TypeString, Start: p.pos}
		p.pos++
		end := bytes.IndexByte(p.src[p.pos:], c)
		if end < 0 {
			p.unterminated(n.Start, "unterminated attribute value")
		}
		n.add("", &Node{Type: TypeStringContent, Start: p.pos, End: p.pos + end})
		p.pos += end + 1
		n.End = p.pos
		return n
	case '{':
		p.pos++
		p.skipSpace()
		var n *Node
		if builtin && p.peek() == '.' {
			n = &Node{Type: TypeBuiltinIdentifier, Start: p.pos}
			p.pos++
			for !p.eof() && isIdent(p.src[p.pos]) {
				p.pos++
			}
			n.End = p.pos
			p.skipSpace()
		} else {
			n = p.hostRegion(TypeExpression, stopBrace)
			if n.Start == n.End {
				p.errorf(n.Start, "empty attribute expression")
			}
		}
		p.expect('}')
		return n
	default:
		p.errorf(p.pos, "expected attribute value, found %q", c)
		return nil
	}
}

// isRawEscaping reports whether attr is @escaping with the raw mode.
func isRawEscaping(src []byte, attr *Node) bool {
	if attr.Type != TypeBuiltinAttribute {
		return false
	}
	name := attr.ChildByFieldName("name")
	value := attr.ChildByFieldName("value")
	if value == nil || string(src[name.Start:name.End]) != "escaping" {
		return false
	}
	v := strings.Trim(strings.TrimSpace(string(src[value.Start:value.End])), `".`)
	return v == "raw"
}

func isTagChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_' || c == '.' || c == ':'
}

func isAttrChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_' || c == '.' || c == ':'
}
