package syntax

import (
	"fmt"
)

// parser is a recursive descent parser over the raw bytes of a .zx file.
// Host code is scanned just enough to find markup roots and the end of
// embedded expressions; it is never parsed as Go.
type parser struct {
	filename string
	src      []byte
	pos      int
	lines    []int
}

// Parse parses a .zx source file. The returned tree covers the whole file:
// the root's children alternate between host code and markup blocks.
func Parse(filename string, src []byte) (tree *Tree, err error) {
	p := &parser{
		filename: filename,
		src:      src,
		lines:    lineStarts(src),
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			tree, err = nil, b.err
		}
	}()

	root := p.hostRegion(TypeSourceFile, 0)
	return &Tree{Filename: filename, Source: src, Root: root, lines: p.lines}, nil
}

// stopSet selects the depth-0 tokens that end a host region.
type stopSet uint8

const (
	stopBrace   stopSet = 1 << iota // }
	stopParen                       // )
	stopBracket                     // ]
	stopComma                       // ,
	stopColon                       // :
	stopArrow                       // =>
	stopElse                        // else keyword
)

func (p *parser) atStop(s stopSet) bool {
	if s == 0 || p.eof() {
		return false
	}
	switch c := p.src[p.pos]; {
	case c == '}':
		return s&stopBrace != 0
	case c == ')':
		return s&stopParen != 0
	case c == ']':
		return s&stopBracket != 0
	case c == ',':
		return s&stopComma != 0
	case c == ':':
		return s&stopColon != 0
	case c == '=' && p.peekAt(1) == '>':
		return s&stopArrow != 0
	case c == 'e':
		return s&stopElse != 0 && p.atKeyword("else")
	}
	return false
}

// hostRegion scans host code until one of the stop tokens is found at
// bracket depth zero. Markup roots found on the way become zx_block
// children; the host text between them becomes host_code children.
func (p *parser) hostRegion(typ string, stops stopSet) *Node {
	n := &Node{Type: typ, Start: p.pos}
	segStart := p.pos
	var comments []*Node
	depth := 0

	flush := func(end int) {
		if end > segStart {
			n.add("", p.hostCode(segStart, end, comments))
		}
		comments = nil
	}

	for !p.eof() {
		if depth == 0 && p.atStop(stops) {
			break
		}
		c := p.src[p.pos]
		switch {
		case c == '"' || c == '\'':
			p.skipQuoted(c)
		case c == '`':
			p.skipRawString()
		case c == '/' && p.peekAt(1) == '/':
			comments = append(comments, p.lineComment())
		case c == '/' && p.peekAt(1) == '*':
			comments = append(comments, p.blockComment())
		case c == '(' && p.atMarkupRoot():
			flush(p.pos)
			n.add("", p.zxBlock())
			segStart = p.pos
		case c == '(' || c == '[' || c == '{':
			depth++
			p.pos++
		case c == ')' || c == ']' || c == '}':
			if depth == 0 {
				p.errorf(p.pos, "unexpected %q", c)
			}
			depth--
			p.pos++
		default:
			p.pos++
		}
	}

	if stops != 0 && p.eof() {
		p.unterminated(n.Start, "unterminated expression")
	}

	end := p.pos
	if typ != TypeSourceFile {
		for end > segStart && isSpace(p.src[end-1]) {
			end--
		}
	}
	flush(end)
	n.End = end
	return n
}

// zxBlock parses "(" markup ")".
func (p *parser) zxBlock() *Node {
	n := &Node{Type: TypeZxBlock, Start: p.pos}
	p.pos++
	p.skipSpace()
	n.add("markup", p.markup())
	p.skipSpace()
	p.expect(')')
	n.End = p.pos
	return n
}

// atMarkupRoot reports whether "(" at the current position opens markup:
// optional whitespace, then "<" followed by a letter or ">".
func (p *parser) atMarkupRoot() bool {
	i := p.pos + 1
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	return i+1 < len(p.src) && p.src[i] == '<' && (isLetter(p.src[i+1]) || p.src[i+1] == '>')
}

func (p *parser) skipQuoted(q byte) {
	start := p.pos
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case q:
			p.pos++
			return
		case '\n':
			p.errorf(start, "newline in literal")
		}
		p.pos++
	}
	p.unterminated(start, "unterminated literal")
}

func (p *parser) skipRawString() {
	start := p.pos
	p.pos++
	for !p.eof() {
		if p.src[p.pos] == '`' {
			p.pos++
			return
		}
		p.pos++
	}
	p.unterminated(start, "unterminated raw string")
}

func (p *parser) lineComment() *Node {
	n := &Node{Type: TypeComment, Start: p.pos}
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
	n.End = p.pos
	return n
}

func (p *parser) blockComment() *Node {
	n := &Node{Type: TypeComment, Start: p.pos}
	p.pos += 2
	for !p.eof() {
		if p.hasPrefix("*/") {
			p.pos += 2
			n.End = p.pos
			return n
		}
		p.pos++
	}
	p.unterminated(n.Start, "unterminated comment")
	return nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

func (p *parser) peekAt(i int) byte {
	if p.pos+i >= len(p.src) {
		return 0
	}
	return p.src[p.pos+i]
}

func (p *parser) hasPrefix(s string) bool {
	return len(p.src)-p.pos >= len(s) && string(p.src[p.pos:p.pos+len(s)]) == s
}

// atKeyword reports whether kw starts at the current position as a whole word.
func (p *parser) atKeyword(kw string) bool {
	if !p.hasPrefix(kw) {
		return false
	}
	if p.pos > 0 && isIdent(p.src[p.pos-1]) {
		return false
	}
	end := p.pos + len(kw)
	return end >= len(p.src) || !isIdent(p.src[end])
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) expect(c byte) {
	if p.eof() {
		p.unterminated(p.pos, fmt.Sprintf("expected %q, found EOF", c))
	}
	if p.src[p.pos] != c {
		p.errorf(p.pos, "expected %q, found %q", c, p.src[p.pos])
	}
	p.pos++
}

func (p *parser) expectString(s string) {
	if !p.hasPrefix(s) {
		if p.eof() {
			p.unterminated(p.pos, fmt.Sprintf("expected %q, found EOF", s))
		}
		p.errorf(p.pos, "expected %q, found %q", s, p.src[p.pos])
	}
	p.pos += len(s)
}

func (p *parser) position(offset int) Position {
	t := Tree{Filename: p.filename, lines: p.lines}
	return t.Position(offset)
}

func (p *parser) errorf(offset int, format string, args ...any) {
	p.fail(ErrSyntax, offset, fmt.Sprintf(format, args...))
}

func (p *parser) unterminated(offset int, msg string) {
	p.fail(ErrUnterminated, offset, msg)
}

func (p *parser) fail(kind ErrorKind, offset int, msg string) {
	panic(bailout{&Error{Kind: kind, Pos: p.position(offset), Msg: msg}})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c >= 0x80
}
