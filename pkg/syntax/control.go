package syntax

// expressionBlock parses "{" content "}" inside markup.
func (p *parser) expressionBlock() *Node {
	n := &Node{Type: TypeExpressionBlock, Start: p.pos}
	p.pos++
	p.skipSpace()

	switch {
	case p.peek() == '[' && p.atFormatExpression():
		n.add("value", p.formatExpression())
	case p.atControlKeyword():
		n.add("value", p.control(stopBrace))
	default:
		expr := p.hostRegion(TypeExpression, stopBrace)
		if expr.Start == expr.End {
			p.errorf(n.Start, "empty expression")
		}
		n.add("value", expr)
	}

	p.skipSpace()
	p.expect('}')
	n.End = p.pos
	return n
}

// atFormatExpression reports whether the "[" at the current position
// starts "[expr:format]" rather than a composite literal such as []T{...}.
func (p *parser) atFormatExpression() bool {
	save := p.pos
	defer func() { p.pos = save }()

	depth := 0
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case '"', '\'':
			if !p.tryQuoted(c) {
				return false
			}
			continue
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth == 0 {
				if c != ']' {
					return false
				}
				p.pos++
				p.skipSpace()
				return p.peek() == '}'
			}
		}
		p.pos++
	}
	return false
}

// tryQuoted skips a quoted literal, reporting false instead of failing.
func (p *parser) tryQuoted(q byte) bool {
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case q:
			p.pos++
			return true
		case '\n':
			return false
		}
		p.pos++
	}
	return false
}

// formatExpression parses "[expr:format]". The format is optional.
func (p *parser) formatExpression() *Node {
	n := &Node{Type: TypeArrayType, Start: p.pos}
	p.pos++
	p.skipSpace()
	expr := p.hostRegion(TypeExpression, stopColon|stopBracket)
	if expr.Start == expr.End {
		p.errorf(expr.Start, "empty format expression")
	}
	n.add("value", expr)
	if p.peek() == ':' {
		p.pos++
		p.skipSpace()
		format := &Node{Type: TypeIdentifier, Start: p.pos}
		for !p.eof() && p.src[p.pos] != ']' {
			p.pos++
		}
		format.End = p.pos
		for format.End > format.Start && isSpace(p.src[format.End-1]) {
			format.End--
		}
		n.add("format", format)
	}
	p.expect(']')
	n.End = p.pos
	return n
}

func (p *parser) atControlKeyword() bool {
	return p.atKeyword("if") || p.atKeyword("for") || p.atKeyword("while") || p.atKeyword("switch")
}

// control parses one of the control-flow forms. stops ends bare-expression
// branches in the enclosing context.
func (p *parser) control(stops stopSet) *Node {
	switch {
	case p.atKeyword("if"):
		return p.ifExpression(stops)
	case p.atKeyword("for"):
		return p.forExpression(stops)
	case p.atKeyword("while"):
		return p.whileExpression(stops)
	default:
		return p.switchExpression()
	}
}

// ifExpression parses "if (cond) branch [else branch]".
func (p *parser) ifExpression(stops stopSet) *Node {
	n := &Node{Type: TypeIfExpression, Start: p.pos}
	p.pos += len("if")
	p.skipSpace()
	n.add("condition", p.parenExpression(TypeExpression))
	n.add("consequence", p.branch(stops|stopElse))

	save := p.pos
	p.skipSpace()
	if p.atKeyword("else") {
		p.pos += len("else")
		n.add("alternative", p.branch(stops))
	} else {
		p.pos = save
	}

	if hasBlockBranch(n, "consequence", "alternative") {
		n.Type = TypeIfBlock
	}
	n.End = p.pos
	return n
}

// forExpression parses "for (iterable) |item[, index]| branch".
func (p *parser) forExpression(stops stopSet) *Node {
	n := &Node{Type: TypeForExpression, Start: p.pos}
	p.pos += len("for")
	p.skipSpace()
	n.add("iterable", p.parenExpression(TypeExpression))
	p.skipSpace()
	n.add("payload", p.payload())
	n.add("body", p.branch(stops))

	if hasBlockBranch(n, "body") {
		n.Type = TypeForBlock
	}
	n.End = p.pos
	return n
}

// whileExpression parses "while (cond) [: (continuation)] branch".
func (p *parser) whileExpression(stops stopSet) *Node {
	n := &Node{Type: TypeWhileExpression, Start: p.pos}
	p.pos += len("while")
	p.skipSpace()
	n.add("condition", p.parenExpression(TypeExpression))

	save := p.pos
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		p.skipSpace()
		n.add("continuation", p.parenExpression(TypeAssignment))
	} else {
		p.pos = save
	}
	n.add("body", p.branch(stops))

	if hasBlockBranch(n, "body") {
		n.Type = TypeWhileBlock
	}
	n.End = p.pos
	return n
}

// switchExpression parses "switch (value) { pattern => branch, ... }".
func (p *parser) switchExpression() *Node {
	n := &Node{Type: TypeSwitchExpression, Start: p.pos}
	p.pos += len("switch")
	p.skipSpace()
	n.add("value", p.parenExpression(TypeExpression))
	p.skipSpace()
	p.expect('{')

	for {
		p.skipSpace()
		if p.eof() {
			p.unterminated(n.Start, "unterminated switch")
		}
		if p.peek() == '}' {
			p.pos++
			break
		}
		c := &Node{Type: TypeSwitchCase, Start: p.pos}
		pattern := p.hostRegion(TypeExpression, stopArrow|stopBrace)
		if pattern.Start == pattern.End {
			p.errorf(pattern.Start, "expected switch pattern")
		}
		c.add("pattern", pattern)
		p.skipSpace()
		p.expectString("=>")
		value := p.branch(stopComma | stopBrace)
		c.add("value", value)
		c.End = p.pos
		n.add("", c)
		if value.Type == TypeBlock {
			n.Type = TypeSwitchBlock
		}

		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
		}
	}

	n.End = p.pos
	return n
}

// branch parses the body of a control-flow form.
func (p *parser) branch(stops stopSet) *Node {
	p.skipSpace()
	switch {
	case p.eof():
		p.unterminated(p.pos, "expected branch, found EOF")
	case p.peek() == '(' && p.atMarkupRoot():
		return p.zxBlock()
	case p.peek() == '<' && (isLetter(p.peekAt(1)) || p.peekAt(1) == '>'):
		return p.markup()
	case p.peek() == '{':
		return p.block()
	case p.atControlKeyword():
		return p.control(stops)
	}
	expr := p.hostRegion(TypeExpression, stops)
	if expr.Start == expr.End {
		p.errorf(expr.Start, "expected branch, found %q", p.peek())
	}
	return expr
}

// block parses "{ statements }". The node spans the statements.
func (p *parser) block() *Node {
	p.pos++
	p.skipSpace()
	n := p.hostRegion(TypeBlock, stopBrace)
	p.expect('}')
	return n
}

// parenExpression parses "(" expr ")" and returns the inner expression.
func (p *parser) parenExpression(typ string) *Node {
	p.expect('(')
	p.skipSpace()
	n := p.hostRegion(typ, stopParen)
	if n.Start == n.End {
		p.errorf(n.Start, "empty parenthesized expression")
	}
	p.expect(')')
	p.skipSpace()
	return n
}

// payload parses "|item[, index]|".
func (p *parser) payload() *Node {
	n := &Node{Type: TypePayload, Start: p.pos}
	p.expect('|')
	for {
		p.skipSpace()
		id := &Node{Type: TypeIdentifier, Start: p.pos}
		for !p.eof() && isIdent(p.src[p.pos]) {
			p.pos++
		}
		id.End = p.pos
		if id.Start == id.End {
			p.errorf(p.pos, "expected identifier in payload")
		}
		n.add("", id)
		p.skipSpace()
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	p.expect('|')
	if len(n.Children) > 2 {
		p.errorf(n.Start, "payload takes at most two identifiers")
	}
	n.End = p.pos
	return n
}

func hasBlockBranch(n *Node, fields ...string) bool {
	for _, f := range fields {
		if c := n.ChildByFieldName(f); c != nil && c.Type == TypeBlock {
			return true
		}
	}
	return false
}
