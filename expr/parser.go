package expr

import "strconv"

// Parse parses a bare expression (no surrounding braces). The whole input
// must be consumed.
func Parse(src string) (Node, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{src: src, tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.kind != tokEOF {
		return nil, newParseError(src, tok.pos, "unexpected trailing token %q", tok.value)
	}
	return node, nil
}

type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) current() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF, pos: len(p.src)}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// isOp reports whether the current token is one of the given operators.
func (p *parser) isOp(ops ...string) bool {
	tok := p.current()
	if tok.kind != tokOperator {
		return false
	}
	for _, op := range ops {
		if tok.value == op {
			return true
		}
	}
	return false
}

func (p *parser) expect(op string) error {
	if !p.isOp(op) {
		tok := p.current()
		if tok.kind == tokEOF {
			return newParseError(p.src, tok.pos, "expected %q, found end of expression", op)
		}
		return newParseError(p.src, tok.pos, "expected %q, found %q", op, tok.value)
	}
	p.advance()
	return nil
}

// parseExpression parses a conditional expression (lowest precedence).
func (p *parser) parseExpression() (Node, error) {
	test, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.isOp("?") {
		return test, nil
	}
	p.advance()

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Conditional{Test: test, Then: then, Else: els}, nil
}

// parseBinary parses a left-associative chain of the given operators.
func (p *parser) parseBinary(next func() (Node, error), ops ...string) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.isOp(ops...) {
		op := p.current().value
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseLogicalOr() (Node, error) {
	return p.parseBinary(p.parseLogicalAnd, "||")
}

func (p *parser) parseLogicalAnd() (Node, error) {
	return p.parseBinary(p.parseEquality, "&&")
}

func (p *parser) parseEquality() (Node, error) {
	return p.parseBinary(p.parseComparison, "==", "!=", "===", "!==")
}

func (p *parser) parseComparison() (Node, error) {
	return p.parseBinary(p.parseTerm, "<", ">", "<=", ">=")
}

func (p *parser) parseTerm() (Node, error) {
	return p.parseBinary(p.parseFactor, "+", "-")
}

func (p *parser) parseFactor() (Node, error) {
	return p.parseBinary(p.parseUnary, "*", "/", "%")
}

func (p *parser) parseUnary() (Node, error) {
	if p.isOp("!", "-", "+") {
		op := p.current().value
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses member access, indexing and calls.
func (p *parser) parsePostfix() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.isOp("."):
			p.advance()
			tok := p.current()
			if tok.kind != tokIdent {
				return nil, newParseError(p.src, tok.pos, "expected property name after '.'")
			}
			p.advance()
			node = &Member{Object: node, Name: tok.value}

		case p.isOp("["):
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			node = &Index{Object: node, Index: index}

		case p.isOp("("):
			p.advance()
			args, err := p.parseList(")")
			if err != nil {
				return nil, err
			}
			node = &Call{Callee: node, Args: args}

		default:
			return node, nil
		}
	}
}

// parseList parses comma separated expressions up to and including the
// closing operator.
func (p *parser) parseList(closing string) ([]Node, error) {
	var items []Node
	if p.isOp(closing) {
		p.advance()
		return items, nil
	}
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.isOp(",") {
			p.advance()
			continue
		}
		if err := p.expect(closing); err != nil {
			return nil, err
		}
		return items, nil
	}
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.kind {
	case tokNumber:
		p.advance()
		if i, err := strconv.Atoi(tok.value); err == nil {
			return &Literal{Value: i}, nil
		}
		f, err := strconv.ParseFloat(tok.value, 64)
		if err != nil {
			return nil, newParseError(p.src, tok.pos, "invalid number %q", tok.value)
		}
		return &Literal{Value: f}, nil

	case tokString:
		p.advance()
		return &Literal{Value: tok.value}, nil

	case tokIdent:
		p.advance()
		switch tok.value {
		case "true":
			return &Literal{Value: true}, nil
		case "false":
			return &Literal{Value: false}, nil
		case "null", "nil", "undefined":
			return &Literal{Value: nil}, nil
		case "this":
			return &This{}, nil
		}
		return &Identifier{Name: tok.value}, nil

	case tokOperator:
		switch tok.value {
		case "(":
			p.advance()
			node, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return node, nil
		case "[":
			p.advance()
			elems, err := p.parseList("]")
			if err != nil {
				return nil, err
			}
			return &ArrayLiteral{Elements: elems}, nil
		}
		return nil, newParseError(p.src, tok.pos, "unexpected %q", tok.value)
	}

	return nil, newParseError(p.src, tok.pos, "unexpected end of expression")
}
