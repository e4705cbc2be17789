package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// Паттерны match/case переиспользуют узлы выражений:
// последовательности: Tuple/List, маппинги: Dict/KeyValue,
// 'a | b': Binary, классы: Call, захват с 'as': AsPattern.

// parseOpenPattern: maybe_star_pattern (',' maybe_star_pattern)* [',']
func (p *Parser) parseOpenPattern() *cst.Node {
	first := p.parseMaybeStarPattern()
	if !p.at(token.Comma) {
		return first
	}
	elems := []cst.Element{first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if p.at_or(token.Colon, token.KwIf, token.RParen) {
			break
		}
		elems = append(elems, p.parseMaybeStarPattern())
	}
	return node(cst.Tuple, elems...)
}

func (p *Parser) parseMaybeStarPattern() *cst.Node {
	if p.at(token.Star) {
		star := p.advance()
		name := p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after '*' in pattern")
		return node(cst.Starred, star, node(cst.Name, name))
	}
	return p.parseAsPattern()
}

// parseAsPattern: or_pattern ['as' NAME]
func (p *Parser) parseAsPattern() *cst.Node {
	pat := p.parseOrPattern()
	if !p.at(token.KwAs) {
		return pat
	}
	kw := p.advance()
	name := p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after 'as'")
	return node(cst.AsPattern, pat, kw, name)
}

func (p *Parser) parseOrPattern() *cst.Node {
	left := p.parseClosedPattern()
	for p.at(token.Pipe) {
		op := p.advance()
		left = node(cst.Binary, left, op, p.parseClosedPattern())
	}
	return left
}

func (p *Parser) parseClosedPattern() *cst.Node {
	switch p.peek().Kind {
	case token.LParen:
		open := p.advance()
		if p.at(token.RParen) {
			return node(cst.Tuple, open, p.advance())
		}
		inner := p.parseOpenPattern()
		closing := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' in pattern")
		if inner.Kind == cst.Tuple && !inner.HasLeaf(token.LParen) {
			inner.Elems = append(append([]cst.Element{open}, inner.Elems...), closing)
			return inner
		}
		return node(cst.Paren, open, inner, closing)
	case token.LBracket:
		elems := []cst.Element{p.advance()}
		for !p.at(token.RBracket) {
			elems = append(elems, p.parseMaybeStarPattern())
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, p.advance())
		}
		elems = append(elems, p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' in pattern"))
		return node(cst.List, elems...)
	case token.LBrace:
		return p.parseMappingPattern()
	case token.Name:
		return p.parseNameOrClassPattern()
	}
	// литералы: числа (в т.ч. -1 и 1+2j), строки, None/True/False
	return p.parseBinaryExpr(precAdditive)
}

func (p *Parser) parseMappingPattern() *cst.Node {
	elems := []cst.Element{p.advance()}
	for !p.at(token.RBrace) {
		if p.at(token.StarStar) {
			op := p.advance()
			name := p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after '**' in pattern")
			elems = append(elems, node(cst.Starred, op, node(cst.Name, name)))
		} else {
			key := p.parseClosedPattern()
			colon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in mapping pattern")
			elems = append(elems, node(cst.KeyValue, key, colon, p.parseAsPattern()))
		}
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, p.advance())
	}
	elems = append(elems, p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' in pattern"))
	return node(cst.Dict, elems...)
}

// parseNameOrClassPattern: NAME ('.' NAME)* ['(' pattern args ')']
func (p *Parser) parseNameOrClassPattern() *cst.Node {
	expr := node(cst.Name, p.advance())
	for p.at(token.Dot) {
		dot := p.advance()
		expr = node(cst.Attribute, expr, dot, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after '.'"))
	}
	if !p.at(token.LParen) {
		return expr
	}
	args := []cst.Element{p.advance()}
	for !p.at(token.RParen) {
		if p.at(token.Name) && p.peekN(1).Kind == token.Assign {
			name := p.advance()
			eq := p.advance()
			args = append(args, node(cst.Arg, name, eq, p.parseAsPattern()))
		} else {
			args = append(args, node(cst.Arg, p.parseAsPattern()))
		}
		if !p.at(token.Comma) {
			break
		}
		args = append(args, p.advance())
	}
	args = append(args, p.expect(token.RParen, diag.SynExpectRParen, "expected ')' in class pattern"))
	return node(cst.Call, expr, node(cst.ArgList, args...))
}
