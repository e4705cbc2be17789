package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// parsePrimary: atom с хвостами .name, (args), [subscript].
func (p *Parser) parsePrimary() *cst.Node {
	expr := p.parseAtom()
	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.advance()
			name := p.expect(token.Name, diag.SynExpectIdentifier, "expected attribute name after '.'")
			expr = node(cst.Attribute, expr, dot, name)
		case token.LParen:
			expr = node(cst.Call, expr, p.parseArgList())
		case token.LBracket:
			expr = p.parseSubscript(expr)
		default:
			return expr
		}
	}
}

// parseArgList: '(' [arg (',' arg)* [',']] ')'
func (p *Parser) parseArgList() *cst.Node {
	elems := []cst.Element{p.advance()}
	for !p.at(token.RParen) {
		elems = append(elems, p.parseArg())
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, p.advance())
	}
	elems = append(elems, p.expect(token.RParen, diag.SynExpectRParen, "expected ')' to close the argument list"))
	return node(cst.ArgList, elems...)
}

// parseArg: '*' expr | '**' expr | NAME '=' expr | namedexpr [comprehension]
func (p *Parser) parseArg() *cst.Node {
	switch {
	case p.at_or(token.Star, token.StarStar):
		star := p.advance()
		return node(cst.Arg, node(cst.Starred, star, p.parseExpr()))
	case p.at(token.Name) && p.peekN(1).Kind == token.Assign:
		name := p.advance()
		eq := p.advance()
		return node(cst.Arg, name, eq, p.parseExpr())
	case p.atExprStart():
		value := p.parseNamedExpr()
		if p.atCompFor() {
			elems := append([]cst.Element{value}, p.parseCompClauses()...)
			value = node(cst.Comprehension, elems...)
		}
		return node(cst.Arg, value)
	}
	p.unexpected("argument")
	return nil
}

// parseSubscript: '[' slices ']'; несколько срезов через запятую дают Tuple.
func (p *Parser) parseSubscript(value *cst.Node) *cst.Node {
	open := p.advance()
	first := p.parseSliceItem()
	index := first
	if p.at(token.Comma) {
		elems := []cst.Element{first}
		for p.at(token.Comma) {
			elems = append(elems, p.advance())
			if p.at(token.RBracket) {
				break
			}
			elems = append(elems, p.parseSliceItem())
		}
		index = node(cst.Tuple, elems...)
	}
	closing := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' to close the subscript")
	return node(cst.Subscript, value, open, index, closing)
}

// parseSliceItem: [expr] ':' [expr] [':' [expr]] | '*' expr | namedexpr
func (p *Parser) parseSliceItem() *cst.Node {
	if p.at(token.Star) {
		star := p.advance()
		return node(cst.Starred, star, p.parseBitOr())
	}
	var elems []cst.Element
	if !p.at(token.Colon) {
		e := p.parseNamedExpr()
		if !p.at(token.Colon) {
			return e
		}
		elems = append(elems, e)
	}
	elems = append(elems, p.advance())
	if p.atExprStart() {
		elems = append(elems, p.parseExpr())
	}
	if p.at(token.Colon) {
		elems = append(elems, p.advance())
		if p.atExprStart() {
			elems = append(elems, p.parseExpr())
		}
	}
	return node(cst.Slice, elems...)
}

// parseCompClauses: ([async] 'for' targets 'in' disjunction | 'if' disjunction)+
func (p *Parser) parseCompClauses() []cst.Element {
	var out []cst.Element
	for {
		switch {
		case p.atCompFor():
			var elems []cst.Element
			if p.at(token.KwAsync) {
				elems = append(elems, p.advance())
			}
			elems = append(elems, p.advance())
			elems = append(elems, p.parseTargetList())
			elems = append(elems, p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' in comprehension"))
			elems = append(elems, p.parseExprNoCond())
			out = append(out, node(cst.CompFor, elems...))
		case p.at(token.KwIf):
			kw := p.advance()
			out = append(out, node(cst.CompIf, kw, p.parseExprNoCond()))
		default:
			return out
		}
	}
}
