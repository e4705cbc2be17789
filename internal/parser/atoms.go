package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

func (p *Parser) parseAtom() *cst.Node {
	switch p.peek().Kind {
	case token.Name:
		return node(cst.Name, p.advance())
	case token.Number, token.KwTrue, token.KwFalse, token.KwNone:
		return node(cst.Literal, p.advance())
	case token.String:
		first := p.advance()
		if !p.at(token.String) {
			return node(cst.Literal, first)
		}
		// неявная конкатенация "a" "b"
		elems := []cst.Element{first}
		for p.at(token.String) {
			elems = append(elems, p.advance())
		}
		return node(cst.StringConcat, elems...)
	case token.Ellipsis:
		return node(cst.Ellipsis, p.advance())
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	}
	if p.at(token.KwYield) {
		p.fail(diag.SynExpectExpression, "'yield' outside parentheses must start a statement or assignment value")
	}
	p.fail(diag.SynExpectExpression, p.expectExprMessage())
	return nil
}

func (p *Parser) expectExprMessage() string {
	tok := p.peek()
	switch tok.Kind {
	case token.Newline, token.EOF, token.Dedent, token.Indent:
		return "expected expression"
	}
	return "expected expression, got '" + tok.Text + "'"
}

// parseParenAtom: () | (yield) | (genexp) | (tuple,) | (expr)
func (p *Parser) parseParenAtom() *cst.Node {
	open := p.advance()
	closeParen := func() *cst.Leaf {
		return p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
	}
	if p.at(token.RParen) {
		return node(cst.Tuple, open, p.advance())
	}
	if p.at(token.KwYield) {
		y := p.parseYieldExpr()
		return node(cst.Paren, open, y, closeParen())
	}
	first := p.parseStarNamedExpr()
	if p.atCompFor() {
		elems := append([]cst.Element{open, first}, p.parseCompClauses()...)
		return node(cst.Comprehension, append(elems, closeParen())...)
	}
	if !p.at(token.Comma) {
		return node(cst.Paren, open, first, closeParen())
	}
	elems := []cst.Element{open, first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if p.at(token.RParen) {
			break
		}
		elems = append(elems, p.parseStarNamedExpr())
	}
	return node(cst.Tuple, append(elems, closeParen())...)
}

// parseListAtom: [] | [a, *b] | [x for ...]
func (p *Parser) parseListAtom() *cst.Node {
	open := p.advance()
	closeBracket := func() *cst.Leaf {
		return p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']'")
	}
	if p.at(token.RBracket) {
		return node(cst.List, open, p.advance())
	}
	first := p.parseStarNamedExpr()
	if p.atCompFor() {
		elems := append([]cst.Element{open, first}, p.parseCompClauses()...)
		return node(cst.Comprehension, append(elems, closeBracket())...)
	}
	elems := []cst.Element{open, first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if p.at(token.RBracket) {
			break
		}
		elems = append(elems, p.parseStarNamedExpr())
	}
	return node(cst.List, append(elems, closeBracket())...)
}

// parseBraceAtom: dict или set, включая распаковку и comprehension.
func (p *Parser) parseBraceAtom() *cst.Node {
	open := p.advance()
	closeBrace := func() *cst.Leaf {
		return p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	}
	if p.at(token.RBrace) {
		return node(cst.Dict, open, p.advance())
	}
	first, isDict := p.parseDictOrSetItem()
	if p.atCompFor() {
		if first.Kind == cst.Starred {
			p.failAt(first.Span(), diag.SynUnexpectedToken, "unpacking cannot be used in a comprehension")
		}
		elems := append([]cst.Element{open, first}, p.parseCompClauses()...)
		return node(cst.Comprehension, append(elems, closeBrace())...)
	}
	elems := []cst.Element{open, first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if p.at(token.RBrace) {
			break
		}
		item, dictItem := p.parseDictOrSetItem()
		if dictItem != isDict {
			p.failAt(item.Span(), diag.SynUnexpectedToken, "cannot mix dict and set items")
		}
		elems = append(elems, item)
	}
	kind := cst.Set
	if isDict {
		kind = cst.Dict
	}
	return node(kind, append(elems, closeBrace())...)
}

func (p *Parser) parseDictOrSetItem() (*cst.Node, bool) {
	switch {
	case p.at(token.StarStar):
		op := p.advance()
		return node(cst.Starred, op, p.parseBitOr()), true
	case p.at(token.Star):
		op := p.advance()
		return node(cst.Starred, op, p.parseBitOr()), false
	}
	key := p.parseNamedExpr()
	if !p.at(token.Colon) {
		return key, false
	}
	colon := p.advance()
	return node(cst.KeyValue, key, colon, p.parseExpr()), true
}
