package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// parseDecorated: ('@' namedexpr NEWLINE)+ (funcdef | classdef)
func (p *Parser) parseDecorated() *cst.Node {
	var decos []cst.Element
	for p.at(token.At) {
		at := p.advance()
		expr := p.parseNamedExpr()
		if !p.at(token.Newline) {
			p.fail(diag.SynInvalidDecorator, "expected a newline after decorator")
		}
		decos = append(decos, node(cst.Decorator, at, expr, p.advance()))
	}
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(decos)
	case token.KwClass:
		return p.parseClassDef(decos)
	case token.KwAsync:
		if p.peekN(1).Kind == token.KwDef {
			return p.parseFuncDef(append(decos, p.advance()))
		}
	}
	p.fail(diag.SynInvalidDecorator, "decorator must be followed by 'def' or 'class'")
	return nil
}

// parseFuncDef: decorators ['async'] 'def' NAME [type_params] params ['->' expr] ':' suite
// prefix уже содержит декораторы и, возможно, 'async'.
func (p *Parser) parseFuncDef(prefix []cst.Element) *cst.Node {
	elems := append(prefix, p.advance())
	elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected function name"))
	if p.at(token.LBracket) {
		elems = append(elems, p.parseTypeParams())
	}
	open := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	params := p.parseParamList(token.RParen, true)
	params.Elems = append([]cst.Element{open}, params.Elems...)
	params.Elems = append(params.Elems, p.expect(token.RParen, diag.SynExpectRParen, "expected ')' to close the parameter list"))
	elems = append(elems, params)
	if p.at(token.Arrow) {
		elems = append(elems, p.advance(), p.parseExpr())
	}
	return node(cst.FuncDef, p.parseBlockTail(elems, "function signature")...)
}

// parseClassDef: decorators 'class' NAME [type_params] [arglist] ':' suite
func (p *Parser) parseClassDef(prefix []cst.Element) *cst.Node {
	elems := append(prefix, p.advance())
	elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected class name"))
	if p.at(token.LBracket) {
		elems = append(elems, p.parseTypeParams())
	}
	if p.at(token.LParen) {
		elems = append(elems, p.parseArgList())
	}
	return node(cst.ClassDef, p.parseBlockTail(elems, "class header")...)
}

// parseParamList разбирает параметры до end (')' для def, ':' для lambda).
// Скобки добавляет вызывающий. Аннотации разрешены только в def.
func (p *Parser) parseParamList(end token.Kind, annotated bool) *cst.Node {
	var elems []cst.Element
	for !p.at(end) {
		elems = append(elems, p.parseParam(annotated))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, p.advance())
	}
	return node(cst.Params, elems...)
}

// parseParam: '/' | '*' [NAME [':' expr]] | '**' NAME [':' expr] | NAME [':' expr] ['=' expr]
func (p *Parser) parseParam(annotated bool) *cst.Node {
	var elems []cst.Element
	switch {
	case p.at(token.Slash):
		return node(cst.Param, p.advance())
	case p.at(token.Star):
		elems = append(elems, p.advance())
		if !p.at(token.Name) {
			return node(cst.Param, elems...)
		}
	case p.at(token.StarStar):
		elems = append(elems, p.advance())
	}
	elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected parameter name"))
	if annotated && p.at(token.Colon) {
		colon := p.advance()
		if p.at(token.Star) {
			// *args: *Ts
			elems = append(elems, colon, p.parseStarExpr())
		} else {
			elems = append(elems, colon, p.parseExpr())
		}
	}
	if p.at(token.Assign) {
		elems = append(elems, p.advance(), p.parseExpr())
	}
	return node(cst.Param, elems...)
}

// parseTypeParams: '[' (NAME [':' expr] ['=' expr] | '*' NAME | '**' NAME) (',' ...)* ']'
func (p *Parser) parseTypeParams() *cst.Node {
	elems := []cst.Element{p.advance()}
	for !p.at(token.RBracket) {
		var param []cst.Element
		if p.at_or(token.Star, token.StarStar) {
			param = append(param, p.advance())
		}
		param = append(param, p.expect(token.Name, diag.SynExpectIdentifier, "expected type parameter name"))
		if p.at(token.Colon) {
			param = append(param, p.advance(), p.parseExpr())
		}
		if p.at(token.Assign) {
			param = append(param, p.advance(), p.parseExpr())
		}
		elems = append(elems, node(cst.Param, param...))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, p.advance())
	}
	elems = append(elems, p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' to close type parameters"))
	return node(cst.TypeParams, elems...)
}
