package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// parseStarExpressions: выражения через запятую без скобок -> Tuple.
// Используется в return, в правой части присваивания и в выражениях-операторах.
func (p *Parser) parseStarExpressions() *cst.Node {
	first := p.parseStarExpr()
	if !p.at(token.Comma) {
		return first
	}
	elems := []cst.Element{first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if !p.atExprStart() && !p.at(token.Star) {
			break
		}
		elems = append(elems, p.parseStarExpr())
	}
	return node(cst.Tuple, elems...)
}

func (p *Parser) parseStarExpr() *cst.Node {
	if p.at(token.Star) {
		star := p.advance()
		return node(cst.Starred, star, p.parseBitOr())
	}
	return p.parseExpr()
}

// parseStarNamedExpr: элемент списков, кортежей и множеств.
func (p *Parser) parseStarNamedExpr() *cst.Node {
	if p.at(token.Star) {
		star := p.advance()
		return node(cst.Starred, star, p.parseBitOr())
	}
	return p.parseNamedExpr()
}

// parseYieldOrStar: правая часть присваивания.
func (p *Parser) parseYieldOrStar() *cst.Node {
	if p.at(token.KwYield) {
		return p.parseYieldExpr()
	}
	return p.parseStarExpressions()
}

func (p *Parser) parseYieldExpr() *cst.Node {
	kw := p.advance()
	if p.at(token.KwFrom) {
		from := p.advance()
		return node(cst.YieldFrom, kw, from, p.parseExpr())
	}
	if p.atExprStart() || p.at(token.Star) {
		return node(cst.Yield, kw, p.parseStarExpressions())
	}
	return node(cst.Yield, kw)
}

// parseNamedExpr: NAME ':=' expr | expr
func (p *Parser) parseNamedExpr() *cst.Node {
	if p.at(token.Name) && p.peekN(1).Kind == token.ColonAssign {
		name := node(cst.Name, p.advance())
		op := p.advance()
		return node(cst.NamedExpr, name, op, p.parseExpr())
	}
	return p.parseExpr()
}

// parseExpr: lambda | disjunction ['if' disjunction 'else' expr]
func (p *Parser) parseExpr() *cst.Node {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	body := p.parseDisjunction()
	if !p.at(token.KwIf) {
		return body
	}
	kwIf := p.advance()
	cond := p.parseDisjunction()
	kwElse := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in conditional expression")
	return node(cst.Conditional, body, kwIf, cond, kwElse, p.parseExpr())
}

// parseExprNoCond: выражение без условной формы (итерируемое в comprehension).
func (p *Parser) parseExprNoCond() *cst.Node {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	return p.parseDisjunction()
}

func (p *Parser) parseDisjunction() *cst.Node {
	return p.parseBoolChain(token.KwOr, p.parseConjunction)
}

func (p *Parser) parseConjunction() *cst.Node {
	return p.parseBoolChain(token.KwAnd, p.parseInversion)
}

// parseBoolChain собирает a or b or c в один плоский BoolOp.
func (p *Parser) parseBoolChain(op token.Kind, operand func() *cst.Node) *cst.Node {
	first := operand()
	if !p.at(op) {
		return first
	}
	elems := []cst.Element{first}
	for p.at(op) {
		elems = append(elems, p.advance(), operand())
	}
	return node(cst.BoolOp, elems...)
}

func (p *Parser) parseInversion() *cst.Node {
	if p.at(token.KwNot) {
		kw := p.advance()
		return node(cst.Not, kw, p.parseInversion())
	}
	return p.parseComparison()
}

// parseComparison: цепочка сравнений a < b <= c одним узлом Compare.
func (p *Parser) parseComparison() *cst.Node {
	first := p.parseBitOr()
	elems := []cst.Element{first}
	for {
		switch {
		case p.at(token.KwNot) && p.peekN(1).Kind == token.KwIn:
			elems = append(elems, p.advance(), p.advance())
		case p.at(token.KwIs) && p.peekN(1).Kind == token.KwNot:
			elems = append(elems, p.advance(), p.advance())
		case isCompareOp(p.peek().Kind):
			elems = append(elems, p.advance())
		default:
			if len(elems) == 1 {
				return first
			}
			return node(cst.Compare, elems...)
		}
		elems = append(elems, p.parseBitOr())
	}
}

func (p *Parser) parseBitOr() *cst.Node {
	return p.parseBinaryExpr(precBitwiseOr)
}

// parseBinaryExpr: разбор по приоритетам, minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) *cst.Node {
	left := p.parseUnaryExpr()
	for {
		prec := getBinaryOperatorPrec(p.peek().Kind)
		if prec < minPrec {
			return left
		}
		op := p.advance()
		right := p.parseBinaryExpr(prec + 1)
		left = node(cst.Binary, left, op, right)
	}
}

func (p *Parser) parseUnaryExpr() *cst.Node {
	if p.at_or(token.Plus, token.Minus, token.Tilde) {
		op := p.advance()
		return node(cst.Unary, op, p.parseUnaryExpr())
	}
	return p.parsePower()
}

// parsePower: await_primary ['**' factor]; '**' правоассоциативен и сильнее унарного минуса слева.
func (p *Parser) parsePower() *cst.Node {
	base := p.parseAwaitPrimary()
	if !p.at(token.StarStar) {
		return base
	}
	op := p.advance()
	return node(cst.Binary, base, op, p.parseUnaryExpr())
}

func (p *Parser) parseAwaitPrimary() *cst.Node {
	if p.at(token.KwAwait) {
		kw := p.advance()
		return node(cst.Await, kw, p.parsePrimary())
	}
	return p.parsePrimary()
}

// parseLambda: 'lambda' [params] ':' expr
func (p *Parser) parseLambda() *cst.Node {
	elems := []cst.Element{p.advance()}
	if !p.at(token.Colon) {
		elems = append(elems, p.parseParamList(token.Colon, false))
	}
	elems = append(elems, p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lambda parameters"))
	elems = append(elems, p.parseExpr())
	return node(cst.Lambda, elems...)
}

// parseTargetList: цели for и comprehension: до 'in', без сравнений.
func (p *Parser) parseTargetList() *cst.Node {
	item := func() *cst.Node {
		if p.at(token.Star) {
			star := p.advance()
			return node(cst.Starred, star, p.parseBitOr())
		}
		return p.parseBitOr()
	}
	first := item()
	if !p.at(token.Comma) {
		p.checkTarget(first, false)
		return first
	}
	elems := []cst.Element{first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if !p.atExprStart() && !p.at(token.Star) {
			break
		}
		elems = append(elems, item())
	}
	t := node(cst.Tuple, elems...)
	p.checkTarget(t, false)
	return t
}

// checkTarget проверяет, что выражение может стоять слева от '='.
func (p *Parser) checkTarget(n *cst.Node, aug bool) {
	switch n.Kind {
	case cst.Name, cst.Attribute, cst.Subscript:
		return
	case cst.Paren:
		if inner := n.Nodes(); len(inner) == 1 {
			p.checkTarget(inner[0], aug)
			return
		}
	case cst.Tuple, cst.List:
		if !aug {
			for _, c := range n.Nodes() {
				p.checkTarget(c, false)
			}
			return
		}
	case cst.Starred:
		if !aug {
			p.checkTarget(n.Nodes()[0], false)
			return
		}
	}
	p.failAt(n.Span(), diag.SynInvalidTarget, "cannot assign to "+targetWhat(n.Kind))
}

func targetWhat(k cst.Kind) string {
	switch k {
	case cst.Call:
		return "function call"
	case cst.Literal, cst.StringConcat, cst.Ellipsis:
		return "literal"
	case cst.Tuple, cst.List, cst.Starred:
		return "unpacking in augmented assignment"
	case cst.Yield, cst.YieldFrom:
		return "yield expression"
	case cst.Await:
		return "await expression"
	case cst.Lambda:
		return "lambda"
	default:
		return "expression"
	}
}
