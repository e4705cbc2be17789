package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// parseSuite: NEWLINE INDENT stmt+ DEDENT | simple_line
func (p *Parser) parseSuite() *cst.Node {
	if !p.at(token.Newline) {
		return node(cst.Suite, p.parseSimpleLine())
	}
	elems := []cst.Element{p.advance()}
	if !p.at(token.Indent) {
		p.fail(diag.SynExpectIndent, "expected an indented block")
	}
	elems = append(elems, p.advance())
	for !p.at_or(token.Dedent, token.EOF) {
		elems = append(elems, p.parseStatement())
	}
	elems = append(elems, p.expect(token.Dedent, diag.SynExpectBlock, "expected end of block"))
	return node(cst.Suite, elems...)
}

// parseBlockTail: ':' suite
func (p *Parser) parseBlockTail(elems []cst.Element, what string) []cst.Element {
	elems = append(elems, p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+what))
	return append(elems, p.parseSuite())
}

func (p *Parser) parseElse() *cst.Node {
	kw := p.advance()
	return node(cst.ElseClause, p.parseBlockTail([]cst.Element{kw}, "'else'")...)
}

// parseIf: 'if' cond ':' suite ('elif' cond ':' suite)* ['else' ':' suite]
func (p *Parser) parseIf() *cst.Node {
	kw := p.advance()
	elems := p.parseBlockTail([]cst.Element{kw, p.parseNamedExpr()}, "'if' condition")
	for p.at(token.KwElif) {
		elif := p.advance()
		clause := p.parseBlockTail([]cst.Element{elif, p.parseNamedExpr()}, "'elif' condition")
		elems = append(elems, node(cst.ElifClause, clause...))
	}
	if p.at(token.KwElse) {
		elems = append(elems, p.parseElse())
	}
	return node(cst.If, elems...)
}

func (p *Parser) parseWhile() *cst.Node {
	kw := p.advance()
	elems := p.parseBlockTail([]cst.Element{kw, p.parseNamedExpr()}, "'while' condition")
	if p.at(token.KwElse) {
		elems = append(elems, p.parseElse())
	}
	return node(cst.While, elems...)
}

// parseFor: ['async'] 'for' targets 'in' exprs ':' suite ['else' ':' suite]
func (p *Parser) parseFor(async *cst.Leaf) *cst.Node {
	var elems []cst.Element
	if async != nil {
		elems = append(elems, async)
	}
	elems = append(elems, p.advance(), p.parseTargetList())
	elems = append(elems, p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' after for-loop targets"))
	elems = append(elems, p.parseStarExpressions())
	elems = p.parseBlockTail(elems, "for-loop header")
	if p.at(token.KwElse) {
		elems = append(elems, p.parseElse())
	}
	return node(cst.For, elems...)
}

// parseTry: 'try' ':' suite (except_clause+ [else] [finally] | finally)
func (p *Parser) parseTry() *cst.Node {
	kw := p.advance()
	elems := p.parseBlockTail([]cst.Element{kw}, "'try'")
	handlers := 0
	for p.at(token.KwExcept) {
		elems = append(elems, p.parseExcept())
		handlers++
	}
	if handlers > 0 && p.at(token.KwElse) {
		elems = append(elems, p.parseElse())
	}
	if p.at(token.KwFinally) {
		fin := p.advance()
		elems = append(elems, node(cst.FinallyClause, p.parseBlockTail([]cst.Element{fin}, "'finally'")...))
	} else if handlers == 0 {
		p.fail(diag.SynExpectExceptClause, "expected 'except' or 'finally' block")
	}
	return node(cst.Try, elems...)
}

// parseExcept: 'except' ['*'] [expr ['as' NAME]] ':' suite
func (p *Parser) parseExcept() *cst.Node {
	elems := []cst.Element{p.advance()}
	if p.at(token.Star) {
		elems = append(elems, p.advance())
	}
	if p.atExprStart() {
		elems = append(elems, p.parseExpr())
		if p.at(token.KwAs) {
			elems = append(elems, p.advance())
			elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after 'as'"))
		}
	}
	return node(cst.ExceptClause, p.parseBlockTail(elems, "'except' clause")...)
}

// parseWith: ['async'] 'with' ('(' items [','] ')' | items) ':' suite
func (p *Parser) parseWith(async *cst.Leaf) *cst.Node {
	var elems []cst.Element
	if async != nil {
		elems = append(elems, async)
	}
	elems = append(elems, p.advance())
	if p.at(token.LParen) {
		var items []cst.Element
		if p.speculate(func() {
			items = []cst.Element{p.advance()}
			items = append(items, p.parseWithItems(token.RParen)...)
			items = append(items, p.expect(token.RParen, diag.SynExpectRParen, "expected ')'"))
			if !p.at(token.Colon) {
				p.fail(diag.SynExpectColon, "expected ':'")
			}
		}) {
			return node(cst.With, p.parseBlockTail(append(elems, items...), "'with' items")...)
		}
	}
	elems = append(elems, p.parseWithItems(token.Colon)...)
	return node(cst.With, p.parseBlockTail(elems, "'with' items")...)
}

func (p *Parser) parseWithItems(end token.Kind) []cst.Element {
	out := []cst.Element{p.parseWithItem()}
	for p.at(token.Comma) {
		out = append(out, p.advance())
		if p.at(end) {
			break
		}
		out = append(out, p.parseWithItem())
	}
	return out
}

// parseWithItem: expr ['as' target]
func (p *Parser) parseWithItem() *cst.Node {
	elems := []cst.Element{p.parseExpr()}
	if p.at(token.KwAs) {
		elems = append(elems, p.advance())
		target := p.parseStarTarget()
		p.checkTarget(target, false)
		elems = append(elems, target)
	}
	return node(cst.WithItem, elems...)
}

func (p *Parser) parseStarTarget() *cst.Node {
	if p.at(token.Star) {
		star := p.advance()
		return node(cst.Starred, star, p.parseBitOr())
	}
	return p.parseBitOr()
}

// tryParseMatch: 'match': soft keyword, поэтому заголовок разбираем спекулятивно.
// При неудаче строка разбирается как обычное выражение (match = 1, match(x)).
func (p *Parser) tryParseMatch() *cst.Node {
	var head []cst.Element
	if !p.speculate(func() {
		head = []cst.Element{p.advance()}
		head = append(head, p.parseSubject())
		head = append(head, p.expect(token.Colon, diag.SynExpectColon, "expected ':'"))
		if !p.at(token.Newline) {
			p.fail(diag.SynExpectCaseBlock, "expected a newline after 'match' header")
		}
	}) {
		return nil
	}
	elems := append(head, p.advance())
	if !p.at(token.Indent) {
		p.fail(diag.SynExpectIndent, "expected an indented block of 'case' clauses")
	}
	elems = append(elems, p.advance())
	for !p.at(token.Dedent) {
		if !p.atName("case") {
			p.fail(diag.SynExpectCaseBlock, "expected 'case' clause")
		}
		elems = append(elems, p.parseCase())
	}
	elems = append(elems, p.advance())
	return node(cst.Match, elems...)
}

// parseSubject: star_named_expression [',' ...]
func (p *Parser) parseSubject() *cst.Node {
	first := p.parseStarNamedExpr()
	if !p.at(token.Comma) {
		return first
	}
	elems := []cst.Element{first}
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		if p.at(token.Colon) {
			break
		}
		elems = append(elems, p.parseStarNamedExpr())
	}
	return node(cst.Tuple, elems...)
}

// parseCase: 'case' patterns ['if' namedexpr] ':' suite
func (p *Parser) parseCase() *cst.Node {
	elems := []cst.Element{p.advance(), p.parseOpenPattern()}
	if p.at(token.KwIf) {
		elems = append(elems, p.advance(), p.parseNamedExpr())
	}
	return node(cst.CaseClause, p.parseBlockTail(elems, "'case' pattern")...)
}
