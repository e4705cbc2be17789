package parser

import (
	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// parseFile: основной цикл верхнего уровня: пока не EOF: parseStatement.
func (p *Parser) parseFile() *cst.Node {
	var elems []cst.Element
	for !p.at(token.EOF) {
		if p.at(token.Indent) {
			p.fail(diag.SynUnexpectedIndent, "unexpected indent")
		}
		elems = append(elems, p.parseStatement())
	}
	elems = append(elems, p.advance())
	return node(cst.File, elems...)
}

// parseStatement выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStatement() *cst.Node {
	switch p.peek().Kind {
	case token.At:
		return p.parseDecorated()
	case token.KwDef:
		return p.parseFuncDef(nil)
	case token.KwClass:
		return p.parseClassDef(nil)
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor(nil)
	case token.KwTry:
		return p.parseTry()
	case token.KwWith:
		return p.parseWith(nil)
	case token.KwAsync:
		return p.parseAsyncStmt()
	case token.Name:
		if p.atName("match") {
			if m := p.tryParseMatch(); m != nil {
				return m
			}
		}
	case token.Dedent:
		p.fail(diag.SynUnexpectedToken, "unexpected dedent")
	}
	return p.parseSimpleLine()
}

func (p *Parser) parseAsyncStmt() *cst.Node {
	kw := p.advance()
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef([]cst.Element{kw})
	case token.KwFor:
		return p.parseFor(kw)
	case token.KwWith:
		return p.parseWith(kw)
	}
	p.fail(diag.SynInvalidAsync, "expected 'def', 'for' or 'with' after 'async'")
	return nil
}

// parseSimpleLine: small_stmt (';' small_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleLine() *cst.Node {
	elems := []cst.Element{p.parseSmallStmt()}
	for p.at(token.Semicolon) {
		elems = append(elems, p.advance())
		if p.at(token.Newline) {
			break
		}
		elems = append(elems, p.parseSmallStmt())
	}
	if !p.at(token.Newline) {
		p.unexpected("end of statement")
	}
	elems = append(elems, p.advance())
	return node(cst.SimpleLine, elems...)
}

func (p *Parser) parseSmallStmt() *cst.Node {
	switch p.peek().Kind {
	case token.KwPass:
		return node(cst.Pass, p.advance())
	case token.KwBreak:
		return node(cst.Break, p.advance())
	case token.KwContinue:
		return node(cst.Continue, p.advance())
	case token.KwReturn:
		kw := p.advance()
		if p.atExprStart() || p.at(token.Star) {
			return node(cst.Return, kw, p.parseStarExpressions())
		}
		return node(cst.Return, kw)
	case token.KwRaise:
		return p.parseRaise()
	case token.KwGlobal:
		return p.parseNameList(cst.Global)
	case token.KwNonlocal:
		return p.parseNameList(cst.Nonlocal)
	case token.KwDel:
		kw := p.advance()
		targets := p.parseStarExpressions()
		p.checkTarget(targets, false)
		return node(cst.Del, kw, targets)
	case token.KwAssert:
		kw := p.advance()
		elems := []cst.Element{kw, p.parseExpr()}
		if p.at(token.Comma) {
			elems = append(elems, p.advance(), p.parseExpr())
		}
		return node(cst.Assert, elems...)
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	case token.Name:
		if p.atTypeAlias() {
			return p.parseTypeAlias()
		}
	}
	return p.parseExprStmt()
}

// parseRaise: 'raise' [expr ['from' expr]]
func (p *Parser) parseRaise() *cst.Node {
	elems := []cst.Element{p.advance()}
	if p.atExprStart() {
		elems = append(elems, p.parseExpr())
		if p.at(token.KwFrom) {
			elems = append(elems, p.advance(), p.parseExpr())
		}
	}
	return node(cst.Raise, elems...)
}

func (p *Parser) parseNameList(kind cst.Kind) *cst.Node {
	elems := []cst.Element{p.advance()}
	elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name"))
	for p.at(token.Comma) {
		elems = append(elems, p.advance())
		elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name"))
	}
	return node(kind, elems...)
}

// atTypeAlias: soft keyword 'type' в начале оператора: type X = ... / type X[T] = ...
func (p *Parser) atTypeAlias() bool {
	if !p.atName("type") || p.peekN(1).Kind != token.Name {
		return false
	}
	next := p.peekN(2).Kind
	return next == token.Assign || next == token.LBracket
}

func (p *Parser) parseTypeAlias() *cst.Node {
	elems := []cst.Element{p.advance(), p.advance()}
	if p.at(token.LBracket) {
		elems = append(elems, p.parseTypeParams())
	}
	elems = append(elems, p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"))
	elems = append(elems, p.parseExpr())
	return node(cst.TypeAlias, elems...)
}

// parseExprStmt разбирает выражение и, если дальше '=', ':' или 'op=', присваивание.
func (p *Parser) parseExprStmt() *cst.Node {
	if !p.atExprStart() && !p.at_or(token.Star, token.KwYield) {
		p.unexpected("statement")
	}
	first := p.parseYieldOrStar()
	switch {
	case p.at(token.Colon):
		p.checkTarget(first, true)
		colon := p.advance()
		elems := []cst.Element{first, colon, p.parseExpr()}
		if p.at(token.Assign) {
			elems = append(elems, p.advance(), p.parseYieldOrStar())
		}
		return node(cst.AnnAssign, elems...)
	case p.peek().Kind.IsAugAssign():
		p.checkTarget(first, true)
		op := p.advance()
		return node(cst.AugAssign, first, op, p.parseYieldOrStar())
	case p.at(token.Assign):
		elems := []cst.Element{first}
		for p.at(token.Assign) {
			p.checkTarget(elems[len(elems)-1].(*cst.Node), false)
			elems = append(elems, p.advance(), p.parseYieldOrStar())
		}
		return node(cst.Assign, elems...)
	}
	return node(cst.ExprStmt, first)
}

// parseImport: 'import' dotted ['as' NAME] (',' ...)*
func (p *Parser) parseImport() *cst.Node {
	elems := []cst.Element{p.advance(), p.parseImportAlias(true)}
	for p.at(token.Comma) {
		elems = append(elems, p.advance(), p.parseImportAlias(true))
	}
	return node(cst.Import, elems...)
}

// parseImportFrom: 'from' ('.'|'...')* [dotted] 'import' ('*' | '(' names ')' | names)
func (p *Parser) parseImportFrom() *cst.Node {
	elems := []cst.Element{p.advance()}
	dots := 0
	for p.at_or(token.Dot, token.Ellipsis) {
		elems = append(elems, p.advance())
		dots++
	}
	if !p.at(token.KwImport) || dots == 0 {
		elems = append(elems, p.parseDottedName())
	}
	elems = append(elems, p.expect(token.KwImport, diag.SynExpectImport, "expected 'import'"))
	switch {
	case p.at(token.Star):
		elems = append(elems, p.advance())
	case p.at(token.LParen):
		elems = append(elems, p.advance())
		elems = append(elems, p.parseImportAlias(false))
		for p.at(token.Comma) {
			elems = append(elems, p.advance())
			if p.at(token.RParen) {
				break
			}
			elems = append(elems, p.parseImportAlias(false))
		}
		elems = append(elems, p.expect(token.RParen, diag.SynExpectRParen, "expected ')' to close the import list"))
	default:
		elems = append(elems, p.parseImportAlias(false))
		for p.at(token.Comma) {
			elems = append(elems, p.advance(), p.parseImportAlias(false))
		}
	}
	return node(cst.ImportFrom, elems...)
}

// parseImportAlias: DottedName ['as' NAME]; в from-import имя всегда одно.
func (p *Parser) parseImportAlias(dotted bool) *cst.Node {
	var path *cst.Node
	if dotted {
		path = p.parseDottedName()
	} else {
		path = node(cst.DottedName, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name to import"))
	}
	elems := []cst.Element{path}
	if p.at(token.KwAs) {
		elems = append(elems, p.advance())
		elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after 'as'"))
	}
	return node(cst.ImportAlias, elems...)
}

func (p *Parser) parseDottedName() *cst.Node {
	elems := []cst.Element{p.expect(token.Name, diag.SynExpectIdentifier, "expected a module name")}
	for p.at(token.Dot) {
		elems = append(elems, p.advance())
		elems = append(elems, p.expect(token.Name, diag.SynExpectIdentifier, "expected a name after '.'"))
	}
	return node(cst.DottedName, elems...)
}
