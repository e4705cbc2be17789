package parser

import (
	"slices"

	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

func (p *Parser) peek() token.Token { return p.peekN(0) }

// peekN смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atName: soft keywords (match, case, type, _) приходят как NAME.
func (p *Parser) atName(text string) bool {
	t := p.peek()
	return t.Kind == token.Name && t.Text == text
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() *cst.Leaf {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Text != "" {
		p.lastSpan = tok.Span
	}
	return cst.NewLeaf(tok)
}

// expect: ожидаем конкретный токен, иначе прерываем разбор.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *cst.Leaf {
	if !p.at(k) {
		p.fail(code, msg)
	}
	return p.advance()
}

// getDiagnosticSpan: для пустых структурных токенов (NEWLINE в конце файла,
// DEDENT, EOF) указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Text == "" && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) fail(code diag.Code, msg string) {
	p.failAt(p.getDiagnosticSpan(), code, msg)
}

func (p *Parser) failAt(sp source.Span, code diag.Code, msg string) {
	panic(bailout{code: code, span: sp, msg: msg})
}

// unexpected сообщает о лишнем токене с его текстом.
func (p *Parser) unexpected(what string) {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF:
		p.fail(diag.SynUnexpectedEOF, "unexpected end of file, expected "+what)
	case token.Newline:
		p.fail(diag.SynUnexpectedToken, "unexpected end of line, expected "+what)
	case token.Indent:
		p.fail(diag.SynUnexpectedIndent, "unexpected indent")
	case token.Dedent:
		p.fail(diag.SynUnexpectedToken, "unexpected dedent, expected "+what)
	default:
		p.fail(diag.SynUnexpectedToken, "unexpected '"+tok.Text+"', expected "+what)
	}
}

// speculate пробует разобрать конструкцию; при ошибке откатывает позицию
// и возвращает false. Диагностики не выпускаются.
func (p *Parser) speculate(fn func()) (ok bool) {
	save, saveSpan := p.pos, p.lastSpan
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.pos, p.lastSpan = save, saveSpan
			ok = false
		}
	}()
	fn()
	return true
}

// atExprStart: может ли текущий токен начинать выражение.
func (p *Parser) atExprStart() bool {
	switch p.peek().Kind {
	case token.Name, token.Number, token.String,
		token.KwTrue, token.KwFalse, token.KwNone,
		token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Plus, token.Tilde, token.Ellipsis,
		token.KwNot, token.KwLambda, token.KwAwait:
		return true
	}
	return false
}

func (p *Parser) atCompFor() bool {
	return p.at(token.KwFor) || (p.at(token.KwAsync) && p.peekN(1).Kind == token.KwFor)
}

func node(k cst.Kind, elems ...cst.Element) *cst.Node { return cst.NewNode(k, elems...) }
