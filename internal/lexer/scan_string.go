package lexer

import (
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// stringKind описывает литерал: кавычка, тройная ли, raw, f-string.
type stringKind struct {
	quote  byte
	triple bool
	raw    bool
	format bool
}

func (sk stringKind) tripleQuote() string {
	if sk.quote == '"' {
		return `"""`
	}
	return "'''"
}

// isStringPrefix: стоит ли на курсоре допустимый префикс (r, u, b, f, br, rb, fr, rf в любом регистре) перед кавычкой?
func (lx *Lexer) isStringPrefix() bool {
	_, _, ok := lx.prefixAt(lx.cursor.Off)
	return ok
}

// prefixAt возвращает длину префикса и флаги raw/format, если за ним сразу кавычка.
func (lx *Lexer) prefixAt(off uint32) (n uint32, sk stringKind, ok bool) {
	content := lx.file.Content[:lx.cursor.End()]
	var seen [4]bool // r b u f
	for i := off; i < uint32(len(content)) && i-off < 3; i++ {
		c := content[i] | 0x20 // lower
		idx := -1
		switch {
		case content[i] == '\'' || content[i] == '"':
			n = i - off
			if n == 0 || (seen[2] && n > 1) || (seen[1] && seen[3]) {
				return 0, stringKind{}, false
			}
			return n, sk, true
		case c == 'r':
			idx = 0
			sk.raw = true
		case c == 'b':
			idx = 1
		case c == 'u':
			idx = 2
		case c == 'f':
			idx = 3
			sk.format = true
		}
		if idx < 0 || seen[idx] {
			return 0, stringKind{}, false
		}
		seen[idx] = true
	}
	return 0, stringKind{}, false
}

// scanString сканирует строковый литерал вместе с префиксом.
// Многострочные строки и f-строки с вложенными выражениями: один токен STRING.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	n, sk, ok := lx.prefixAt(lx.cursor.Off)
	if !ok {
		n = 0
	}
	lx.cursor.Off += n
	if !lx.openQuote(&sk) || !lx.scanStringBody(sk) {
		sp := lx.cursor.SpanFrom(start)
		msg := "unterminated string literal"
		if sk.triple {
			msg = "unterminated triple-quoted string literal"
		}
		lx.errLex(diag.LexUnterminatedString, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) openQuote(sk *stringKind) bool {
	q := lx.cursor.Peek()
	if q != '\'' && q != '"' {
		return false
	}
	sk.quote = q
	sk.triple = lx.cursor.EatString(sk.tripleQuote())
	if !sk.triple {
		lx.cursor.Bump()
	}
	return true
}

// scanStringBody читает тело до закрывающей кавычки включительно.
func (lx *Lexer) scanStringBody(sk stringKind) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.skipEscape(sk)
		case b == sk.quote:
			if !sk.triple {
				lx.cursor.Bump()
				return true
			}
			if lx.cursor.EatString(sk.tripleQuote()) {
				return true
			}
			lx.cursor.Bump()
		case isLineBreak(b):
			if !sk.triple {
				return false
			}
			lx.bumpLineBreak()
		case b == '{' && sk.format:
			if lx.cursor.EatString("{{") {
				continue
			}
			lx.cursor.Bump()
			if !lx.scanReplacementField(sk) {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipEscape съедает символ после '\'. В f-строке '{' не экранируется.
func (lx *Lexer) skipEscape(sk stringKind) {
	if lx.cursor.EOF() {
		return
	}
	switch b := lx.cursor.Peek(); {
	case isLineBreak(b):
		lx.bumpLineBreak()
	case b == '{' && sk.format:
	case b == 'N' && sk.format && !sk.raw:
		// \N{NAME}: фигурные скобки часть escape, а не поле
		lx.cursor.Bump()
		if lx.cursor.Eat('{') {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '}' && lx.cursor.Peek() != sk.quote && !isLineBreak(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.cursor.Eat('}')
		}
	default:
		lx.bumpRune()
	}
}

// scanReplacementField читает выражение f-строки после '{' до парной '}'.
// Вложенные строки и спецификация формата с полями поддерживаются.
func (lx *Lexer) scanReplacementField(outer stringKind) bool {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\'' || b == '"' || (isIdentStartByte(b) && lx.isStringPrefix()):
			// кавычка внешней однострочной строки без вложенности закрывает её в <3.12;
			// в 3.12 это вложенная строка, так и читаем
			n, sk, _ := lx.prefixAt(lx.cursor.Off)
			lx.cursor.Off += n
			if !lx.openQuote(&sk) || !lx.scanStringBody(sk) {
				return false
			}
		case isIdentStartByte(b):
			for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case b == '(' || b == '[' || b == '{':
			depth++
			lx.cursor.Bump()
		case b == ')' || b == ']':
			depth--
			lx.cursor.Bump()
		case b == '}':
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
			depth--
		case b == ':' && depth == 0:
			lx.cursor.Bump()
			return lx.scanFormatSpec(outer)
		case b == '#':
			// комментарий внутри поля допустим только в тройной f-строке
			for !lx.cursor.EOF() && !isLineBreak(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		case isLineBreak(b):
			lx.bumpLineBreak()
		default:
			lx.bumpRune()
		}
	}
	return false
}

// scanFormatSpec читает спецификацию формата до '}', разрешая вложенные поля.
func (lx *Lexer) scanFormatSpec(outer stringKind) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '}':
			lx.cursor.Bump()
			return true
		case b == '{':
			lx.cursor.Bump()
			if !lx.scanReplacementField(outer) {
				return false
			}
		case b == outer.quote && !outer.triple:
			return false
		case isLineBreak(b):
			if !outer.triple {
				return false
			}
			lx.bumpLineBreak()
		case b == '\\':
			lx.cursor.Bump()
			lx.skipEscape(outer)
		default:
			lx.bumpRune()
		}
	}
	return false
}
