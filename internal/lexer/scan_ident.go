package lexer

import (
	"unicode/utf8"

	"cocomig/internal/diag"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует NAME и проверяет через LookupKeyword.
// Soft keywords остаются NAME. Token.Text: ровно исходный срез, без NFKC.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	// Первый символ: ASCII fast-path или Unicode
	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			if r == utf8.RuneError && sz == 1 {
				lx.errLex(diag.LexBadEncoding, sp, "invalid UTF-8 byte in source")
			} else {
				lx.errLex(diag.LexUnknownChar, sp, "invalid character '"+string(r)+"'")
			}
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		return lx.tooLong(sp)
	}
	text := lx.text(sp)

	// Проверка на ключевое слово (регистрозависимо)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Name, Span: sp, Text: text}
}

// tooLong репортит слишком длинный токен и прекращает лексинг файла.
func (lx *Lexer) tooLong(sp source.Span) token.Token {
	lx.errLex(diag.LexTokenTooLong, sp, "token exceeds maximum length")
	lx.cursor.SkipToEnd()
	lx.halted = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
