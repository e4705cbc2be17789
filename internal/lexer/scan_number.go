package lexer

import (
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1., .5, 1e-3, 1.0e+10, 3j, 1.5J.
// Неверные формы: репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// ведущая точка: значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		lx.eatDigits(isDec)
		return lx.numberTail(start)
	}

	// ведущий 0 и база?
	if digit := lx.radixDigit(); digit != nil {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !digit(lx.cursor.Peek()) && lx.cursor.Peek() != '_' {
			return lx.badNumber(start, "invalid literal: missing digits after base prefix")
		}
		lx.eatDigits(digit)
		return lx.finishNumber(start)
	}

	// десятичная целая часть
	lx.eatDigits(isDec)

	// дробная часть; "1." допустимо
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			lx.eatDigits(isDec)
		}
	}
	return lx.numberTail(start)
}

// numberTail дочитывает экспоненту и мнимый суффикс.
func (lx *Lexer) numberTail(start Mark) token.Token {
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		lx.cursor.Bump() // e/E
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "invalid float literal: expected digit after exponent")
		}
		lx.eatDigits(isDec)
	}
	if lx.cursor.Peek() == 'j' || lx.cursor.Peek() == 'J' {
		lx.cursor.Bump()
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		return lx.tooLong(sp)
	}
	text := lx.text(sp)
	if text[len(text)-1] == '_' {
		lx.errLex(diag.LexBadNumber, sp, "invalid decimal literal: trailing underscore")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	// "1if x else y" легально, а "1abc": нет
	if b := lx.cursor.Peek(); isIdentStartByte(b) && !lx.atKeywordAfterNumber() {
		return lx.badNumber(start, "invalid decimal literal")
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text}
}

// atKeywordAfterNumber допускает ключевые слова сразу после числа (0if, 1or, 2and ...).
func (lx *Lexer) atKeywordAfterNumber() bool {
	m := lx.cursor.Mark()
	defer lx.cursor.Reset(m)
	for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	k, ok := token.LookupKeyword(string(lx.file.Content[m:lx.cursor.Off]))
	if !ok {
		return false
	}
	switch k {
	case token.KwAnd, token.KwOr, token.KwIf, token.KwElse, token.KwIn, token.KwIs, token.KwNot, token.KwFor:
		return true
	}
	return false
}

// badNumber поглощает хвост идентификатора и возвращает Invalid.
func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if lx.cursor.EOF() || (!digit(b) && b != '_') {
			return
		}
		lx.cursor.Bump()
	}
}

// radixDigit returns the digit class for a 0b/0o/0x prefix under the cursor.
func (lx *Lexer) radixDigit() func(byte) bool {
	if lx.cursor.Peek() != '0' {
		return nil
	}
	switch lx.cursor.PeekAt(1) | 0x20 {
	case 'b':
		return func(b byte) bool { return b == '0' || b == '1' }
	case 'o':
		return func(b byte) bool { return b >= '0' && b <= '7' }
	case 'x':
		return isHex
	}
	return nil
}
