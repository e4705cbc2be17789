package lexer

import (
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - BOM в начале файла -> TriviaBOM
//   - ' ', '\t', '\f' коалесцируются в один TriviaSpace
//   - '#' до конца строки -> TriviaComment (перевод строки не входит)
//   - '\' + перевод строки -> TriviaContinuation
//   - перевод строки внутри скобок или на пустой строке -> TriviaNewline
//
// Перевод строки, завершающий логическую строку, не трогаем: его заберёт Next как NEWLINE.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if lx.cursor.Off == 0 && lx.isBOM() {
			lx.cursor.Off += 3
			lx.lineStart = lx.cursor.Off
			lx.pushTrivia(token.TriviaBOM, start)
			continue
		}

		switch {
		case b == ' ' || b == '\t' || b == '\f':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '#':
			for !lx.cursor.EOF() && !isLineBreak(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaComment, start)
			continue

		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || !isLineBreak(lx.cursor.Peek()) {
				lx.cursor.Reset(start)
				return // пусть Next выдаст Invalid
			}
			lx.bumpLineBreak()
			lx.pushTrivia(token.TriviaContinuation, start)
			continue

		case isLineBreak(b):
			if !lx.atBOL && len(lx.brackets) == 0 {
				return
			}
			// пустые строки подряд коалесцируем
			for isLineBreak(lx.cursor.Peek()) {
				lx.bumpLineBreak()
			}
			lx.lineStart = lx.cursor.Off
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		// нет больше trivia
		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanStrayBackslash выдаёт Invalid для '\', за которым нет перевода строки.
func (lx *Lexer) scanStrayBackslash() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadContinuation, sp, "unexpected character after line continuation character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) isBOM() bool {
	return lx.cursor.HasPrefix("\xEF\xBB\xBF")
}

func isLineBreak(b byte) bool { return b == '\n' || b == '\r' }

// bumpLineBreak съедает "\n", "\r\n" или одиночный "\r".
func (lx *Lexer) bumpLineBreak() {
	if lx.cursor.Eat('\r') {
		lx.cursor.Eat('\n')
		return
	}
	lx.cursor.Eat('\n')
}
