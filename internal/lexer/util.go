package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune декодирует руну под курсором; size 0 на EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		if lx.cursor.EOF() {
			return utf8.RuneError, 0
		}
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Off += uint32(sz) //nolint:gosec // sz <= utf8.UTFMax
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

// Python identifiers: XID_Start / XID_Continue, approximated with the
// unicode tables available in the standard library.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Other_ID_Continue)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool { return isDec(b) || (b|0x20 >= 'a' && b|0x20 <= 'f') }

// ".5" is a number, "." followed by anything else is an attribute dot.
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))
}
