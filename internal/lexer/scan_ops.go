package lexer

import (
	"cocomig/internal/diag"
	"cocomig/internal/token"
)

// multiOps ordered longest first so the match is greedy.
var multiOps = [...]struct {
	text string
	kind token.Kind
}{
	{"...", token.Ellipsis},
	{"**=", token.PowAssign},
	{"//=", token.FloorAssign},
	{">>=", token.ShrAssign},
	{"<<=", token.ShlAssign},
	{"**", token.StarStar},
	{"//", token.SlashSlash},
	{"->", token.Arrow},
	{":=", token.ColonAssign},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"@=", token.AtAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '@': token.At, '&': token.Amp, '|': token.Pipe,
	'^': token.Caret, '~': token.Tilde, '<': token.Lt, '>': token.Gt,
	'=': token.Assign, '!': token.Bang, ':': token.Colon, ';': token.Semicolon,
	',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	for _, op := range multiOps {
		if lx.cursor.EatString(op.text) {
			kind = op.kind
			break
		}
	}
	if kind == token.Invalid {
		kind = singleOps[lx.cursor.Bump()]
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	switch {
	case kind == token.Invalid:
		lx.errLex(diag.LexUnknownChar, sp, "invalid character '"+tok.Text+"'")
	case kind.IsOpenBracket():
		lx.openBracket(tok)
	case kind.IsCloseBracket():
		lx.closeBracket(tok)
	}
	return tok
}
