package lexer

import (
	"cocomig/internal/diag"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

// maxTokenLength ограничивает длину имён и чисел; строки не ограничены.
const maxTokenLength = 1 << 16

// indentLevel хранит ширину отступа в двух системах: tab=8 и tab=1.
// Если сравнения расходятся, табы и пробелы смешаны неоднозначно.
type indentLevel struct {
	col int
	alt int
}

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token   // 1 элементный буфер для токена
	hold    []token.Trivia // накопленные leading trivia
	pending []token.Token  // INDENT/DEDENT и первый токен строки, ждущие выдачи

	indents   []indentLevel
	brackets  []token.Token // открытые скобки
	lineStart uint32        // начало текущей физической строки
	atBOL     bool          // ждём первый токен логической строки
	sawToken  bool          // была ли хоть одна логическая строка
	halted    bool          // после фатальной ошибки выдаём только EOF
	done      bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		indents: []indentLevel{{}},
		atBOL:   true,
	}
}

// Tokenize прогоняет лексер до EOF включительно.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next возвращает следующий токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.halted || lx.cursor.EOF() {
		return lx.finish()
	}

	// Логический конец строки: перевод строки вне скобок после значимого токена.
	if !lx.atBOL && len(lx.brackets) == 0 && isLineBreak(lx.cursor.Peek()) {
		start := lx.cursor.Mark()
		lx.bumpLineBreak()
		sp := lx.cursor.SpanFrom(start)
		tok := token.Token{Kind: token.Newline, Span: sp, Text: lx.text(sp), Leading: lx.takeHold()}
		lx.atBOL = true
		lx.lineStart = lx.cursor.Off
		return tok
	}

	if lx.atBOL {
		lx.atBOL = false
		lx.sawToken = true
		lx.measureIndent()
	}

	tok := lx.scanToken()
	tok.Leading = lx.takeHold()
	if len(lx.pending) > 0 {
		lx.pending = append(lx.pending, tok)
		tok = lx.pending[0]
		lx.pending = lx.pending[1:]
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '\'' || ch == '"':
		return lx.scanString()
	case isIdentStartByte(ch):
		if lx.isStringPrefix() {
			return lx.scanString()
		}
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '\\':
		return lx.scanStrayBackslash()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// finish закрывает файл: NEWLINE без текста, если последняя строка не
// завершена, DEDENT до нулевого уровня и EOF с хвостовыми trivia.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	for _, open := range lx.brackets {
		lx.errLex(diag.LexUnclosedBracket, open.Span, "'"+open.Text+"' was never closed")
	}
	lx.brackets = nil

	empty := lx.emptySpan()
	if !lx.atBOL && lx.sawToken && !lx.halted {
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: empty, Leading: lx.takeHold()})
		lx.atBOL = true
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: empty})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: empty, Leading: lx.takeHold()})
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

// measureIndent сравнивает отступ текущей строки со стеком и ставит в очередь INDENT/DEDENT.
func (lx *Lexer) measureIndent() {
	cur := lx.indentOf(lx.lineStart, lx.cursor.Off)
	top := lx.indents[len(lx.indents)-1]
	switch {
	case cur.col == top.col:
		if cur.alt != top.alt {
			lx.errLex(diag.LexInconsistentTabs, lx.emptySpan(), "inconsistent use of tabs and spaces in indentation")
		}
	case cur.col > top.col:
		if cur.alt <= top.alt {
			lx.errLex(diag.LexInconsistentTabs, lx.emptySpan(), "inconsistent use of tabs and spaces in indentation")
		}
		lx.indents = append(lx.indents, cur)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.emptySpan()})
	default:
		for len(lx.indents) > 1 && cur.col < lx.indents[len(lx.indents)-1].col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
		}
		top = lx.indents[len(lx.indents)-1]
		if cur.col != top.col {
			lx.errLex(diag.LexInconsistentDedent, lx.emptySpan(), "unindent does not match any outer indentation level")
		} else if cur.alt != top.alt {
			lx.errLex(diag.LexInconsistentTabs, lx.emptySpan(), "inconsistent use of tabs and spaces in indentation")
		}
	}
}

// indentOf считает ширину ведущих пробелов физической строки [from, to).
func (lx *Lexer) indentOf(from, to uint32) indentLevel {
	var lvl indentLevel
	content := lx.file.Content
	if from == 0 && lx.file.Flags&source.FileHasBOM != 0 && len(content) >= 3 {
		from = 3
	}
	for i := from; i < to; i++ {
		switch content[i] {
		case ' ':
			lvl.col++
			lvl.alt++
		case '\t':
			lvl.col = (lvl.col/8 + 1) * 8
			lvl.alt++
		case '\f':
			lvl.col, lvl.alt = 0, 0
		default:
			return lvl
		}
	}
	return lvl
}

func (lx *Lexer) openBracket(tok token.Token) {
	lx.brackets = append(lx.brackets, tok)
}

func (lx *Lexer) closeBracket(tok token.Token) {
	if len(lx.brackets) == 0 {
		lx.errLex(diag.LexUnmatchedBracket, tok.Span, "unmatched '"+tok.Text+"'")
		return
	}
	open := lx.brackets[len(lx.brackets)-1]
	lx.brackets = lx.brackets[:len(lx.brackets)-1]
	if !bracketsMatch(open.Kind, tok.Kind) {
		lx.errLex(diag.LexUnmatchedBracket, tok.Span,
			"closing parenthesis '"+tok.Text+"' does not match opening parenthesis '"+open.Text+"'")
	}
}

func bracketsMatch(open, closing token.Kind) bool {
	switch open {
	case token.LParen:
		return closing == token.RParen
	case token.LBracket:
		return closing == token.RBracket
	case token.LBrace:
		return closing == token.RBrace
	}
	return false
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
