package token

import "strconv"

var kindNames = [...]string{
	Invalid:       "INVALID",
	EOF:           "EOF",
	Newline:       "NEWLINE",
	Indent:        "INDENT",
	Dedent:        "DEDENT",
	Name:          "NAME",
	Number:        "NUMBER",
	String:        "STRING",
	KwFalse:       "False",
	KwNone:        "None",
	KwTrue:        "True",
	KwAnd:         "and",
	KwAs:          "as",
	KwAssert:      "assert",
	KwAsync:       "async",
	KwAwait:       "await",
	KwBreak:       "break",
	KwClass:       "class",
	KwContinue:    "continue",
	KwDef:         "def",
	KwDel:         "del",
	KwElif:        "elif",
	KwElse:        "else",
	KwExcept:      "except",
	KwFinally:     "finally",
	KwFor:         "for",
	KwFrom:        "from",
	KwGlobal:      "global",
	KwIf:          "if",
	KwImport:      "import",
	KwIn:          "in",
	KwIs:          "is",
	KwLambda:      "lambda",
	KwNonlocal:    "nonlocal",
	KwNot:         "not",
	KwOr:          "or",
	KwPass:        "pass",
	KwRaise:       "raise",
	KwReturn:      "return",
	KwTry:         "try",
	KwWhile:       "while",
	KwWith:        "with",
	KwYield:       "yield",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	StarStar:      "**",
	Slash:         "/",
	SlashSlash:    "//",
	Percent:       "%",
	At:            "@",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	ColonAssign:   ":=",
	Lt:            "<",
	Gt:            ">",
	LtEq:          "<=",
	GtEq:          ">=",
	EqEq:          "==",
	BangEq:        "!=",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LBrace:        "{",
	RBrace:        "}",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
	Dot:           ".",
	Ellipsis:      "...",
	Assign:        "=",
	Arrow:         "->",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	FloorAssign:   "//=",
	PercentAssign: "%=",
	AtAssign:      "@=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShrAssign:     ">>=",
	ShlAssign:     "<<=",
	PowAssign:     "**=",
	Bang:          "!",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaComment:      "Comment",
	TriviaContinuation: "Continuation",
	TriviaBOM:          "BOM",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(" + strconv.Itoa(int(k)) + ")"
}
