package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent

	// Name is an identifier (including soft keywords).
	Name
	// Number is an integer, float or imaginary literal.
	Number
	// String is a string, bytes or f-string literal, prefix included.
	String

	keywordBeg
	KwFalse    // False
	KwNone     // None
	KwTrue     // True
	KwAnd      // and
	KwAs       // as
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwClass    // class
	KwContinue // continue
	KwDef      // def
	KwDel      // del
	KwElif     // elif
	KwElse     // else
	KwExcept   // except
	KwFinally  // finally
	KwFor      // for
	KwFrom     // from
	KwGlobal   // global
	KwIf       // if
	KwImport   // import
	KwIn       // in
	KwIs       // is
	KwLambda   // lambda
	KwNonlocal // nonlocal
	KwNot      // not
	KwOr       // or
	KwPass     // pass
	KwRaise    // raise
	KwReturn   // return
	KwTry      // try
	KwWhile    // while
	KwWith     // with
	KwYield    // yield
	keywordEnd

	operatorBeg
	Plus          // +
	Minus         // -
	Star          // *
	StarStar      // **
	Slash         // /
	SlashSlash    // //
	Percent       // %
	At            // @
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	ColonAssign   // :=
	Lt            // <
	Gt            // >
	LtEq          // <=
	GtEq          // >=
	EqEq          // ==
	BangEq        // !=
	LParen        // (
	RParen        // )
	LBracket      // [
	RBracket      // ]
	LBrace        // {
	RBrace        // }
	Comma         // ,
	Colon         // :
	Semicolon     // ;
	Dot           // .
	Ellipsis      // ...
	Assign        // =
	Arrow         // ->
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	FloorAssign   // //=
	PercentAssign // %=
	AtAssign      // @=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShrAssign     // >>=
	ShlAssign     // <<=
	PowAssign     // **=
	Bang          // ! (only valid inside f-string replacement fields)
	operatorEnd
)

// IsKeyword reports whether k is a hard keyword.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsOperator reports whether k is an operator or delimiter.
func (k Kind) IsOperator() bool { return k > operatorBeg && k < operatorEnd }

// IsAugAssign reports whether k is an augmented assignment operator (+=, <<=, ...).
func (k Kind) IsAugAssign() bool {
	switch k {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign, FloorAssign, PercentAssign,
		AtAssign, AmpAssign, PipeAssign, CaretAssign, ShrAssign, ShlAssign, PowAssign:
		return true
	default:
		return false
	}
}

// IsOpenBracket reports whether k opens a bracketed region.
func (k Kind) IsOpenBracket() bool { return k == LParen || k == LBracket || k == LBrace }

// IsCloseBracket reports whether k closes a bracketed region.
func (k Kind) IsCloseBracket() bool { return k == RParen || k == RBracket || k == RBrace }
