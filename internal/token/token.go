package token

import (
	"strings"

	"cocomig/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a hard keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsOperator() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Name }

// IsName reports whether the token is an identifier spelled exactly s.
func (t Token) IsName(s string) bool { return t.Kind == Name && t.Text == s }

// IsLiteral reports whether the token is a number or string literal, or one of True/False/None.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsStructural reports whether the token only delimits layout (NEWLINE, INDENT, DEDENT, EOF).
func (t Token) IsStructural() bool {
	switch t.Kind {
	case Newline, Indent, Dedent, EOF:
		return true
	default:
		return false
	}
}

// LeadingText returns the concatenated leading trivia.
func (t Token) LeadingText() string { return TriviaText(t.Leading) }

// HasComment reports whether any leading trivia piece is a comment.
func (t Token) HasComment() bool {
	for _, tr := range t.Leading {
		if tr.IsComment() {
			return true
		}
	}
	return false
}

// AppendTo appends the token's leading trivia and text to sb.
func (t Token) AppendTo(sb *strings.Builder) {
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.Text)
}

// Synthetic builds a token that has no source location.
func Synthetic(k Kind, text string, leading ...Trivia) Token {
	return Token{Kind: k, Text: text, Leading: leading}
}

// Space returns a single-space trivia piece without source location.
func Space() Trivia { return Trivia{Kind: TriviaSpace, Text: " "} }
