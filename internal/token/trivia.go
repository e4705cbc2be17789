package token

import "cocomig/internal/source"

//go:generate stringer -type=TriviaKind -trimprefix=Trivia
type TriviaKind uint8

const (
	TriviaSpace        TriviaKind = iota // spaces, tabs, form feeds
	TriviaNewline                        // non-logical line break (blank line, inside brackets, after a comment line)
	TriviaComment                        // # ... up to, not including, the line break
	TriviaContinuation                   // backslash followed by a line break
	TriviaBOM                            // UTF-8 byte order mark at offset 0
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia piece is a comment.
func (t Trivia) IsComment() bool { return t.Kind == TriviaComment }

// TriviaText concatenates the text of every trivia piece.
func TriviaText(ts []Trivia) string {
	switch len(ts) {
	case 0:
		return ""
	case 1:
		return ts[0].Text
	}
	n := 0
	for _, t := range ts {
		n += len(t.Text)
	}
	b := make([]byte, 0, n)
	for _, t := range ts {
		b = append(b, t.Text...)
	}
	return string(b)
}
