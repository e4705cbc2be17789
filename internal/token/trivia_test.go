package token_test

import (
	"strings"
	"testing"

	"cocomig/internal/source"
	"cocomig/internal/token"
)

func TestLeadingTriviaRoundTrip(t *testing.T) {
	tok := token.Token{
		Kind: token.KwDef,
		Span: source.Span{Start: 14, End: 17},
		Text: "def",
		Leading: []token.Trivia{
			{Kind: token.TriviaComment, Span: source.Span{Start: 0, End: 9}, Text: "# comment"},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 9, End: 10}, Text: "\n"},
			{Kind: token.TriviaSpace, Span: source.Span{Start: 10, End: 14}, Text: "    "},
		},
	}
	if got := tok.LeadingText(); got != "# comment\n    " {
		t.Fatalf("LeadingText = %q", got)
	}
	if !tok.HasComment() {
		t.Fatalf("HasComment = false, want true")
	}
	var sb strings.Builder
	tok.AppendTo(&sb)
	if sb.String() != "# comment\n    def" {
		t.Fatalf("AppendTo = %q", sb.String())
	}
}

func TestTriviaKindString(t *testing.T) {
	if token.TriviaContinuation.String() != "Continuation" {
		t.Fatalf("got %q", token.TriviaContinuation.String())
	}
	if token.TriviaKind(200).String() != "TriviaKind(200)" {
		t.Fatalf("got %q", token.TriviaKind(200).String())
	}
}
