package lexer

import (
	"strings"
	"testing"

	"cocomig/internal/diag"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

func TestTokenLengthLimit(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantKind token.Kind
		wantErr  bool
	}{
		{"name at limit", strings.Repeat("b", maxTokenLength), token.Name, false},
		{"name over limit", strings.Repeat("a", maxTokenLength+1) + " x", token.Invalid, true},
		{"number over limit", strings.Repeat("7", maxTokenLength+1), token.Invalid, true},
		{"long string is fine", `"` + strings.Repeat("s", maxTokenLength) + `"`, token.String, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("limit.py", []byte(tc.src)))
			bag := diag.NewBag(4)
			lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})

			if tok := lx.Next(); tok.Kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tc.wantKind)
			}
			if bag.HasErrors() != tc.wantErr {
				t.Fatalf("errors = %v", bag.Items())
			}
			if !tc.wantErr {
				return
			}
			if code := bag.Items()[0].Code; code != diag.LexTokenTooLong {
				t.Fatalf("code = %v", code)
			}
			// после слишком длинного токена лексер сразу отдаёт EOF
			if next := lx.Next(); next.Kind != token.EOF {
				t.Fatalf("after long token got %v", next.Kind)
			}
		})
	}
}
