package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cocomig/internal/lexer"
	"cocomig/internal/parser"
	"cocomig/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.py", []byte("x = 1  # c\n")))
	toks := lexer.Tokenize(f, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"x"`) || !strings.Contains(out, "at 1:1-1:2") {
		t.Errorf("pretty tokens:\n%s", out)
	}
	if !strings.Contains(out, `Comment"# c"`) {
		t.Errorf("trivia missing:\n%s", out)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(toks) {
		t.Fatalf("tokens = %d, want %d", len(decoded), len(toks))
	}
}

func TestFormatTree(t *testing.T) {
	root, _, err := parser.ParseSource("t.py", []byte("def f():\n    yield x\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Yield") {
		t.Errorf("tree:\n%s", buf.String())
	}
	buf.Reset()
	if err := FormatTreeJSON(&buf, root); err != nil {
		t.Fatal(err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("invalid JSON tree")
	}
}
