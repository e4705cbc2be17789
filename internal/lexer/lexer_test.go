package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cocomig/internal/diag"
	"cocomig/internal/lexer"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

// HasErrors возвращает true, если были зарегистрированы ошибки
func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) HasCode(code diag.Code) bool {
	for _, d := range r.diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ErrorMessages возвращает список сообщений об ошибках
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// lexAll прогоняет лексер по строке и возвращает все токены, включая EOF
func lexAll(input string) ([]token.Token, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: reporter}), reporter
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

// expectTokens проверяет последовательность токенов (EOF не включается)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	tokens, reporter := lexAll(input)
	if reporter.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", input, reporter.ErrorMessages())
	}
	tokens = tokens[:len(tokens)-1]
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

// expectSingleToken проверяет, что вход даёт ровно один значимый токен
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	tokens, reporter := lexAll(input)
	if reporter.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", input, reporter.ErrorMessages())
	}
	tok := tokens[0]
	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
	if tokens[1].Kind != token.Newline || tokens[1].Text != "" {
		t.Errorf("Expected synthetic NEWLINE after %q, got %v", input, tokensToString(tokens[1:]))
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func render(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		tok.AppendTo(&sb)
	}
	return sb.String()
}

// ====== Полнота: каждый байт попадает в токен или trivia ======

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"# only a comment",
		"x = 1\n",
		"x = 1",
		"x = 1  # trailing\n",
		"x = 1  # no newline at end",
		"def f():\n    return 1\n\n\n# tail\n",
		"if a:\n\tif b:\n\t\tpass\n\nelse:\n    pass\n",
		"x = (1,\n     2,  # inside\n\n     3)\n",
		"y = 1 + \\\n    2\n",
		"a = 1\r\nb = 2\r\n",
		"a = 1\rb = 2\r",
		"\xef\xbb\xbfimport cocotb\n",
		"s = '''one\ntwo'''\nt = r'\\d+'\n",
		"f = f\"{x!r:>{width}} {d['k']}\"\n",
		"f = f'{\"nested\"}'\n",
		"class C:\n    @decorator\n    def m(self):\n        yield  x\n",
		"lambda: (yield)\n",
		"x = [\n    1,\n]\n    \n",
		"if x:\n    pass\n  # weird comment indent\n",
		"\f\nx = 1\n",
	}
	for _, in := range inputs {
		tokens, _ := lexAll(in)
		if got := render(tokens); got != in {
			t.Errorf("round trip mismatch:\n in: %q\nout: %q\ntoks: %s", in, got, tokensToString(tokens))
		}
		if tokens[len(tokens)-1].Kind != token.EOF {
			t.Errorf("last token must be EOF for %q", in)
		}
	}
}

// ====== Логические строки и отступы ======

func TestLayout_Block(t *testing.T) {
	expectTokens(t, "def f():\n    return 1\n", []token.Kind{
		token.KwDef, token.Name, token.LParen, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.Number, token.Newline,
		token.Dedent,
	})
}

func TestLayout_MultipleDedents(t *testing.T) {
	expectTokens(t, "if a:\n    if b:\n        x\ny\n", []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Dedent, token.Name, token.Newline,
	})
}

func TestLayout_BracketsSuppressNewline(t *testing.T) {
	expectTokens(t, "x = (1,\n  2)\n", []token.Kind{
		token.Name, token.Assign, token.LParen, token.Number, token.Comma,
		token.Number, token.RParen, token.Newline,
	})
}

func TestLayout_BlankAndCommentLines(t *testing.T) {
	expectTokens(t, "a\n\n   # c\n\nb\n", []token.Kind{
		token.Name, token.Newline, token.Name, token.Newline,
	})
}

func TestLayout_Continuation(t *testing.T) {
	tokens, rep := lexAll("x = 1 + \\\n  2\n")
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.ErrorMessages())
	}
	if got := kinds(tokens); len(got) != 7 || got[5] != token.Newline {
		t.Fatalf("unexpected tokens: %s", tokensToString(tokens))
	}
	two := tokens[4]
	if len(two.Leading) != 3 || two.Leading[1].Kind != token.TriviaContinuation || two.Leading[1].Text != "\\\n" {
		t.Fatalf("continuation trivia missing on %q: %+v", two.Text, two.Leading)
	}
}

func TestLayout_MissingFinalNewline(t *testing.T) {
	tokens, _ := lexAll("def f():\n    pass")
	got := kinds(tokens)
	want := []token.Kind{
		token.KwDef, token.Name, token.LParen, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwPass, token.Newline, token.Dedent, token.EOF,
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
	if nl := tokens[8]; nl.Text != "" || nl.Span.Len() != 0 {
		t.Fatalf("final NEWLINE must be empty, got %q", nl.Text)
	}
}

func TestLayout_IndentCarriedAsTrivia(t *testing.T) {
	tokens, _ := lexAll("if x:\n    # note\n    y\n")
	// if x : NEWLINE INDENT y
	indent := tokens[4]
	if indent.Kind != token.Indent || len(indent.Leading) != 0 || indent.Text != "" {
		t.Fatalf("INDENT must be empty, got %+v", indent)
	}
	y := tokens[5]
	if y.Text != "y" || y.LeadingText() != "    # note\n    " {
		t.Fatalf("unexpected leading for %q: %q", y.Text, y.LeadingText())
	}
}

func TestLayout_EOFKeepsTrailingTrivia(t *testing.T) {
	tokens, _ := lexAll("x\n# end\n")
	eof := tokens[len(tokens)-1]
	if eof.LeadingText() != "# end\n" {
		t.Fatalf("EOF leading = %q", eof.LeadingText())
	}
}

func TestLayout_CRLF(t *testing.T) {
	tokens, _ := lexAll("a\r\nb\r\n")
	if tokens[1].Kind != token.Newline || tokens[1].Text != "\r\n" {
		t.Fatalf("expected CRLF NEWLINE, got %s", tokensToString(tokens))
	}
}

func TestLayout_BOM(t *testing.T) {
	tokens, rep := lexAll("\xef\xbb\xbfx = 1\n")
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.ErrorMessages())
	}
	if tokens[0].Kind != token.Name || len(tokens[0].Leading) != 1 || tokens[0].Leading[0].Kind != token.TriviaBOM {
		t.Fatalf("BOM must be leading trivia of the first token: %+v", tokens[0])
	}
	if tokens[1].Kind == token.Indent {
		t.Fatalf("BOM must not count as indentation")
	}
}

func TestLayout_InconsistentDedent(t *testing.T) {
	_, rep := lexAll("if a:\n    x\n  y\n")
	if !rep.HasCode(diag.LexInconsistentDedent) {
		t.Fatalf("expected LexInconsistentDedent, got %v", rep.ErrorMessages())
	}
}

func TestLayout_TabsAndSpacesMixed(t *testing.T) {
	_, rep := lexAll("if a:\n        x\n\ty\n")
	if !rep.HasCode(diag.LexInconsistentTabs) {
		t.Fatalf("expected LexInconsistentTabs, got %v", rep.ErrorMessages())
	}
}

// ====== Имена и ключевые слова ======

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Name},
		{"_bar", token.Name},
		{"__init__", token.Name},
		{"x123", token.Name},
		{"_", token.Name},
		{"match", token.Name},
		{"case", token.Name},
		{"type", token.Name},
		{"переменная", token.Name},
		{"ﬁle", token.Name},
		{"yield", token.KwYield},
		{"async", token.KwAsync},
		{"await", token.KwAwait},
		{"None", token.KwNone},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

// ====== Числа ======

func TestNumbers(t *testing.T) {
	for _, in := range []string{
		"0", "123", "1_000_000", "0x1F", "0o17", "0b1010", "0XdeadBEEF",
		"1.5", "1.", ".5", "1e10", "1E-3", "2.5e+7", "3j", "1.5J", "1_0.0_1",
	} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.Number, in)
		})
	}
}

func TestNumbers_Invalid(t *testing.T) {
	for _, in := range []string{"1abc", "0x", "1e", "1_"} {
		_, rep := lexAll(in)
		if !rep.HasCode(diag.LexBadNumber) {
			t.Errorf("%q: expected LexBadNumber, got %v", in, rep.ErrorMessages())
		}
	}
}

func TestNumbers_KeywordAfterDigit(t *testing.T) {
	expectTokens(t, "x = 1if y else 2\n", []token.Kind{
		token.Name, token.Assign, token.Number, token.KwIf, token.Name, token.KwElse, token.Number, token.Newline,
	})
}

// ====== Строки ======

func TestStrings(t *testing.T) {
	for _, in := range []string{
		`"abc"`, `'abc'`, `""`, `"a\"b"`, `'it\'s'`,
		`r"\d+"`, `R'\w'`, `b"\x00"`, `rb"x"`, `BR'x'`, `u"x"`, `f"{x}"`, `Rf"{x}"`,
		`"""multi
line"""`,
		`'''a "quoted" 'x' '''`,
		`f"{x!r:>{width}}"`,
		`f"{'a' + "b"}"`,
		`f"{d["key"]}"`,
		`f"{{literal}}"`,
		`f"\N{BULLET} {x}"`,
		`f"""{
    x
}"""`,
		"\"line \\\ncontinued\"",
	} {
		t.Run(in, func(t *testing.T) {
			expectSingleToken(t, in, token.String, in)
		})
	}
}

func TestStrings_PrefixIsNotName(t *testing.T) {
	expectTokens(t, "rb'x' + fr\"{y}\" + ur\n", []token.Kind{
		token.String, token.Plus, token.String, token.Plus, token.Name, token.Newline,
	})
}

func TestStrings_Unterminated(t *testing.T) {
	for _, in := range []string{`"abc`, "'abc\n'", `"""abc`, `f"{x"`} {
		_, rep := lexAll(in)
		if !rep.HasCode(diag.LexUnterminatedString) {
			t.Errorf("%q: expected LexUnterminatedString, got %v", in, rep.ErrorMessages())
		}
	}
}

// ====== Операторы ======

func TestOperators(t *testing.T) {
	ops := map[string]token.Kind{
		"+": token.Plus, "-": token.Minus, "*": token.Star, "**": token.StarStar,
		"/": token.Slash, "//": token.SlashSlash, "%": token.Percent, "@": token.At,
		"<<": token.Shl, ">>": token.Shr, "&": token.Amp, "|": token.Pipe, "^": token.Caret,
		"~": token.Tilde, ":=": token.ColonAssign, "<": token.Lt, ">": token.Gt,
		"<=": token.LtEq, ">=": token.GtEq, "==": token.EqEq, "!=": token.BangEq,
		",": token.Comma, ":": token.Colon, ";": token.Semicolon, ".": token.Dot,
		"...": token.Ellipsis, "=": token.Assign, "->": token.Arrow,
		"+=": token.PlusAssign, "-=": token.MinusAssign, "*=": token.StarAssign,
		"/=": token.SlashAssign, "//=": token.FloorAssign, "%=": token.PercentAssign,
		"@=": token.AtAssign, "&=": token.AmpAssign, "|=": token.PipeAssign,
		"^=": token.CaretAssign, ">>=": token.ShrAssign, "<<=": token.ShlAssign,
		"**=": token.PowAssign,
	}
	for text, kind := range ops {
		t.Run(text, func(t *testing.T) {
			expectSingleToken(t, text, kind, text)
		})
	}
}

func TestOperators_Greedy(t *testing.T) {
	expectTokens(t, "a**=b//c->d\n", []token.Kind{
		token.Name, token.PowAssign, token.Name, token.SlashSlash, token.Name, token.Arrow, token.Name, token.Newline,
	})
}

// ====== Ошибки ======

func TestErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"x = $\n", diag.LexUnknownChar},
		{"x = ?\n", diag.LexUnknownChar},
		{"x = 1 \\ 2\n", diag.LexBadContinuation},
		{"x = )\n", diag.LexUnmatchedBracket},
		{"x = (]\n", diag.LexUnmatchedBracket},
		{"x = (1,\n", diag.LexUnclosedBracket},
		{"x = \xff\n", diag.LexBadEncoding},
	}
	for _, tc := range cases {
		tokens, rep := lexAll(tc.input)
		if !rep.HasCode(tc.code) {
			t.Errorf("%q: expected %s, got %v", tc.input, tc.code.ID(), rep.ErrorMessages())
		}
		if got := render(tokens); got != tc.input {
			t.Errorf("%q: round trip after error gave %q", tc.input, got)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("peek.py", []byte("a b")))
	lx := lexer.New(file, lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for i := 0; i < 3; i++ {
		lx.Next()
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("after EOF lexer must keep returning EOF, got %v", n.Kind)
	}
}
