package diagfmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestUnifiedDiff(t *testing.T) {
	before := []byte("@cocotb.coroutine\ndef f():\n    yield Timer(1)\n")
	after := []byte("async def f():\n    await Timer(1)\n")

	got, err := UnifiedDiff("tb.py", before, after)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"--- a/tb.py",
		"+++ b/tb.py",
		"-@cocotb.coroutine\n",
		"-def f():\n",
		"+async def f():\n",
		"-    yield Timer(1)\n",
		"+    await Timer(1)\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestUnifiedDiffEqual(t *testing.T) {
	got, err := UnifiedDiff("tb.py", []byte("x\n"), []byte("x\n"))
	if err != nil || got != "" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestUnifiedDiffMissingFinalNewline(t *testing.T) {
	got, err := UnifiedDiff("tb.py", []byte("yield x"), []byte("await x"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\\ No newline at end of file") {
		t.Fatalf("no marker in:\n%s", got)
	}
}

func TestDiffColour(t *testing.T) {
	var plain, coloured bytes.Buffer
	if err := Diff(&plain, "tb.py", []byte("a\n"), []byte("b\n"), false); err != nil {
		t.Fatal(err)
	}
	if err := Diff(&coloured, "tb.py", []byte("a\n"), []byte("b\n"), true); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain diff has escapes: %q", plain.String())
	}
	if !strings.Contains(coloured.String(), "\x1b[") {
		t.Errorf("coloured diff has no escapes: %q", coloured.String())
	}
}
