package fix

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOutPath(t *testing.T) {
	tests := []struct {
		target Target
		in     string
		want   string
	}{
		{Target{Suffix: ".migrated.py"}, "tb/test_dut.py", "tb/test_dut.migrated.py"},
		{Target{Suffix: ".v2.py"}, "x.pyw", "x.v2.py"},
		{Target{Suffix: ".migrated.py"}, "noext", "noext.migrated.py"},
		{Target{InPlace: true, Suffix: ".migrated.py"}, "a/b.py", "a/b.py"},
	}
	for _, tt := range tests {
		if got := tt.target.OutPath(tt.in); got != tt.want {
			t.Errorf("OutPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSibling(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tb.py")
	if err := os.WriteFile(in, []byte("old\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := Target{Suffix: ".migrated.py"}.Write(in, []byte("new\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out != filepath.Join(dir, "tb.migrated.py") {
		t.Fatalf("out = %q", out)
	}
	if got, _ := os.ReadFile(in); string(got) != "old\n" {
		t.Fatalf("input modified: %q", got)
	}
	if got, _ := os.ReadFile(out); string(got) != "new\n" {
		t.Fatalf("output = %q", got)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(out)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
		}
	}
}

func TestWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tb.py")
	if err := os.WriteFile(in, []byte("old\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := Target{InPlace: true}.Write(in, []byte("new\r\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out != in {
		t.Fatalf("out = %q", out)
	}
	if got, _ := os.ReadFile(in); string(got) != "new\r\n" {
		t.Fatalf("content = %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}

func TestWriteRejectsSamePath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tb.py")
	_, err := Target{Suffix: ".py"}.Write(in, nil)
	if !errors.Is(err, ErrSamePath) {
		t.Fatalf("err = %v, want ErrSamePath", err)
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	in := filepath.Join(t.TempDir(), "missing", "tb.py")
	_, err := Target{Suffix: ".migrated.py"}.Write(in, []byte("x"))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(FileChange{Path: "b.py", Rewrites: 2})
	s.Add(FileChange{Path: "a.py", Rewrites: 3})
	s.Skip("c.py", "parse error")
	s.Sort()
	if s.Changed[0].Path != "a.py" || s.Rewrites() != 5 || len(s.Skipped) != 1 {
		t.Fatalf("summary = %+v", s)
	}
}
