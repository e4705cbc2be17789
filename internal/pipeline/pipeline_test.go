package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDisplayPaths(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "tb", "b.py"),
		filepath.Join(base, "a.py"),
		filepath.Join(base, "a.py"),
		"",
	}
	got := DisplayPaths(files, base)
	want := []string{"a.py", "tb/b.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DisplayPaths = %v, want %v", got, want)
	}
}

func TestDisplayPathOutsideBase(t *testing.T) {
	base := t.TempDir()
	other := filepath.Join(filepath.Dir(base), "elsewhere.py")
	if got := DisplayPath(other, base); got != filepath.ToSlash(other) {
		t.Fatalf("DisplayPath = %q", got)
	}
}

func TestTimingsMerge(t *testing.T) {
	var a, b Timings
	a.Add(StageParse, time.Millisecond)
	b.Add(StageParse, 2*time.Millisecond)
	b.Add(StageScan, time.Millisecond)
	a.Merge(b)
	if got := a.Duration(StageParse); got != 3*time.Millisecond {
		t.Fatalf("parse = %v", got)
	}
	if !a.Has(StageScan) || a.Has(StageWrite) {
		t.Fatalf("unexpected Has results")
	}
	if got := a.Sum(Stages...); got != 4*time.Millisecond {
		t.Fatalf("sum = %v", got)
	}
}

func TestRecorderLast(t *testing.T) {
	var r Recorder
	Emit(&r, Event{File: "a.py", Stage: StageRead, Status: StatusWorking})
	Emit(&r, Event{File: "b.py", Stage: StageRead, Status: StatusWorking})
	Emit(&r, Event{File: "a.py", Stage: StageScan, Status: StatusDone})
	Emit(nil, Event{File: "ignored"})
	ev, ok := r.Last("a.py")
	if !ok || ev.Stage != StageScan || ev.Status != StatusDone {
		t.Fatalf("Last(a.py) = %+v, %v", ev, ok)
	}
	if n := len(r.Events()); n != 3 {
		t.Fatalf("events = %d", n)
	}
}
