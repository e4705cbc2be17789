package fix

import "sort"

// FileChange records one file apply rewrote.
type FileChange struct {
	Path     string
	OutPath  string
	Rewrites int
}

// SkippedFile records a file apply left alone, with the reason.
type SkippedFile struct {
	Path   string
	Reason string
}

// Summary aggregates an apply run.
type Summary struct {
	Changed   []FileChange
	Skipped   []SkippedFile
	Unchanged int
}

// Add records a change.
func (s *Summary) Add(c FileChange) { s.Changed = append(s.Changed, c) }

// Skip records a skipped file.
func (s *Summary) Skip(path, reason string) {
	s.Skipped = append(s.Skipped, SkippedFile{Path: path, Reason: reason})
}

// Rewrites returns the total number of rewritten constructs.
func (s *Summary) Rewrites() int {
	n := 0
	for _, c := range s.Changed {
		n += c.Rewrites
	}
	return n
}

// Sort orders both lists by path.
func (s *Summary) Sort() {
	sort.SliceStable(s.Changed, func(i, j int) bool { return s.Changed[i].Path < s.Changed[j].Path })
	sort.SliceStable(s.Skipped, func(i, j int) bool { return s.Skipped[i].Path < s.Skipped[j].Path })
}
