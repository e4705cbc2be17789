package diagfmt

import (
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"

	"cocomig/internal/source"
)

// tabWidth is used when measuring columns for the underline.
const tabWidth = 4

// displayWidth measures s as a terminal renders it.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth - w%tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// expandTabs replaces tabs so the rendered line lines up with the underline.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// lineCount returns the number of lines of f.
func lineCount(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return 0
	}
	return f.Position(n).Line
}

// truncate cuts s to width display cells, marking the cut with an ellipsis.
func truncate(s string, width uint8) string {
	if width == 0 || displayWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
