package diagfmt

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines around each hunk.
const DiffContext = 3

// UnifiedDiff returns a unified diff between before and after, labelled
// a/<path> and b/<path>. It returns "" when the two are equal.
func UnifiedDiff(path string, before, after []byte) (string, error) {
	if bytes.Equal(before, after) {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitKeepEnds(before),
		B:        splitKeepEnds(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  DiffContext,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// splitKeepEnds splits content into lines keeping their terminators, so CRLF
// files diff exactly. A last line without a terminator gets a marker line
// the way diff(1) prints it.
func splitKeepEnds(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n\\ No newline at end of file\n"
	}
	return lines
}

// Diff writes the unified diff of one file, colouring hunks when asked.
func Diff(w io.Writer, path string, before, after []byte, useColor bool) error {
	text, err := UnifiedDiff(path, before, after)
	if err != nil || text == "" {
		return err
	}
	if !useColor {
		_, err = io.WriteString(w, text)
		return err
	}
	add, del, hunk, head := color.New(color.FgGreen), color.New(color.FgRed), color.New(color.FgCyan), color.New(color.Bold)
	for _, c := range []*color.Color{add, del, hunk, head} {
		c.EnableColor()
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		line := sc.Text()
		var c *color.Color
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			c = head
		case strings.HasPrefix(line, "@@"):
			c = hunk
		case strings.HasPrefix(line, "+"):
			c = add
		case strings.HasPrefix(line, "-"):
			c = del
		}
		if c != nil {
			line = c.Sprint(line)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}
