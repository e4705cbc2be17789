package cst

import (
	"fmt"
	"io"
	"strings"

	"cocomig/internal/token"
)

// DumpNode is a serializable snapshot of a tree, used by the parse command.
type DumpNode struct {
	Kind     string     `json:"kind"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Text     string     `json:"text,omitempty"`
	Leading  string     `json:"leading,omitempty"`
	Children []DumpNode `json:"children,omitempty"`
}

// Snapshot converts e into a DumpNode tree.
func Snapshot(e Element) DumpNode {
	switch e := e.(type) {
	case *Leaf:
		return DumpNode{
			Kind:    e.Token.Kind.String(),
			Start:   e.Token.Span.Start,
			End:     e.Token.Span.End,
			Text:    e.Token.Text,
			Leading: token.TriviaText(e.Token.Leading),
		}
	case *Node:
		sp := e.Span()
		d := DumpNode{Kind: e.Kind.String(), Start: sp.Start, End: sp.End}
		d.Children = make([]DumpNode, 0, len(e.Elems))
		for _, c := range e.Elems {
			d.Children = append(d.Children, Snapshot(c))
		}
		return d
	}
	return DumpNode{}
}

// Dump writes an indented outline of e. Structural tokens are shown by kind,
// other leaves by their quoted text.
func Dump(w io.Writer, e Element, withTrivia bool) error {
	return dump(w, e, 0, withTrivia)
}

func dump(w io.Writer, e Element, depth int, withTrivia bool) error {
	indent := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *Leaf:
		line := fmt.Sprintf("%s%s %q", indent, e.Token.Kind, e.Token.Text)
		if withTrivia && len(e.Token.Leading) > 0 {
			line += fmt.Sprintf(" leading=%q", token.TriviaText(e.Token.Leading))
		}
		_, err := fmt.Fprintln(w, line)
		return err
	case *Node:
		sp := e.Span()
		if _, err := fmt.Fprintf(w, "%s%s %d..%d\n", indent, e.Kind, sp.Start, sp.End); err != nil {
			return err
		}
		for _, c := range e.Elems {
			if err := dump(w, c, depth+1, withTrivia); err != nil {
				return err
			}
		}
	}
	return nil
}
