package cst

import (
	"strings"

	"cocomig/internal/source"
	"cocomig/internal/token"
)

// Element is either a *Node or a *Leaf.
type Element interface {
	Span() source.Span
	appendTo(sb *strings.Builder)
	element()
}

// Leaf wraps a single token together with its leading trivia.
type Leaf struct {
	Token token.Token
}

// Node is an interior tree node.
type Node struct {
	Kind  Kind
	Elems []Element
}

func (*Leaf) element() {}
func (*Node) element() {}

func NewLeaf(tok token.Token) *Leaf { return &Leaf{Token: tok} }

func NewNode(kind Kind, elems ...Element) *Node {
	return &Node{Kind: kind, Elems: elems}
}

// Kind returns the token kind.
func (l *Leaf) Kind() token.Kind { return l.Token.Kind }

// Text returns the token text without trivia.
func (l *Leaf) Text() string { return l.Token.Text }

// Span returns the token span.
func (l *Leaf) Span() source.Span { return l.Token.Span }

func (l *Leaf) appendTo(sb *strings.Builder) { l.Token.AppendTo(sb) }

// WithLeading returns a copy of l with replaced leading trivia.
func (l *Leaf) WithLeading(lead []token.Trivia) *Leaf {
	t := l.Token
	t.Leading = lead
	return &Leaf{Token: t}
}

func (n *Node) appendTo(sb *strings.Builder) {
	for _, e := range n.Elems {
		e.appendTo(sb)
	}
}

// Span covers the first to the last leaf that has text; leading trivia is excluded.
func (n *Node) Span() source.Span {
	first, last := n.firstTextLeaf(), n.lastTextLeaf()
	if first == nil {
		return source.Span{}
	}
	return source.Span{File: first.Token.Span.File, Start: first.Token.Span.Start, End: last.Token.Span.End}
}

func (n *Node) firstTextLeaf() *Leaf {
	var found *Leaf
	WalkLeaves(n, func(l *Leaf) bool {
		if l.Token.Text != "" {
			found = l
			return false
		}
		return true
	})
	return found
}

func (n *Node) lastTextLeaf() *Leaf {
	for i := len(n.Elems) - 1; i >= 0; i-- {
		switch e := n.Elems[i].(type) {
		case *Leaf:
			if e.Token.Text != "" {
				return e
			}
		case *Node:
			if l := e.lastTextLeaf(); l != nil {
				return l
			}
		}
	}
	return nil
}

// String returns the exact source text of the node, leading trivia included.
func (n *Node) String() string { return Serialize(n) }

// Text returns the source text of the node without the leading trivia of its first token.
func (n *Node) Text() string {
	var sb strings.Builder
	started := false
	WalkLeaves(n, func(l *Leaf) bool {
		switch {
		case started:
			l.appendTo(&sb)
		case l.Token.Text != "":
			started = true
			sb.WriteString(l.Token.Text)
		}
		return true
	})
	return sb.String()
}

// Serialize prints e back to source text.
func Serialize(e Element) string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	e.appendTo(&sb)
	return sb.String()
}

// Nodes returns the direct child nodes.
func (n *Node) Nodes() []*Node {
	out := make([]*Node, 0, len(n.Elems))
	for _, e := range n.Elems {
		if c, ok := e.(*Node); ok {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child node of one of the given kinds.
func (n *Node) Child(kinds ...Kind) *Node {
	for _, e := range n.Elems {
		if c, ok := e.(*Node); ok {
			for _, k := range kinds {
				if c.Kind == k {
					return c
				}
			}
		}
	}
	return nil
}

// Children returns every direct child node of kind k.
func (n *Node) Children(k Kind) []*Node {
	var out []*Node
	for _, e := range n.Elems {
		if c, ok := e.(*Node); ok && c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Leaf returns the first direct leaf of token kind k.
func (n *Node) Leaf(k token.Kind) *Leaf {
	for _, e := range n.Elems {
		if l, ok := e.(*Leaf); ok && l.Token.Kind == k {
			return l
		}
	}
	return nil
}

// HasLeaf reports whether n has a direct leaf of token kind k.
func (n *Node) HasLeaf(k token.Kind) bool { return n.Leaf(k) != nil }

// Index returns the position of e among the direct elements, or -1.
func (n *Node) Index(e Element) int {
	for i, x := range n.Elems {
		if x == e {
			return i
		}
	}
	return -1
}

// FirstLeaf returns the first leaf in document order, structural tokens included.
func (n *Node) FirstLeaf() *Leaf {
	for _, e := range n.Elems {
		switch e := e.(type) {
		case *Leaf:
			return e
		case *Node:
			if l := e.FirstLeaf(); l != nil {
				return l
			}
		}
	}
	return nil
}

// With returns a copy of n whose i-th element is replaced by e.
func (n *Node) With(i int, e Element) *Node {
	elems := make([]Element, len(n.Elems))
	copy(elems, n.Elems)
	elems[i] = e
	return &Node{Kind: n.Kind, Elems: elems}
}

// Splice returns a copy of n with del elements at i replaced by ins.
func (n *Node) Splice(i, del int, ins ...Element) *Node {
	elems := make([]Element, 0, len(n.Elems)-del+len(ins))
	elems = append(elems, n.Elems[:i]...)
	elems = append(elems, ins...)
	elems = append(elems, n.Elems[i+del:]...)
	return &Node{Kind: n.Kind, Elems: elems}
}

// Leading returns the leading trivia of the first leaf of e.
func Leading(e Element) []token.Trivia {
	switch e := e.(type) {
	case *Leaf:
		return e.Token.Leading
	case *Node:
		if l := e.FirstLeaf(); l != nil {
			return l.Token.Leading
		}
	}
	return nil
}

// WithLeading returns a copy of e whose first leaf carries lead.
// Only the left spine is copied.
func WithLeading(e Element, lead []token.Trivia) Element {
	switch e := e.(type) {
	case *Leaf:
		return e.WithLeading(lead)
	case *Node:
		for i, c := range e.Elems {
			if c2, ok := c.(*Node); ok && c2.FirstLeaf() == nil {
				continue
			}
			return e.With(i, WithLeading(c, lead))
		}
	}
	return e
}
