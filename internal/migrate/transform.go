package migrate

import (
	"slices"

	"cocomig/internal/cst"
)

// rewrite rebuilds n bottom-up: children first, then the node's own edit.
// Subtrees without edits are returned as is and shared with the input.
func rewrite(n *cst.Node, edits map[*cst.Node]edit) *cst.Node {
	if len(edits) == 0 {
		return n
	}
	out := n
	for i, e := range n.Elems {
		c, ok := e.(*cst.Node)
		if !ok {
			continue
		}
		nc := rewrite(c, edits)
		if nc == c {
			continue
		}
		if out == n {
			out = &cst.Node{Kind: n.Kind, Elems: slices.Clone(n.Elems)}
		}
		out.Elems[i] = nc
	}
	if ed, ok := edits[n]; ok {
		return ed.apply(out)
	}
	return out
}
