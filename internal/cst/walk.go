package cst

// Walk visits e and its descendant nodes in document order.
// When fn returns false the children of that node are skipped.
func Walk(e Element, fn func(n *Node) bool) {
	n, ok := e.(*Node)
	if !ok || n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Elems {
		Walk(c, fn)
	}
}

// WalkLeaves visits every leaf under e in document order until fn returns false.
func WalkLeaves(e Element, fn func(l *Leaf) bool) bool {
	switch e := e.(type) {
	case *Leaf:
		return fn(e)
	case *Node:
		for _, c := range e.Elems {
			if !WalkLeaves(c, fn) {
				return false
			}
		}
	}
	return true
}

// Leaves collects every leaf under e.
func Leaves(e Element) []*Leaf {
	var out []*Leaf
	WalkLeaves(e, func(l *Leaf) bool {
		out = append(out, l)
		return true
	})
	return out
}
