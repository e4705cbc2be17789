package cst

import "cocomig/internal/token"

// FuncView exposes the parts of a FuncDef node.
type FuncView struct{ N *Node }

// AsFunc returns a view when n is a function definition.
func AsFunc(n *Node) (FuncView, bool) {
	if n == nil || n.Kind != FuncDef {
		return FuncView{}, false
	}
	return FuncView{N: n}, true
}

func (f FuncView) Decorators() []*Node { return f.N.Children(Decorator) }
func (f FuncView) Async() *Leaf        { return f.N.Leaf(token.KwAsync) }
func (f FuncView) Def() *Leaf          { return f.N.Leaf(token.KwDef) }
func (f FuncView) Params() *Node       { return f.N.Child(Params) }
func (f FuncView) Body() *Node         { return f.N.Child(Suite) }

// Name returns the function name as written.
func (f FuncView) Name() string {
	if l := f.N.Leaf(token.Name); l != nil {
		return l.Token.Text
	}
	return ""
}

// DecoratorExpr returns the expression after '@'.
func DecoratorExpr(dec *Node) *Node {
	if dec == nil || dec.Kind != Decorator {
		return nil
	}
	return firstNode(dec)
}

// CallView exposes callee and arguments of a Call node.
type CallView struct{ N *Node }

func AsCall(n *Node) (CallView, bool) {
	if n == nil || n.Kind != Call {
		return CallView{}, false
	}
	return CallView{N: n}, true
}

// Func returns the callee expression.
func (c CallView) Func() *Node { return firstNode(c.N) }

// ArgList returns the parenthesized argument list.
func (c CallView) ArgList() *Node { return c.N.Child(ArgList) }

// Args returns the Arg nodes in order.
func (c CallView) Args() []*Node {
	if al := c.ArgList(); al != nil {
		return al.Children(Arg)
	}
	return nil
}

// ArgKeyword returns the keyword of a keyword argument, "" otherwise.
func ArgKeyword(arg *Node) string {
	if arg == nil || arg.Kind != Arg || !arg.HasLeaf(token.Assign) {
		return ""
	}
	if l := arg.Leaf(token.Name); l != nil {
		return l.Token.Text
	}
	return ""
}

// ArgStar returns Star or StarStar for unpacking arguments, Invalid otherwise.
func ArgStar(arg *Node) token.Kind {
	if arg == nil || arg.Kind != Arg {
		return token.Invalid
	}
	if v := firstNode(arg); v != nil && v.Kind == Starred {
		if l, ok := v.Elems[0].(*Leaf); ok {
			return l.Token.Kind
		}
	}
	return token.Invalid
}

// ArgValue returns the value expression of an argument.
func ArgValue(arg *Node) *Node {
	if arg == nil || arg.Kind != Arg {
		return nil
	}
	return lastNode(arg)
}

// YieldOperand returns the operand of Yield/YieldFrom/Await, or nil for a bare yield.
func YieldOperand(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Yield, YieldFrom, Await:
		return firstNode(n)
	}
	return nil
}

// DottedNames returns the identifiers of a Name or an Attribute chain over names
// (a.b.c -> [a b c]). ok is false for any other expression.
func DottedNames(n *Node) (parts []string, ok bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind {
	case Name:
		if l, isLeaf := n.Elems[0].(*Leaf); isLeaf {
			return []string{l.Token.Text}, true
		}
	case Attribute:
		head, ok := DottedNames(firstNode(n))
		if !ok {
			return nil, false
		}
		if attr := AttrName(n); attr != nil {
			return append(head, attr.Token.Text), true
		}
	case DottedName:
		for _, e := range n.Elems {
			if l, isLeaf := e.(*Leaf); isLeaf && l.Token.Kind == token.Name {
				parts = append(parts, l.Token.Text)
			}
		}
		return parts, len(parts) > 0
	}
	return nil, false
}

// AttrName returns the attribute leaf of an Attribute node (the name after the dot).
func AttrName(n *Node) *Leaf {
	if n == nil || n.Kind != Attribute {
		return nil
	}
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if l, ok := n.Elems[i].(*Leaf); ok && l.Token.Kind == token.Name {
			return l
		}
	}
	return nil
}

// ImportAliasParts returns the imported dotted path and the alias, if any.
func ImportAliasParts(alias *Node) (path []string, as string) {
	if alias == nil || alias.Kind != ImportAlias {
		return nil, ""
	}
	path, _ = DottedNames(alias.Child(DottedName))
	if alias.HasLeaf(token.KwAs) {
		if l := lastLeaf(alias, token.Name); l != nil {
			as = l.Token.Text
		}
	}
	return path, as
}

// ImportFromModule returns the module path of a from-import and the number of leading dots.
func ImportFromModule(n *Node) (module []string, level int) {
	if n == nil || n.Kind != ImportFrom {
		return nil, 0
	}
	for _, e := range n.Elems {
		switch e := e.(type) {
		case *Leaf:
			switch e.Token.Kind {
			case token.Dot:
				level++
			case token.Ellipsis:
				level += 3
			case token.KwImport:
				return module, level
			}
		case *Node:
			if e.Kind == DottedName {
				module, _ = DottedNames(e)
			}
		}
	}
	return module, level
}

func firstNode(n *Node) *Node {
	for _, e := range n.Elems {
		if c, ok := e.(*Node); ok {
			return c
		}
	}
	return nil
}

func lastNode(n *Node) *Node {
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if c, ok := n.Elems[i].(*Node); ok {
			return c
		}
	}
	return nil
}

func lastLeaf(n *Node, k token.Kind) *Leaf {
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if l, ok := n.Elems[i].(*Leaf); ok && l.Token.Kind == k {
			return l
		}
	}
	return nil
}
