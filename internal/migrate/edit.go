package migrate

import (
	"slices"

	"cocomig/internal/cst"
	"cocomig/internal/token"
)

// edit is the closed set of structural rewrites. apply receives the node after
// its children were rebuilt, so it navigates by shape, never by identity.
type edit interface {
	apply(n *cst.Node) *cst.Node
	isEdit()
}

type (
	// convertFunc drops the coroutine decorators at the given element indices
	// and makes the function 'async def'.
	convertFunc struct {
		decorators []int
		addAsync   bool
	}
	// yieldToAwait turns 'yield x' into 'await x'.
	yieldToAwait struct{}
	// valueToReturn turns 'ReturnValue(x)' or 'raise ReturnValue(x)' into 'return x'.
	valueToReturn struct{}
	// renameSpawn renames the callee of a fork call; qualifier is set for a bare name.
	renameSpawn struct {
		name      string
		qualifier string
	}
)

func (convertFunc) isEdit()   {}
func (yieldToAwait) isEdit()  {}
func (valueToReturn) isEdit() {}
func (renameSpawn) isEdit()   {}

func (e convertFunc) apply(n *cst.Node) *cst.Node {
	elems := make([]cst.Element, 0, len(n.Elems)+1)
	var carry []token.Trivia
	carrying := false
	for i, el := range n.Elems {
		if slices.Contains(e.decorators, i) {
			dec := el.(*cst.Node)
			head, indent := splitIndent(cst.Leading(dec))
			carry = append(carry, head...)
			// комментарий в конце строки декоратора переезжает на отдельную строку
			if nl := dec.Leaf(token.Newline); nl != nil {
				if comments := lineComments(nl.Token.Leading); len(comments) > 0 {
					carry = concat(carry, indent, comments, []token.Trivia{{Kind: token.TriviaNewline, Text: nl.Token.Text}})
				}
			}
			carrying = true
			continue
		}
		if carrying {
			el = cst.WithLeading(el, concat(carry, cst.Leading(el)))
			carry, carrying = nil, false
		}
		elems = append(elems, el)
	}

	if e.addAsync {
		for i, el := range elems {
			def, ok := el.(*cst.Leaf)
			if !ok || def.Kind() != token.KwDef {
				continue
			}
			async := cst.NewLeaf(token.Synthetic(token.KwAsync, "async", def.Token.Leading...))
			elems = slices.Insert(elems, i, cst.Element(async))
			elems[i+1] = def.WithLeading([]token.Trivia{token.Space()})
			break
		}
	}
	return cst.NewNode(n.Kind, elems...)
}

func (yieldToAwait) apply(n *cst.Node) *cst.Node {
	kw := n.Elems[0].(*cst.Leaf)
	operand := n.Elems[1].(*cst.Node)
	if !isPrimary(operand) {
		// await связывает сильнее бинарных операторов: yield a + b -> await (a + b)
		operand = parenthesize(operand, cst.Leading(operand))
	}
	await := cst.NewLeaf(token.Synthetic(token.KwAwait, "await", kw.Token.Leading...))
	return cst.NewNode(cst.Await, await, operand)
}

func (valueToReturn) apply(n *cst.Node) *cst.Node {
	lead := n.FirstLeaf().Token.Leading
	ret := cst.NewLeaf(token.Synthetic(token.KwReturn, "return", lead...))

	var call *cst.Node
	if n.Kind == cst.Raise {
		call = n.Nodes()[0]
	} else {
		call = n.Elems[0].(*cst.Node)
	}
	cv, _ := cst.AsCall(call)
	args := cv.Args()
	if len(args) == 0 {
		return cst.NewNode(cst.Return, ret)
	}

	arg := args[0]
	value := cst.ArgValue(arg)
	var before []token.Trivia // keyword and '=' of retval=
	for _, el := range arg.Elems {
		if l, ok := el.(*cst.Leaf); ok {
			before = append(before, l.Token.Leading...)
		}
	}
	var after []token.Trivia // trailing ',' and ')'
	al := cv.ArgList()
	for _, el := range al.Elems[al.Index(arg)+1:] {
		after = append(after, el.(*cst.Leaf).Token.Leading...)
	}
	valueLead := concat(before, cst.Leading(value))

	if !multiline(valueLead) && !multiline(after) && !spansLines(value) && isReturnable(value) {
		return cst.NewNode(cst.Return, ret, cst.WithLeading(value, []token.Trivia{token.Space()}))
	}
	// многострочное значение остаётся в скобках вызова
	open := al.Elems[0].(*cst.Leaf).WithLeading([]token.Trivia{token.Space()})
	closing := al.Elems[len(al.Elems)-1].(*cst.Leaf).WithLeading(after)
	paren := cst.NewNode(cst.Paren, open, cst.WithLeading(value, valueLead), closing)
	return cst.NewNode(cst.Return, ret, paren)
}

func (e renameSpawn) apply(n *cst.Node) *cst.Node {
	callee := n.Elems[0].(*cst.Node)
	switch callee.Kind {
	case cst.Attribute:
		attr := cst.AttrName(callee)
		renamed := cst.NewLeaf(token.Synthetic(token.Name, e.name, attr.Token.Leading...))
		return n.With(0, callee.With(callee.Index(attr), renamed))
	case cst.Name:
		old := callee.Elems[0].(*cst.Leaf)
		head := cst.NewNode(cst.Name, cst.NewLeaf(token.Synthetic(token.Name, e.qualifier, old.Token.Leading...)))
		attr := cst.NewNode(cst.Attribute, head,
			cst.NewLeaf(token.Synthetic(token.Dot, ".")),
			cst.NewLeaf(token.Synthetic(token.Name, e.name)))
		return n.With(0, attr)
	}
	return n
}

// isPrimary reports whether an expression can follow 'await' without parentheses.
func isPrimary(n *cst.Node) bool {
	switch n.Kind {
	case cst.Name, cst.Attribute, cst.Call, cst.Subscript, cst.Paren,
		cst.Literal, cst.StringConcat, cst.Ellipsis,
		cst.List, cst.Dict, cst.Set, cst.Tuple:
		return true
	case cst.Comprehension:
		_, bracketed := n.Elems[0].(*cst.Leaf)
		return bracketed
	}
	return false
}

// isReturnable reports whether 'return <n>' parses as written.
func isReturnable(n *cst.Node) bool {
	switch n.Kind {
	case cst.NamedExpr:
		return false
	case cst.Comprehension:
		_, bracketed := n.Elems[0].(*cst.Leaf)
		return bracketed
	}
	return true
}

// spansLines reports whether any token after the first carries a line break or comment.
func spansLines(n *cst.Node) bool {
	first := true
	found := false
	cst.WalkLeaves(n, func(l *cst.Leaf) bool {
		if !first && multiline(l.Token.Leading) {
			found = true
			return false
		}
		first = false
		return true
	})
	return found
}

func parenthesize(n *cst.Node, lead []token.Trivia) *cst.Node {
	return cst.NewNode(cst.Paren,
		cst.NewLeaf(token.Synthetic(token.LParen, "(", lead...)),
		cst.WithLeading(n, nil),
		cst.NewLeaf(token.Synthetic(token.RParen, ")")))
}
