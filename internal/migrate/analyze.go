package migrate

import (
	"fmt"

	"cocomig/internal/cst"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

// scope is the conversion context of the innermost function. It is passed by
// value: entering a function, lambda or class builds a fresh one, so nothing
// leaks into siblings or nested definitions.
type scope struct {
	converting bool
	fn         *cst.Node // FuncDef or Lambda; nil at module and class level
	name       string
	async      bool
	blocked    string // why the enclosing decorated function stays v1
}

// analysis is the single read-only pass shared by Scan and Migrate.
type analysis struct {
	file     *source.File
	markers  Markers
	b        *bindings
	findings []Finding
	edits    map[*cst.Node]edit
}

func analyze(root *cst.Node, f *source.File, m Markers) *analysis {
	a := &analysis{
		file:    f,
		markers: m,
		b:       collectBindings(root, m),
		edits:   make(map[*cst.Node]edit),
	}
	a.walk(root, scope{})
	SortFindings(a.findings)
	return a
}

func (a *analysis) walk(n *cst.Node, sc scope) {
	switch n.Kind {
	case cst.FuncDef:
		a.enterFunc(n, sc)
		return
	case cst.Lambda:
		sc = scope{fn: n, name: "<lambda>"}
	case cst.ClassDef:
		sc = scope{}
	case cst.Yield, cst.YieldFrom:
		a.suspend(n, sc)
	case cst.ExprStmt, cst.Raise:
		a.valueReturn(n, sc)
	case cst.Call:
		a.spawn(n)
	}
	for _, c := range n.Nodes() {
		a.walk(c, sc)
	}
}

// enterFunc decides whether a decorated function is converted. Decorators,
// parameters and the return annotation belong to the enclosing scope; only
// the body runs in the function's own scope.
func (a *analysis) enterFunc(n *cst.Node, outer scope) {
	fv, _ := cst.AsFunc(n)
	inner := scope{fn: n, name: fv.Name(), async: fv.Async() != nil}

	var matched []int
	for i, e := range n.Elems {
		if d, ok := e.(*cst.Node); ok && d.Kind == cst.Decorator && (decoratorMatcher{}).match(d, a.b) {
			matched = append(matched, i)
		}
	}
	if len(matched) > 0 {
		if blk := a.firstBlocker(fv.Body(), inner.async); blk != nil {
			pos := a.file.Position(blk.node.Span().Start)
			inner.blocked = fmt.Sprintf("'%s' cannot be converted: %s (line %d)", inner.name, blk.reason, pos.Line)
		} else {
			inner.converting = true
			a.edits[n] = convertFunc{decorators: matched, addAsync: !inner.async}
		}
		for _, i := range matched {
			dec := n.Elems[i].(*cst.Node)
			f := a.finding(DeprecatedCoroutineDecorator, decoratorSpan(dec),
				fmt.Sprintf("'@%s' marks '%s' as a generator-based coroutine", cst.DecoratorExpr(dec).Text(), inner.name))
			f.Function = inner.name
			if !inner.converting {
				f.Unfixable, f.Reason = true, inner.blocked
			}
			a.findings = append(a.findings, f)
		}
	}

	for _, c := range n.Nodes() {
		if c.Kind == cst.Suite {
			a.walk(c, inner)
		} else {
			a.walk(c, outer)
		}
	}
}

type blocker struct {
	node   *cst.Node
	reason string
}

// firstBlocker finds the first construct in the function's own scope that
// cannot be rewritten. Its scope rules mirror walk.
func (a *analysis) firstBlocker(body *cst.Node, async bool) *blocker {
	var found *blocker
	eachInScope(body, func(c *cst.Node) bool {
		switch c.Kind {
		case cst.Yield, cst.YieldFrom:
			if r := suspendProblem(c); !async && r != "" {
				found = &blocker{node: c, reason: r}
			}
		case cst.ExprStmt, cst.Raise:
			if call := valueReturnCall(c, a.b); call != nil {
				if r := valueReturnProblem(call); r != "" {
					found = &blocker{node: c, reason: r}
				}
			}
		}
		return found == nil
	})
	return found
}

// eachInScope calls fn for every node under n that belongs to n's function
// scope, in document order. Lambdas and classes are skipped whole; of a nested
// def only the decorators, parameters and annotation are visited.
func eachInScope(n *cst.Node, fn func(*cst.Node) bool) bool {
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.Lambda, cst.ClassDef:
			continue
		case cst.FuncDef:
			for _, fc := range c.Nodes() {
				if fc.Kind == cst.Suite {
					continue
				}
				if !fn(fc) || !eachInScope(fc, fn) {
					return false
				}
			}
			continue
		}
		if !fn(c) || !eachInScope(c, fn) {
			return false
		}
	}
	return true
}

func (a *analysis) suspend(n *cst.Node, sc scope) {
	if sc.async {
		// async generator: already v2
		return
	}
	msg := "'yield' used as a suspend point"
	if n.Kind == cst.YieldFrom {
		msg = "'yield from' used as a suspend point"
	}
	f := a.finding(DeprecatedSuspendExpression, n.Span(), msg)
	f.Function = sc.name
	problem := suspendProblem(n)
	switch {
	case sc.converting && problem == "":
		a.edits[n] = yieldToAwait{}
	case problem != "":
		f.Unfixable, f.Reason = true, problem
	default:
		f.Unfixable, f.Reason = true, a.outside(sc)
	}
	a.findings = append(a.findings, f)
}

func (a *analysis) valueReturn(n *cst.Node, sc scope) {
	call := valueReturnCall(n, a.b)
	if call == nil {
		return
	}
	callee, _ := cst.AsCall(call)
	f := a.finding(DeprecatedValueReturn, n.Span(),
		fmt.Sprintf("'%s(...)' used to return a value", callee.Func().Text()))
	f.Function = sc.name
	problem := valueReturnProblem(call)
	switch {
	case sc.converting && problem == "":
		a.edits[n] = valueToReturn{}
	case problem != "":
		f.Unfixable, f.Reason = true, problem
	default:
		f.Unfixable, f.Reason = true, a.outside(sc)
	}
	a.findings = append(a.findings, f)
}

func (a *analysis) spawn(n *cst.Node) {
	if !(spawnMatcher{}).match(n, a.b) {
		return
	}
	call, _ := cst.AsCall(n)
	callee := call.Func()
	f := a.finding(DeprecatedSpawnCall, callee.Span(),
		fmt.Sprintf("'%s' is deprecated, use '%s'", callee.Text(), a.markers.StartSoon))
	switch {
	case callee.Kind == cst.Attribute:
		a.edits[n] = renameSpawn{name: a.markers.StartSoon}
	case a.b.qualifier() != "":
		a.edits[n] = renameSpawn{name: a.markers.StartSoon, qualifier: a.b.qualifier()}
	default:
		f.Unfixable = true
		f.Reason = fmt.Sprintf("no 'import %s' in this file to qualify '%s'", a.markers.Module, a.markers.StartSoon)
	}
	a.findings = append(a.findings, f)
}

func (a *analysis) outside(sc scope) string {
	if sc.blocked != "" {
		return sc.blocked
	}
	return fmt.Sprintf("not inside a function decorated with '@%s.%s'", a.markers.Module, a.markers.Coroutine)
}

func (a *analysis) finding(k Kind, sp source.Span, msg string) Finding {
	start, end := a.file.Resolve(sp)
	return Finding{Kind: k, Span: sp, Start: start, End: end, Message: msg}
}

// suspendProblem explains why a yield has no direct await form; "" if it has one.
func suspendProblem(n *cst.Node) string {
	if n.Kind == cst.YieldFrom {
		return "'yield from' delegates to another generator and has no direct 'await' form"
	}
	operand := cst.YieldOperand(n)
	if operand == nil {
		return "a bare 'yield' has no direct 'await' equivalent"
	}
	switch operand.Kind {
	case cst.Tuple, cst.List, cst.Set:
		return "yielding several triggers waits for the first of them; rewrite with 'await First(...)'"
	}
	return ""
}

// valueReturnProblem explains why a ReturnValue call cannot become a return.
func valueReturnProblem(call *cst.Node) string {
	cv, _ := cst.AsCall(call)
	args := cv.Args()
	switch {
	case len(args) == 0:
		return ""
	case len(args) > 1:
		return "more than one argument cannot become a single return value"
	case cst.ArgStar(args[0]) != token.Invalid:
		return "an unpacked argument cannot become a return value"
	}
	if kw := cst.ArgKeyword(args[0]); kw != "" && ident(kw) != retvalKeyword {
		return fmt.Sprintf("unexpected keyword argument '%s'", kw)
	}
	return ""
}

// decoratorSpan covers '@' and the expression, without the line break.
func decoratorSpan(dec *cst.Node) source.Span {
	at := dec.FirstLeaf().Span()
	return source.Span{File: at.File, Start: at.Start, End: cst.DecoratorExpr(dec).Span().End}
}
