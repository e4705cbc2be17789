package migrate

import (
	"cocomig/internal/cst"
	"cocomig/internal/token"
)

// matcher is the closed set of construct detectors. Each is a pure predicate
// over one node kind; the analysis decides what to do with a match.
type matcher interface {
	kind() Kind
	match(n *cst.Node, b *bindings) bool
	isMatcher()
}

type (
	decoratorMatcher   struct{}
	suspendMatcher     struct{}
	valueReturnMatcher struct{}
	spawnMatcher       struct{}
)

func (decoratorMatcher) isMatcher()   {}
func (suspendMatcher) isMatcher()     {}
func (valueReturnMatcher) isMatcher() {}
func (spawnMatcher) isMatcher()       {}

func (decoratorMatcher) kind() Kind   { return DeprecatedCoroutineDecorator }
func (suspendMatcher) kind() Kind     { return DeprecatedSuspendExpression }
func (valueReturnMatcher) kind() Kind { return DeprecatedValueReturn }
func (spawnMatcher) kind() Kind       { return DeprecatedSpawnCall }

// matcherFor dispatches by node kind; nil when no matcher applies.
func matcherFor(k cst.Kind) matcher {
	switch k {
	case cst.Decorator:
		return decoratorMatcher{}
	case cst.Yield, cst.YieldFrom:
		return suspendMatcher{}
	case cst.ExprStmt, cst.Raise:
		return valueReturnMatcher{}
	case cst.Call:
		return spawnMatcher{}
	}
	return nil
}

// @cocotb.coroutine, @cocotb.decorators.coroutine, @coroutine (imported), and the call forms.
func (decoratorMatcher) match(n *cst.Node, b *bindings) bool {
	expr := cst.DecoratorExpr(n)
	if call, ok := cst.AsCall(expr); ok {
		expr = call.Func()
	}
	path, ok := b.resolve(expr)
	if !ok || path[len(path)-1] != b.markers.Coroutine {
		return false
	}
	return len(path) == 2 || (len(path) == 3 && path[1] == "decorators")
}

func (suspendMatcher) match(n *cst.Node, _ *bindings) bool {
	return n.Kind == cst.Yield || n.Kind == cst.YieldFrom
}

func (valueReturnMatcher) match(n *cst.Node, b *bindings) bool {
	return valueReturnCall(n, b) != nil
}

// valueReturnCall returns the ReturnValue(...) call of `ReturnValue(...)` or
// `raise ReturnValue(...)`, nil otherwise.
func valueReturnCall(n *cst.Node, b *bindings) *cst.Node {
	var expr *cst.Node
	switch n.Kind {
	case cst.ExprStmt:
		expr = n.Nodes()[0]
	case cst.Raise:
		if n.HasLeaf(token.KwFrom) {
			return nil
		}
		nodes := n.Nodes()
		if len(nodes) != 1 {
			return nil
		}
		expr = nodes[0]
	default:
		return nil
	}
	call, ok := cst.AsCall(expr)
	if !ok {
		return nil
	}
	callee := call.Func()
	if callee.Kind == cst.Name {
		if parts, _ := cst.DottedNames(callee); ident(parts[0]) == b.markers.ReturnValue {
			return expr
		}
	}
	path, ok := b.resolve(callee)
	if !ok || path[len(path)-1] != b.markers.ReturnValue {
		return nil
	}
	if len(path) == 2 || (len(path) == 3 && path[1] == "result") {
		return expr
	}
	return nil
}

// cocotb.fork(...) or a bare name imported from the module as fork.
func (spawnMatcher) match(n *cst.Node, b *bindings) bool {
	call, ok := cst.AsCall(n)
	if !ok {
		return false
	}
	path, ok := b.resolve(call.Func())
	return ok && len(path) == 2 && path[1] == b.markers.Fork
}
