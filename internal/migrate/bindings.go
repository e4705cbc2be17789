package migrate

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"cocomig/internal/cst"
	"cocomig/internal/token"
)

// bindings maps local names to the marker-module paths they refer to.
// Collected once per file from every import statement; shadowing by
// assignment is not tracked.
type bindings struct {
	markers Markers // NFKC-normalised
	names   map[string][]string
	alias   string // local name bound to the module itself, "" if none
}

func collectBindings(root *cst.Node, m Markers) *bindings {
	b := &bindings{
		markers: Markers{
			Module:      ident(m.Module),
			Coroutine:   ident(m.Coroutine),
			Fork:        ident(m.Fork),
			StartSoon:   m.StartSoon,
			ReturnValue: ident(m.ReturnValue),
		},
		names: make(map[string][]string),
	}
	cst.Walk(root, func(n *cst.Node) bool {
		switch n.Kind {
		case cst.Import:
			for _, a := range n.Children(cst.ImportAlias) {
				b.addImport(a)
			}
			return false
		case cst.ImportFrom:
			b.addImportFrom(n)
			return false
		}
		return true
	})
	return b
}

// import cocotb / import cocotb as cb / import cocotb.triggers
func (b *bindings) addImport(alias *cst.Node) {
	path, as := cst.ImportAliasParts(alias)
	path = idents(path)
	if len(path) == 0 || path[0] != b.markers.Module {
		return
	}
	if as == "" {
		b.bind(path[0], path[:1])
		return
	}
	b.bind(ident(as), path)
}

// from cocotb import fork as spawn / from cocotb.decorators import coroutine / from cocotb import *
func (b *bindings) addImportFrom(n *cst.Node) {
	module, level := cst.ImportFromModule(n)
	module = idents(module)
	if level != 0 || len(module) == 0 || module[0] != b.markers.Module {
		return
	}
	if n.HasLeaf(token.Star) {
		for _, name := range []string{b.markers.Coroutine, b.markers.Fork, b.markers.ReturnValue} {
			if _, ok := b.names[name]; !ok {
				b.names[name] = append(slices.Clone(module), name)
			}
		}
		return
	}
	for _, a := range n.Children(cst.ImportAlias) {
		path, as := cst.ImportAliasParts(a)
		if len(path) != 1 {
			continue
		}
		local := ident(path[0])
		if as != "" {
			local = ident(as)
		}
		b.bind(local, append(slices.Clone(module), ident(path[0])))
	}
}

func (b *bindings) bind(local string, path []string) {
	b.names[local] = path
	if len(path) == 1 && (b.alias == "" || local == b.markers.Module) {
		b.alias = local
	}
}

// resolve returns the qualified path of a dotted expression whose head is
// bound to the marker module. The module name itself always resolves.
func (b *bindings) resolve(expr *cst.Node) ([]string, bool) {
	parts, ok := cst.DottedNames(expr)
	if !ok {
		return nil, false
	}
	parts = idents(parts)
	if q, bound := b.names[parts[0]]; bound {
		return append(slices.Clone(q), parts[1:]...), true
	}
	if parts[0] == b.markers.Module {
		return parts, true
	}
	return nil, false
}

// qualifier is the name used to spell module.start_soon for a bare fork call.
func (b *bindings) qualifier() string { return b.alias }

// ident нормализует идентификатор по NFKC, как это делает Python.
func ident(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return norm.NFKC.String(s)
		}
	}
	return s
}

func idents(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = ident(p)
	}
	return out
}
