package parser_test

import (
	"strings"
	"testing"

	"cocomig/internal/cst"
	"cocomig/internal/parser"
	"cocomig/internal/source"
)

func mustParse(t *testing.T, src string) *cst.Node {
	t.Helper()
	root, _, err := parser.ParseSource("test.py", []byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

// kinds возвращает последовательность видов узлов в прямом обходе.
func kinds(n *cst.Node) string {
	var parts []string
	cst.Walk(n, func(c *cst.Node) bool {
		parts = append(parts, c.Kind.String())
		return true
	})
	return strings.Join(parts, " ")
}

// find returns the first node of kind k in preorder.
func find(n *cst.Node, k cst.Kind) *cst.Node {
	var found *cst.Node
	cst.Walk(n, func(c *cst.Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == k {
			found = c
			return false
		}
		return true
	})
	return found
}

func parseWith(src string, opts parser.Options) (*cst.Node, *source.File, error) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.py", []byte(src)))
	root, err := parser.ParseFile(f, opts)
	return root, f, err
}
