package migrate

import (
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/parser"
	"cocomig/internal/source"
)

// ErrInvalidOutput is returned when a rewrite would not parse back.
var ErrInvalidOutput = errors.Base("rewritten source does not parse")

// Scan parses src and reports every deprecated construct in document order.
// It returns a *diag.ParseError for invalid input.
func Scan(name string, src []byte, opts ...Option) ([]Finding, error) {
	root, f, err := parser.ParseSource(name, src)
	if err != nil {
		return nil, err
	}
	return Report(root, f, opts...), nil
}

// ScanFile is Scan for a file already registered in a FileSet.
func ScanFile(f *source.File, opts ...Option) ([]Finding, error) {
	root, err := parser.ParseFile(f, parser.Options{})
	if err != nil {
		return nil, err
	}
	return Report(root, f, opts...), nil
}

// Report runs the matchers over a parsed tree. It never modifies the tree.
func Report(root *cst.Node, f *source.File, opts ...Option) []Finding {
	o := buildOptions(opts)
	a := analyze(root, f, o.markers)
	o.emit(a.findings)
	return a.findings
}

// Migrate rewrites every fixable construct in src. Result.Findings lists what
// was rewritten and is always the fixable subset of Scan's output; with no
// fixable finding Result.Source is src itself.
func Migrate(name string, src []byte, opts ...Option) (*Result, error) {
	root, f, err := parser.ParseSource(name, src)
	if err != nil {
		return nil, err
	}
	res, err := migrateTree(root, f, opts)
	if err != nil {
		return nil, err
	}
	if !res.Changed {
		res.Source = src
	}
	return res, nil
}

// MigrateFile is Migrate for a file already registered in a FileSet.
func MigrateFile(f *source.File, opts ...Option) (*Result, error) {
	root, err := parser.ParseFile(f, parser.Options{})
	if err != nil {
		return nil, err
	}
	return migrateTree(root, f, opts)
}

// Rewrite is Migrate for a tree the caller already parsed from f.
func Rewrite(root *cst.Node, f *source.File, opts ...Option) (*Result, error) {
	return migrateTree(root, f, opts)
}

func migrateTree(root *cst.Node, f *source.File, opts []Option) (*Result, error) {
	o := buildOptions(opts)
	a := analyze(root, f, o.markers)
	o.emit(a.findings)

	res := &Result{Source: f.Content}
	res.Findings, res.Unfixable = Split(a.findings)
	if len(res.Findings) == 0 {
		return res, nil
	}
	out := []byte(cst.Serialize(rewrite(root, a.edits)))
	if _, _, err := parser.ParseSource(f.Path, out); err != nil {
		return nil, errors.WrapWith(err, ErrInvalidOutput)
	}
	res.Source = out
	res.Changed = true
	return res, nil
}

func (o options) emit(fs []Finding) {
	if o.reporter == nil {
		return
	}
	for _, f := range fs {
		diag.Emit(o.reporter, f.Diagnostic())
	}
}
