package driver

import (
	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/lexer"
	"cocomig/internal/parser"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

// Single is one file loaded on its own for the tokenize and parse dumps.
// Errors land in Bag and never stop the dump early.
type Single struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
}

type TokenizeResult struct {
	Single
	Tokens []token.Token
}

type ParseResult struct {
	Single
	Root *cst.Node // nil when Bag has errors
}

func loadSingle(path string, maxDiagnostics int) (Single, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return Single{}, errors.WrapWith(err, ErrLoad)
	}
	return Single{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(maxDiagnostics)}, nil
}

// Tokenize lexes path to EOF, recovering after lexical errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	s, err := loadSingle(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: s.Bag})
	return &TokenizeResult{Single: s, Tokens: lexer.Tokenize(s.File, lexer.Options{Reporter: rep})}, nil
}

// Parse builds the concrete syntax tree of path. A syntax error is reported
// into Bag, not returned.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	maxDiagnostics = max(maxDiagnostics, 0)
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, errors.Errorf("max diagnostics: %w", err)
	}
	s, err := loadSingle(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	root, err := parser.ParseFile(s.File, parser.Options{
		Reporter:  diag.BagReporter{Bag: s.Bag},
		MaxErrors: maxErrors,
	})
	var pe *diag.ParseError
	if err != nil && !errors.As(err, &pe) {
		return nil, err
	}
	return &ParseResult{Single: s, Root: root}, nil
}
