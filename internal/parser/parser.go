package parser

import (
	"fortio.org/safecast"

	"cocomig/internal/cst"
	"cocomig/internal/diag"
	"cocomig/internal/lexer"
	"cocomig/internal/source"
	"cocomig/internal/token"
)

type Options struct {
	// Reporter дополнительно получает все диагностики лексера и парсера; может быть nil.
	Reporter diag.Reporter
	// MaxErrors ограничивает число диагностик лексера в сумке (0: без ограничений).
	MaxErrors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token // поток токенов; последний всегда EOF
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// bailout прерывает разбор при первой синтаксической ошибке.
// Частичного дерева не бывает: файл с ошибкой не переписывается.
type bailout struct {
	code diag.Code
	span source.Span
	msg  string
}

// ParseFile: входная точка для разбора одного файла.
// Возвращает корень дерева (cst.File) либо *diag.ParseError.
func ParseFile(f *source.File, opts Options) (*cst.Node, error) {
	limit, err := safecast.Conv[int](opts.MaxErrors)
	if err != nil {
		limit = 0
	}
	bag := diag.NewBag(limit)
	// лексер может сообщить об одной ошибке дважды при восстановлении
	toks := lexer.Tokenize(f, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})
	if bag.HasErrors() {
		forward(opts.Reporter, bag)
		return nil, diag.NewParseError(f, bag)
	}

	p := &Parser{file: f, toks: toks, opts: opts}
	root, b := p.run()
	if b != nil {
		diag.Emit(diag.BagReporter{Bag: bag}, diag.NewError(b.code, b.span, b.msg))
		forward(opts.Reporter, bag)
		return nil, diag.NewParseError(f, bag)
	}
	return root, nil
}

// ParseSource registers src in a private file set and parses it.
func ParseSource(name string, src []byte) (*cst.Node, *source.File, error) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(name, src))
	root, err := ParseFile(f, Options{})
	if err != nil {
		return nil, f, err
	}
	return root, f, nil
}

func (p *Parser) run() (root *cst.Node, b *bailout) {
	defer func() {
		if r := recover(); r != nil {
			bo, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			root, b = nil, &bo
		}
	}()
	return p.parseFile(), nil
}

func forward(r diag.Reporter, bag *diag.Bag) {
	if r == nil {
		return
	}
	for _, d := range bag.Items() {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}
