package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cocomig/internal/diag"
	"cocomig/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, mark, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Faint),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		mark:   mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgMagenta),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) (string, source.LineCol, *source.File) {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>", source.LineCol{}, nil
	}
	path := f.FormatPath(mode.format(), fs.BaseDir())
	return path, f.Position(span.Start), f
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path, pos, f := location(fs, d.Primary, opts.PathMode)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, pos.Line, pos.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if f != nil && len(f.Content) > 0 {
		writeContext(w, f, d.Primary, opts, p)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npath, npos, _ := location(fs, n.Span, opts.PathMode)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), npath, npos.Line, npos.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), fx.Title)
			for _, e := range fx.Edits {
				ef := fs.Get(e.Span.File)
				if ef == nil {
					continue
				}
				s, en := ef.Resolve(e.Span)
				fmt.Fprintf(w, "    edit %d:%d-%d:%d apply=%q\n", s.Line, s.Col, en.Line, en.Col, e.NewText)
			}
		}
	}
}

// writeContext prints the primary line with Context lines around it and
// underlines the span on the primary line.
func writeContext(w io.Writer, f *source.File, span source.Span, opts PrettyOpts, p palette) {
	start, end := f.Resolve(span)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lineCount(f))
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), truncate(expandTabs(text), opts.Width))
		if ln != start.Line {
			continue
		}
		col := int(start.Col) - 1
		col = min(col, len(text))
		endCol := len(text)
		if end.Line == start.Line {
			endCol = min(int(end.Col)-1, len(text))
		}
		pad := displayWidth(text[:col])
		width := max(displayWidth(text[col:max(endCol, col)]), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.mark.Sprint(underline))
	}
}
