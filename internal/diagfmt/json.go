package diagfmt

import (
	"encoding/json"
	"io"

	"cocomig/internal/diag"
	"cocomig/internal/source"
)

// JSONLocation is a span resolved against its file. Line and column fields
// are zero unless positions were requested.
type JSONLocation struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONEdit struct {
	Location JSONLocation `json:"location"`
	NewText  string       `json:"new_text"`
}

type JSONFix struct {
	Title string     `json:"title"`
	Edits []JSONEdit `json:"edits,omitempty"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
	Fixes    []JSONFix    `json:"fixes,omitempty"`
}

// JSONDiagnostics is the document written by JSON.
type JSONDiagnostics struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
}

func locate(fs *source.FileSet, span source.Span, mode PathMode, positions bool) JSONLocation {
	loc := JSONLocation{StartByte: span.Start, EndByte: span.End}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = f.FormatPath(mode.format(), fs.BaseDir())
	if positions {
		start, end := f.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// EncodeDiagnostics converts ds without serializing them; opts.Max caps the
// output, not the input.
func EncodeDiagnostics(ds []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) []JSONDiagnostic {
	if opts.Max > 0 && len(ds) > opts.Max {
		ds = ds[:opts.Max]
	}
	at := func(sp source.Span) JSONLocation { return locate(fs, sp, opts.PathMode, opts.IncludePositions) }
	out := make([]JSONDiagnostic, 0, len(ds))
	for _, d := range ds {
		jd := JSONDiagnostic{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, JSONNote{Message: n.Msg, Location: at(n.Span)})
			}
		}
		if opts.IncludeFixes {
			for _, fx := range d.Fixes {
				jf := JSONFix{Title: fx.Title}
				for _, e := range fx.Edits {
					jf.Edits = append(jf.Edits, JSONEdit{Location: at(e.Span), NewText: e.NewText})
				}
				jd.Fixes = append(jd.Fixes, jf)
			}
		}
		out = append(out, jd)
	}
	return out
}

// JSON пишет диагностики из bag одним документом.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	ds := EncodeDiagnostics(bag.Items(), fs, opts)
	return writeIndented(w, JSONDiagnostics{Diagnostics: ds, Count: len(ds)})
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
