package migrate

import (
	"cmp"
	"slices"

	"cocomig/internal/diag"
	"cocomig/internal/source"
)

// Finding records one deprecated construct.
type Finding struct {
	Kind      Kind           `json:"kind" msgpack:"kind"`
	Span      source.Span    `json:"-" msgpack:"span"`
	Start     source.LineCol `json:"start" msgpack:"start"`
	End       source.LineCol `json:"end" msgpack:"end"`
	Message   string         `json:"message" msgpack:"message"`
	Unfixable bool           `json:"unfixable,omitempty" msgpack:"unfixable"`
	Reason    string         `json:"reason,omitempty" msgpack:"reason"`
	Function  string         `json:"function,omitempty" msgpack:"function"`
}

// Result is the outcome of Migrate for one file.
type Result struct {
	Source    []byte
	Findings  []Finding // rewritten
	Unfixable []Finding // reported, left as is
	Changed   bool
}

// All returns fixable and unfixable findings merged in document order.
func (r *Result) All() []Finding {
	var out []Finding
	out = append(append(out, r.Findings...), r.Unfixable...)
	SortFindings(out)
	return out
}

// SortFindings orders findings by start offset, end offset, then kind.
func SortFindings(fs []Finding) {
	slices.SortStableFunc(fs, func(a, b Finding) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Span.End, b.Span.End); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
}

// Split partitions findings into fixable and unfixable, keeping order.
func Split(fs []Finding) (fixable, unfixable []Finding) {
	for _, f := range fs {
		if f.Unfixable {
			unfixable = append(unfixable, f)
		} else {
			fixable = append(fixable, f)
		}
	}
	return fixable, unfixable
}

// Diagnostic converts the finding for the diag pipeline.
// Fixable findings are warnings carrying a fix title; unfixable ones are errors
// with the reason as a note.
func (f Finding) Diagnostic() diag.Diagnostic {
	if f.Unfixable {
		return diag.NewError(f.Kind.Code(), f.Span, f.Message).WithNote(f.Span, f.Reason)
	}
	return diag.New(diag.SevWarning, f.Kind.Code(), f.Span, f.Message).WithFix(fixTitle(f.Kind))
}

func fixTitle(k Kind) string {
	switch k {
	case DeprecatedCoroutineDecorator:
		return "remove the decorator and declare the function 'async def'"
	case DeprecatedSuspendExpression:
		return "replace 'yield' with 'await'"
	case DeprecatedValueReturn:
		return "replace with a native 'return'"
	case DeprecatedSpawnCall:
		return "call 'start_soon' instead"
	}
	return ""
}
