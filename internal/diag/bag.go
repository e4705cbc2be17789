package diag

import (
	"cmp"
	"slices"

	"cocomig/internal/source"
)

// Bag collects diagnostics up to an optional limit.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag creates a bag that keeps at most limit diagnostics; limit <= 0 means
// unlimited.
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add возвращает false, когда лимит уже достигнут и d отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll adds ds in order and reports how many did not fit.
func (b *Bag) AddAll(ds []Diagnostic) (dropped int) {
	for i, d := range ds {
		if !b.Add(d) {
			return len(ds) - i
		}
	}
	return 0
}

func (b *Bag) full() bool { return b.limit > 0 && len(b.items) >= b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Items aliases the bag's storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// FirstError returns the first error-level diagnostic in insertion order.
func (b *Bag) FirstError() (Diagnostic, bool) {
	i := slices.IndexFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
	if i < 0 {
		return Diagnostic{}, false
	}
	return b.items[i], true
}

// Sort orders by file, start, end, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
