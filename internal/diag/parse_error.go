package diag

import (
	"fmt"

	"cocomig/internal/source"
)

// ParseError is returned when a file cannot be tokenized or parsed.
// Nothing is rewritten for a file that produced a ParseError.
type ParseError struct {
	Path    string
	Code    Code
	Span    source.Span
	Pos     source.LineCol
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Pos.Line, e.Pos.Col, e.Code.ID(), e.Message)
}

// NewParseError builds a ParseError for the first error-level diagnostic in bag.
// It returns nil when bag has no errors.
func NewParseError(file *source.File, bag *Bag) *ParseError {
	if bag == nil {
		return nil
	}
	d, ok := bag.FirstError()
	if !ok {
		return nil
	}
	pe := &ParseError{Code: d.Code, Span: d.Primary, Message: d.Message}
	if file != nil {
		pe.Path = file.Path
		pe.Pos = file.Position(d.Primary.Start)
	}
	return pe
}
