package driver

import (
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/diag"
	"cocomig/internal/fix"
	"cocomig/internal/migrate"
	"cocomig/internal/source"
)

var (
	// ErrLoad marks files that could not be read.
	ErrLoad = errors.Base("load failed")
	// ErrNoFiles is returned when discovery found nothing to process.
	ErrNoFiles = errors.Base("no source files found")
)

func errorDiagnostic(r *FileResult) diag.Diagnostic {
	var pe *diag.ParseError
	if errors.As(r.Err, &pe) {
		return diag.NewError(pe.Code, pe.Span, pe.Message)
	}
	span := source.Span{}
	if r.File != nil {
		span.File = r.File.ID
	}
	code := diag.IOLoadFileError
	if errors.Is(r.Err, migrate.ErrInvalidOutput) {
		code = diag.MigInvalidOutput
	} else if errors.Is(r.Err, fix.ErrWrite) || errors.Is(r.Err, fix.ErrSamePath) || errors.Is(r.Err, fix.ErrNotRegular) {
		code = diag.IOWriteError
	}
	return diag.NewError(code, span, r.Err.Error())
}
