package driver

import (
	"cocomig/internal/config"
	"cocomig/internal/diag"
	"cocomig/internal/migrate"
	"cocomig/internal/pipeline"
	"cocomig/internal/source"
)

// Mode selects between reporting and rewriting.
type Mode uint8

const (
	// ModeCheck scans files and reports what would change.
	ModeCheck Mode = iota
	// ModeApply rewrites files.
	ModeApply
)

func (m Mode) String() string {
	if m == ModeApply {
		return "apply"
	}
	return "check"
}

// Request describes one run over a set of files.
type Request struct {
	Paths []string
	// BaseDir shortens displayed paths; empty means the working directory.
	BaseDir string
	Mode    Mode
	InPlace bool
	// Suffix overrides Config.Files.Suffix when set.
	Suffix string
	// Diff makes check mode compute the migrated source without writing it.
	Diff   bool
	Jobs   int
	Config *config.Config
	Cache  *Cache
	Sink   pipeline.Sink
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path string
	// Display is Path relative to the base directory, with forward slashes.
	Display   string
	File      *source.File
	Findings  []migrate.Finding // fixable
	Unfixable []migrate.Finding
	Changed   bool
	// Source is the migrated text; set in apply mode and for check --diff.
	Source  []byte
	OutPath string
	Cached  bool
	Err     error
	Timings pipeline.Timings
}

// All returns every finding of the file in document order.
func (r *FileResult) All() []migrate.Finding {
	res := migrate.Result{Findings: r.Findings, Unfixable: r.Unfixable}
	return res.All()
}

// Diagnostics converts the findings and the failure, if any, for diagfmt.
func (r *FileResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	if r.Err != nil {
		out = append(out, errorDiagnostic(r))
	}
	for _, f := range r.All() {
		out = append(out, f.Diagnostic())
	}
	return out
}

// Report aggregates a run. Files keep the sorted order of Request.Paths.
type Report struct {
	Mode    Mode
	FileSet *source.FileSet
	Files   []FileResult
	Timings pipeline.Timings
}

// Exit statuses.
const (
	ExitOK       = 0
	ExitFindings = 1 // check mode found something to migrate
	ExitFailure  = 2 // a file could not be read, parsed or written
)

// ExitCode decides the process status. Failures win over findings.
func (r *Report) ExitCode(mode Mode) int {
	code := ExitOK
	for i := range r.Files {
		f := &r.Files[i]
		if f.Err != nil {
			return ExitFailure
		}
		if mode == ModeCheck && (len(f.Findings) > 0 || len(f.Unfixable) > 0) {
			code = ExitFindings
		}
	}
	return code
}

// Stats counts what a run saw.
type Stats struct {
	Files     int
	Changed   int
	Unchanged int
	Failed    int
	Fixable   int
	Unfixable int
	Cached    int
}

func (r *Report) Stats() Stats {
	s := Stats{Files: len(r.Files)}
	for i := range r.Files {
		f := &r.Files[i]
		switch {
		case f.Err != nil:
			s.Failed++
		case f.Changed:
			s.Changed++
		default:
			s.Unchanged++
		}
		if f.Cached {
			s.Cached++
		}
		s.Fixable += len(f.Findings)
		s.Unfixable += len(f.Unfixable)
	}
	return s
}

// Diagnostics gathers every file's diagnostics in (path, offset) order.
func (r *Report) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		out = append(out, r.Files[i].Diagnostics()...)
	}
	return out
}
