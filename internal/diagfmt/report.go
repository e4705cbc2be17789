package diagfmt

import (
	"io"

	"cocomig/internal/migrate"
)

// FileJSON is one file of a check or apply run.
type FileJSON struct {
	Path      string            `json:"path"`
	Changed   bool              `json:"changed"`
	OutPath   string            `json:"out_path,omitempty"`
	Error     string            `json:"error,omitempty"`
	Findings  []migrate.Finding `json:"findings"`
	Unfixable []migrate.Finding `json:"unfixable"`
	// Diagnostics locates Error when it points into the file.
	Diagnostics []JSONDiagnostic `json:"diagnostics,omitempty"`
}

// SummaryJSON counts files and findings.
type SummaryJSON struct {
	Files     int `json:"files"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
	Fixable   int `json:"fixable"`
	Unfixable int `json:"unfixable"`
}

// ReportJSON is the --format json document of check and apply.
type ReportJSON struct {
	Mode     string      `json:"mode"`
	Files    []FileJSON  `json:"files"`
	Summary  SummaryJSON `json:"summary"`
	ExitCode int         `json:"exit_code"`
}

// WriteReportJSON encodes r with the same indentation as JSON.
func WriteReportJSON(w io.Writer, r ReportJSON) error {
	for i := range r.Files {
		if r.Files[i].Findings == nil {
			r.Files[i].Findings = []migrate.Finding{}
		}
		if r.Files[i].Unfixable == nil {
			r.Files[i].Unfixable = []migrate.Finding{}
		}
	}
	if r.Files == nil {
		r.Files = []FileJSON{}
	}
	return writeIndented(w, r)
}
