package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"cocomig/internal/diag"
	"cocomig/internal/diagfmt"
	"cocomig/internal/driver"
	"cocomig/internal/fix"
	"cocomig/internal/pipeline"
	"cocomig/internal/version"
)

type renderOpts struct {
	color       bool
	quiet       bool
	diff        bool
	maxFindings int
}

func collectBag(rep *driver.Report, max int) *diag.Bag {
	// сортируем до обрезки, чтобы лимит брал первые по файлу и смещению
	all := diag.NewBag(0)
	all.AddAll(rep.Diagnostics())
	all.Sort()
	all.Dedup()
	bag := diag.NewBag(max)
	bag.AddAll(all.Items())
	return bag
}

func renderPretty(w io.Writer, rep *driver.Report, mode driver.Mode, o renderOpts) error {
	bag := collectBag(rep, o.maxFindings)
	diagfmt.Pretty(w, bag, rep.FileSet, diagfmt.PrettyOpts{
		Color:     o.color,
		Context:   1,
		ShowNotes: true,
	})
	if total := len(rep.Diagnostics()); bag.Len() < total && !o.quiet {
		fmt.Fprintf(w, "... %d more finding(s) not shown (--max-findings %d)\n", total-bag.Len(), o.maxFindings)
	}

	if o.diff {
		for i := range rep.Files {
			f := &rep.Files[i]
			if !f.Changed || f.Source == nil || f.File == nil {
				continue
			}
			if err := diagfmt.Diff(w, f.Display, f.File.Content, f.Source, o.color); err != nil {
				return err
			}
		}
	}

	if o.quiet {
		return nil
	}
	if mode == driver.ModeApply {
		printApplySummary(w, applySummary(rep))
		return nil
	}
	printCheckSummary(w, rep.Stats())
	return nil
}

func printCheckSummary(w io.Writer, st driver.Stats) {
	changed := color.New(color.FgYellow, color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)

	if st.Changed == 0 && st.Failed == 0 && st.Unfixable == 0 {
		ok.Fprintf(w, "%d file(s) checked, nothing to migrate\n", st.Files)
		return
	}
	fmt.Fprintf(w, "%s, %s",
		changed.Sprintf("%d file(s) would be migrated", st.Changed),
		ok.Sprintf("%d unchanged", st.Unchanged))
	if st.Failed > 0 {
		fmt.Fprintf(w, ", %s", bad.Sprintf("%d failed", st.Failed))
	}
	fmt.Fprintf(w, " (%d rewrite(s)", st.Fixable)
	if st.Unfixable > 0 {
		fmt.Fprintf(w, ", %s", bad.Sprintf("%d need manual attention", st.Unfixable))
	}
	fmt.Fprintln(w, ")")
	if st.Changed > 0 {
		fmt.Fprintln(w, "Run again with apply (and optionally --inplace) to rewrite files.")
	}
}

// applySummary reshapes an apply report for printing.
func applySummary(rep *driver.Report) *fix.Summary {
	base := rep.FileSet.BaseDir()
	s := &fix.Summary{}
	for i := range rep.Files {
		f := &rep.Files[i]
		switch {
		case f.Err != nil:
			s.Skip(f.Display, f.Err.Error())
		case f.Changed:
			s.Add(fix.FileChange{
				Path:     f.Display,
				OutPath:  pipeline.DisplayPath(f.OutPath, base),
				Rewrites: len(f.Findings),
			})
		default:
			s.Unchanged++
		}
	}
	s.Sort()
	return s
}

func printApplySummary(w io.Writer, s *fix.Summary) {
	arrow := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range s.Changed {
		if c.OutPath == c.Path {
			fmt.Fprintf(w, "rewrote %s (%d rewrite(s))\n", c.Path, c.Rewrites)
			continue
		}
		fmt.Fprintf(w, "rewrote %s %s %s (%d rewrite(s))\n", c.Path, arrow.Sprint("->"), c.OutPath, c.Rewrites)
	}
	for _, sk := range s.Skipped {
		fmt.Fprintf(w, "%s %s: %s\n", bad.Sprint("skipped"), sk.Path, sk.Reason)
	}
	fmt.Fprintf(w, "%d file(s) rewritten, %d rewrite(s), %d unchanged", len(s.Changed), s.Rewrites(), s.Unchanged)
	if len(s.Skipped) > 0 {
		fmt.Fprintf(w, ", %s", bad.Sprintf("%d failed", len(s.Skipped)))
	}
	fmt.Fprintln(w)
}

func renderJSON(w io.Writer, rep *driver.Report, mode driver.Mode) error {
	base := rep.FileSet.BaseDir()
	st := rep.Stats()
	out := diagfmt.ReportJSON{
		Mode:     mode.String(),
		Files:    make([]diagfmt.FileJSON, 0, len(rep.Files)),
		ExitCode: rep.ExitCode(mode),
		Summary: diagfmt.SummaryJSON{
			Files:     st.Files,
			Changed:   st.Changed,
			Unchanged: st.Unchanged,
			Failed:    st.Failed,
			Fixable:   st.Fixable,
			Unfixable: st.Unfixable,
		},
	}
	for i := range rep.Files {
		f := &rep.Files[i]
		fj := diagfmt.FileJSON{
			Path:      f.Display,
			Changed:   f.Changed,
			Findings:  f.Findings,
			Unfixable: f.Unfixable,
		}
		if f.OutPath != "" {
			fj.OutPath = pipeline.DisplayPath(f.OutPath, base)
		}
		if f.Err != nil {
			fj.Error = f.Err.Error()
			fj.Diagnostics = diagfmt.EncodeDiagnostics(f.Diagnostics(), rep.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeRelative,
				IncludeNotes:     true,
			})
		}
		out.Files = append(out.Files, fj)
	}
	return diagfmt.WriteReportJSON(w, out)
}

func renderSarif(w io.Writer, rep *driver.Report, o renderOpts) error {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "cocomig",
		ToolVersion:    version.Current().Version,
		InformationURI: "https://www.cocotb.org",
		InvocationArgs: os.Args,
	}
	return diagfmt.Sarif(w, collectBag(rep, o.maxFindings), rep.FileSet, meta)
}

// renderShort prints one line per finding, notes included.
func renderShort(w io.Writer, rep *driver.Report, o renderOpts) error {
	bag := collectBag(rep, o.maxFindings)
	text := diag.FormatShortDiagnostics(bag.Items(), rep.FileSet, true)
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
