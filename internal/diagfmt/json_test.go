package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cocomig/internal/diag"
	"cocomig/internal/migrate"
	"cocomig/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("def f():\n    x = \"unterminated\n")
	fileID := fs.AddVirtual("test.py", content)

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 17, End: 30}, "Unterminated string literal")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 3}, "inside f")
	bag.Add(d)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output JSONDiagnostics
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}
	got := output.Diagnostics[0]
	if got.Severity != "error" || got.Code != "LEX1002" {
		t.Errorf("severity/code = %s/%s", got.Severity, got.Code)
	}
	if got.Location.File != "test.py" || got.Location.StartLine != 2 || got.Location.StartCol != 9 {
		t.Errorf("location = %+v", got.Location)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "inside f" {
		t.Errorf("notes = %+v", got.Notes)
	}
}

func TestJSONMaxAndNoPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.py", []byte("x\ny\nz\n"))
	bag := diag.NewBag(0)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.MigSuspendPoint, source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "m").WithFix("t"))
	}

	output := EncodeDiagnostics(bag.Items(), fs, JSONOpts{Max: 2, PathMode: PathModeBasename})
	if len(output) != 2 {
		t.Fatalf("len = %d", len(output))
	}
	if output[0].Location.StartLine != 0 || output[0].Location.File != "a.py" {
		t.Errorf("location = %+v", output[0].Location)
	}
	if output[0].Fixes != nil {
		t.Errorf("fixes included without IncludeFixes")
	}
}

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/work")
	fileID := fs.AddVirtual("/work/tb/test.py", []byte("cocotb.fork(x)\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.MigSpawnCall, source.Span{File: fileID, Start: 0, End: 11}, "deprecated").WithFix("call 'start_soon' instead"))
	bag.Add(diag.NewError(diag.MigValueReturn, source.Span{File: fileID, Start: 12, End: 13}, "value").
		WithNote(source.Span{File: fileID, Start: 12, End: 13}, "why"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "cocomig", ToolVersion: "1.0.0", InvocationArgs: []string{"check", "."}}); err != nil {
		t.Fatal(err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				Fixes []json.RawMessage `json:"fixes"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "cocomig" || len(run.Tool.Driver.Rules) != 2 {
		t.Errorf("driver = %+v", run.Tool.Driver)
	}
	if len(run.Invocations) != 1 || !run.Invocations[0].ExecutionSuccessful {
		t.Errorf("migration errors must not mark the run as failed: %+v", run.Invocations)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %d", len(run.Results))
	}
	r0 := run.Results[0]
	if r0.RuleID != "MIG3004" || r0.Level != "warning" || len(r0.Fixes) != 1 {
		t.Errorf("result 0 = %+v", r0)
	}
	if loc := r0.Locations[0].PhysicalLocation; loc.ArtifactLocation.URI != "tb/test.py" || loc.Region.StartLine != 1 || loc.Region.StartColumn != 1 {
		t.Errorf("location = %+v", loc)
	}
	if run.Results[1].Level != "error" {
		t.Errorf("result 1 level = %s", run.Results[1].Level)
	}
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReportJSON(&buf, ReportJSON{
		Mode: "check",
		Files: []FileJSON{
			{Path: "tb.py", Changed: true, Findings: []migrate.Finding{{Kind: migrate.DeprecatedSpawnCall, Message: "m"}}},
			{Path: "ok.py"},
		},
		Summary:  SummaryJSON{Files: 2, Changed: 1, Unchanged: 1, Fixable: 1},
		ExitCode: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"kind": "DeprecatedSpawnCall"`, `"unfixable": []`, `"exit_code": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
}
