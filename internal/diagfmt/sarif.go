package diagfmt

import (
	"io"
	"sort"

	"cocomig/internal/diag"
	"cocomig/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Related   []sarifRelated  `json:"relatedLocations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	Physical sarifPhysical `json:"physicalLocation"`
}

type sarifRelated struct {
	ID       int           `json:"id"`
	Physical sarifPhysical `json:"physicalLocation"`
	Message  sarifMessage  `json:"message"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func sarifLevel(s diag.Severity) string {
	if s == diag.SevInfo {
		return "note"
	}
	return s.Label()
}

func sarifPhysicalFor(fs *source.FileSet, span source.Span) sarifPhysical {
	loc := locate(fs, span, PathModeRelative, true)
	return sarifPhysical{
		Artifact: sarifArtifact{URI: loc.File},
		Region: sarifRegion{
			StartLine:   loc.StartLine,
			StartColumn: loc.StartCol,
			EndLine:     loc.EndLine,
			EndColumn:   loc.EndCol,
			ByteOffset:  span.Start,
			ByteLength:  span.Len(),
		},
	}
}

// BuildSarif converts the bag into a SARIF 2.1.0 log with one run.
func BuildSarif(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) any {
	results := make([]sarifResult, 0, bag.Len())
	rules := make(map[diag.Code]struct{})
	failed := false
	for _, d := range bag.Items() {
		rules[d.Code] = struct{}{}
		if d.Severity == diag.SevError && !isMigrationCode(d.Code) {
			failed = true
		}
		r := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{Physical: sarifPhysicalFor(fs, d.Primary)}},
		}
		for i, n := range d.Notes {
			r.Related = append(r.Related, sarifRelated{
				ID:       i + 1,
				Physical: sarifPhysicalFor(fs, n.Span),
				Message:  sarifMessage{Text: n.Msg},
			})
		}
		for _, fx := range d.Fixes {
			r.Fixes = append(r.Fixes, sarifFix{Description: sarifMessage{Text: fx.Title}})
		}
		results = append(results, r)
	}

	codes := make([]diag.Code, 0, len(rules))
	for c := range rules {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	driver := sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, InformationURI: meta.InformationURI}
	for _, c := range codes {
		driver.Rules = append(driver.Rules, sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}})
	}

	run := sarifRun{Tool: sarifTool{Driver: driver}, Results: results}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !failed}}
	}
	return sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}}
}

func isMigrationCode(c diag.Code) bool { return c >= diag.MigInfo && c < diag.IOInfo }

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	return writeIndented(w, BuildSarif(bag, fs, meta))
}
