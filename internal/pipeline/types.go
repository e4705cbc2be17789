package pipeline

import "time"

// Stage describes one step of the per-file pipeline.
type Stage string

const (
	// StageRead loads the file from disk or the cache.
	StageRead Stage = "read"
	// StageParse builds the concrete syntax tree.
	StageParse Stage = "parse"
	// StageScan runs the matchers.
	StageScan Stage = "scan"
	// StageRewrite serializes the migrated tree.
	StageRewrite Stage = "rewrite"
	// StageWrite stores the result.
	StageWrite Stage = "write"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageRead, StageParse, StageScan, StageRewrite, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	// StatusCached marks a file whose scan came from the cache.
	StatusCached Status = "cached"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use: pipelines run in parallel.
type Sink interface {
	OnEvent(Event)
}

// Emit sends evt to s when s is non-nil.
func Emit(s Sink, evt Event) {
	if s != nil {
		s.OnEvent(evt)
	}
}

// EmitQueued announces every file before work starts.
func EmitQueued(s Sink, files []string) {
	for _, f := range files {
		Emit(s, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates a duration for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Merge adds every duration in o.
func (t *Timings) Merge(o Timings) {
	for stage, d := range o.stages {
		t.Add(stage, d)
	}
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
