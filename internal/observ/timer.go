package observ

import (
	"fmt"
	"strings"
	"time"

	"cocomig/internal/pipeline"
)

// Phase is one timed step of an invocation. Stage phases carry pipeline
// stage time summed over files and stay out of the total.
type Phase struct {
	Name  string
	Dur   time.Duration
	Note  string
	Stage bool
}

// Timer collects the phases of one cocomig run in order.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Begin starts a phase; the returned func ends it with an optional note.
// Ending twice keeps the first duration.
func (t *Timer) Begin(name string) (end func(note string)) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name})
	start := t.now()
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		t.phases[idx].Dur = t.now().Sub(start)
		t.phases[idx].Note = note
	}
}

// AddStages appends a phase for every stage with recorded time. With several
// jobs the sum can exceed wall time, hence the "cpu" note.
func (t *Timer) AddStages(timings pipeline.Timings) {
	for _, stage := range pipeline.Stages {
		if timings.Has(stage) {
			t.phases = append(t.phases, Phase{Name: string(stage), Dur: timings.Duration(stage), Note: "cpu", Stage: true})
		}
	}
}

// PhaseReport: фаза в миллисекундах, для вывода и сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var rep Report
	var total time.Duration
	for _, p := range t.phases {
		if !p.Stage {
			total += p.Dur
		}
		rep.Phases = append(rep.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary is the --timings table: one line per phase, then the total.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	line := func(name string, ms float64, note string) {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			b.WriteString("  // " + note)
		}
		b.WriteByte('\n')
	}
	for _, p := range rep.Phases {
		line(p.Name, p.DurationMS, p.Note)
	}
	line("total", rep.TotalMS, "")
	return b.String()
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
