package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cocomig/internal/pipeline"
)

// maxVisible caps the file list; the rest is summarised in one line.
const maxVisible = 20

const statusWidth = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Width(statusWidth).Align(lipgloss.Right)
	stateColors = map[rowState]lipgloss.Color{
		rowQueued: "7",
		rowActive: "6",
		rowDone:   "2",
		rowFailed: "1",
		rowCached: "4",
	}
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowActive
	rowDone
	rowFailed
	rowCached
)

func (s rowState) final() bool { return s >= rowDone }

// stageWeight is how far into its pipeline a file is while in a stage.
var stageWeight = map[pipeline.Stage]float64{
	pipeline.StageRead:    0.05,
	pipeline.StageParse:   0.3,
	pipeline.StageScan:    0.7,
	pipeline.StageRewrite: 0.7,
	pipeline.StageWrite:   0.9,
}

var stageVerb = map[pipeline.Stage]string{
	pipeline.StageRead:    "reading",
	pipeline.StageParse:   "parsing",
	pipeline.StageScan:    "scanning",
	pipeline.StageRewrite: "rewriting",
	pipeline.StageWrite:   "writing",
}

type row struct {
	path  string
	state rowState
	stage pipeline.Stage
}

func (r row) label() string {
	switch r.state {
	case rowActive:
		return stageVerb[r.stage]
	case rowDone:
		return "done"
	case rowFailed:
		return "error"
	case rowCached:
		return "cached"
	}
	return "queued"
}

func (r row) weight() float64 {
	if r.state.final() {
		return 1
	}
	return stageWeight[r.stage]
}

// fileProgress shows one row per file and an overall bar.
type fileProgress struct {
	title    string
	events   <-chan pipeline.Event
	spin     spinner.Model
	bar      progress.Model
	rows     []row
	byPath   map[string]int
	finished int
	width    int
	closed   bool
}

type (
	eventMsg  pipeline.Event
	closedMsg struct{}
)

// NewProgressModel returns a Bubble Tea model that renders per-file pipeline
// progress. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	m := &fileProgress{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = row{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *fileProgress) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next ждёт следующее событие; закрытый канал завершает программу.
func (m *fileProgress) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *fileProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.closed {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// apply moves a file's row forward. A file is finished by an error, a cache
// hit, or done on scan (check), rewrite or write (apply). A write that starts
// after rewrite reopens the row.
func (m *fileProgress) apply(ev pipeline.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	wasFinal := r.state.final()
	switch ev.Status {
	case pipeline.StatusWorking:
		r.state, r.stage = rowActive, ev.Stage
	case pipeline.StatusError:
		r.state = rowFailed
	case pipeline.StatusCached:
		r.state = rowCached
	case pipeline.StatusDone:
		r.stage = ev.Stage
		if ev.Stage == pipeline.StageScan || ev.Stage == pipeline.StageRewrite || ev.Stage == pipeline.StageWrite {
			r.state = rowDone
		}
	}
	switch final := r.state.final(); {
	case final && !wasFinal:
		m.finished++
	case !final && wasFinal:
		m.finished--
	}
	return m.bar.SetPercent(m.percent())
}

func (m *fileProgress) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

func (m *fileProgress) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for i, r := range m.rows {
		if i == maxVisible {
			fmt.Fprintf(&b, "  %s %d more\n", cellStyle.Render("…"), len(m.rows)-maxVisible)
			break
		}
		cell := cellStyle.Foreground(stateColors[r.state]).Render(r.label())
		fmt.Fprintf(&b, "  %s %s\n", cell, truncate(r.path, nameWidth))
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *fileProgress) header() string {
	count := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.rows))
	if m.closed {
		return headerStyle.Render("done: " + count)
	}
	return m.spin.View() + " " + headerStyle.Render(count)
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
