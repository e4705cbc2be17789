package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cocomig/internal/pipeline"
)

// Progress runs the progress view while work executes. work receives a sink
// that feeds the view; the view closes once work returns.
func Progress(ctx context.Context, out io.Writer, title string, files []string, work func(pipeline.Sink) error) error {
	events := make(chan pipeline.Event, 64)
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))

	workErr := make(chan error, 1)
	go func() {
		err := work(pipeline.ChannelSink{Ch: events})
		close(events)
		workErr <- err
	}()

	_, uiErr := prog.Run()
	if uiErr != nil {
		// представление упало: дочитываем события, чтобы работа не встала
		go func() {
			for range events {
			}
		}()
	}
	err := <-workErr
	if err != nil {
		return err
	}
	if uiErr != nil && ctx.Err() == nil {
		return uiErr
	}
	return nil
}
