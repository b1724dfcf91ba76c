package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"simpleparser/internal/buildpipeline"
)

// RunProgress renders events until the channel is closed or ctx is cancelled.
func RunProgress(ctx context.Context, out io.Writer, title string, files []string, events <-chan buildpipeline.Event) error {
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := prog.Run()
	return err
}
