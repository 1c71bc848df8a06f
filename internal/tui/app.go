package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"classboard/internal/engine"
)

// Run opens the interactive workboard.
func Run(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newAppModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
