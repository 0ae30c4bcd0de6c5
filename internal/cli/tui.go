package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hansollee/matzip/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := loadStore(ctx); err != nil {
		return err
	}

	model, err := tui.NewModel(ctx.Journal)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
