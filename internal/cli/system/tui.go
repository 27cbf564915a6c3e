package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	model, err := tui.NewModel(tui.Services{
		Pool:     ctx.Pool(),
		Diary:    ctx.Diary(),
		Roulette: ctx.Roulette(),
	})
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
