package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/quotes"
)

// Run starts the interactive game and blocks until the player quits.
func Run(cat *catalog.Catalog, machine *game.Machine, provider quotes.Provider) error {
	p := tea.NewProgram(
		NewModel(cat, machine, provider),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
