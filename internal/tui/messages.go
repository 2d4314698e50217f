package tui

import "github.com/shopspring/decimal"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSetup Scene = iota
	SceneDashboard
	SceneInvest
	SceneDonate
	SceneTrade
	SceneSummary
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneSetup:
		return "Setup"
	case SceneDashboard:
		return "Dashboard"
	case SceneInvest:
		return "Invest"
	case SceneDonate:
		return "Donate"
	case SceneTrade:
		return "Trade"
	case SceneSummary:
		return "Summary"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// QuotesLoadedMsg carries the latest stock prices for the watchlist
type QuotesLoadedMsg struct {
	Prices map[string]decimal.Decimal
}
