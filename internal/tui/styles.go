package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("36")  // teal
	ColorAccent  = lipgloss.Color("212") // pink
	ColorSuccess = lipgloss.Color("42")  // green
	ColorDanger  = lipgloss.Color("196") // red
	ColorMuted   = lipgloss.Color("241") // grey
	ColorBorder  = lipgloss.Color("240")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(18)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	PositiveStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// FormatCurrency renders a decimal amount as dollars with two decimal places.
func FormatCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
