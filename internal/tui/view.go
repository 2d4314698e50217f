package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eugolor/finlit/internal/domain"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneSetup:
		content = m.renderSetup()
	case SceneDashboard:
		content = m.renderDashboard()
	case SceneInvest:
		content = m.renderInvest()
	case SceneDonate:
		content = m.renderDonate()
	case SceneTrade:
		content = m.renderTrade()
	case SceneSummary:
		content = m.renderSummary()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)
	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FinLit - Financial Life Simulator")

	breadcrumb := m.currentScene.String()
	if m.state != nil {
		breadcrumb = fmt.Sprintf("%s / %s, age %d, year %d",
			m.currentScene.String(), m.state.Name, m.state.Age, m.state.Year)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneSetup:
		shortcuts = []string{
			formatShortcut("tab", "next field"),
			formatShortcut("enter", "start game"),
			formatShortcut("ctrl+c", "quit"),
		}
	case SceneDashboard:
		shortcuts = []string{
			formatShortcut("i", "invest"),
			formatShortcut("d", "donate"),
			formatShortcut("t", "trade"),
			formatShortcut("n", "next year"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	case SceneTrade:
		shortcuts = []string{
			formatShortcut("tab", "switch field"),
			formatShortcut("ctrl+s", "buy/sell"),
			formatShortcut("enter", "submit"),
			formatShortcut("esc", "back"),
		}
	default:
		shortcuts = []string{
			formatShortcut("enter", "submit"),
			formatShortcut("esc", "back"),
		}
	}

	statusText := strings.Join(shortcuts, " · ")
	if m.status != "" {
		statusText += "   " + SubtitleStyle.Render(m.status)
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderSetup() string {
	labels := []string{"Name", "Age", "Annual income", "Starting money", "Goals"}

	var b strings.Builder
	b.WriteString("Set up your player\n\n")
	for i, input := range m.inputs {
		label := MetricLabelStyle.Render(labels[i])
		b.WriteString(label + " " + input.View() + "\n")
	}
	b.WriteString("\nGoals: home, emergency, retirement, travel (comma separated)")

	return BorderStyle.Render(b.String())
}

func (m Model) renderDashboard() string {
	if m.state == nil {
		return BorderStyle.Render("No game in progress.")
	}
	s := m.state

	var b strings.Builder
	b.WriteString(metricLine("Net worth", FormatCurrency(s.NetWorth())))
	b.WriteString(metricLine("Cash", FormatCurrency(s.Cash)))
	b.WriteString(metricLine("Points", fmt.Sprintf("%d", s.TotalPoints)))
	b.WriteString("\n")

	if len(s.Portfolio) > 0 {
		b.WriteString("Portfolio\n")
		kinds := make([]string, 0, len(s.Portfolio))
		for kind := range s.Portfolio {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			b.WriteString(metricLine("  "+kind, FormatCurrency(s.Portfolio[domain.FundKind(kind)])))
		}
		b.WriteString("\n")
	}

	if len(s.StockHoldings) > 0 {
		b.WriteString("Stocks\n")
		tickers := make([]string, 0, len(s.StockHoldings))
		for ticker := range s.StockHoldings {
			tickers = append(tickers, ticker)
		}
		sort.Strings(tickers)
		for _, ticker := range tickers {
			line := fmt.Sprintf("%s shares", s.StockHoldings[ticker])
			if price, ok := s.StockPrices[ticker]; ok {
				line += " @ " + FormatCurrency(price)
			}
			b.WriteString(metricLine("  "+ticker, line))
		}
		b.WriteString("\n")
	}

	if ev := s.CurrentEvent; ev != nil {
		b.WriteString("This year: " + SelectedItemStyle.Render(ev.Title) + "\n")
		b.WriteString(ev.Description + "\n")
		if ev.ActualCost.IsPositive() {
			b.WriteString(NegativeStyle.Render("Cost: "+FormatCurrency(ev.ActualCost)) + "\n")
		}
		if ev.ActualGain.IsPositive() {
			b.WriteString(PositiveStyle.Render("Gain: "+FormatCurrency(ev.ActualGain)) + "\n")
		}
	}

	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func metricLine(label, value string) string {
	return MetricLabelStyle.Render(label) + " " + MetricValueStyle.Render(value) + "\n"
}

func (m Model) renderInvest() string {
	var b strings.Builder
	b.WriteString("Choose a fund (↑/↓) and enter an amount\n\n")
	for i, fund := range m.catalog.Funds {
		line := fmt.Sprintf("%-12s %s", fund.Name, fund.Risk)
		if i == m.fundIndex {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(UnselectedItemStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\nAmount: " + m.amountInput.View())
	if m.state != nil {
		b.WriteString("\nAvailable cash: " + FormatCurrency(m.state.Cash))
	}
	return BorderStyle.Render(b.String())
}

func (m Model) renderDonate() string {
	var b strings.Builder
	b.WriteString("Donate to charity\n\n")
	b.WriteString("Amount: " + m.amountInput.View() + "\n")
	if m.state != nil {
		b.WriteString("\nAvailable cash: " + FormatCurrency(m.state.Cash))
	}
	b.WriteString("\nDonations earn social impact points and a tax credit.")
	return BorderStyle.Render(b.String())
}

func (m Model) renderTrade() string {
	side := "BUY"
	if !m.tradeBuy {
		side = "SELL"
	}

	var b strings.Builder
	b.WriteString("Trade stocks - " + SelectedItemStyle.Render(side) + "\n\n")
	b.WriteString("Ticker: " + m.tickerInput.View() + "\n")
	b.WriteString("Shares: " + m.sharesInput.View() + "\n")

	if m.state != nil && len(m.state.StockPrices) > 0 {
		b.WriteString("\nKnown prices\n")
		tickers := make([]string, 0, len(m.state.StockPrices))
		for ticker := range m.state.StockPrices {
			tickers = append(tickers, ticker)
		}
		sort.Strings(tickers)
		for _, ticker := range tickers {
			b.WriteString(metricLine("  "+ticker, FormatCurrency(m.state.StockPrices[ticker])))
		}
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderSummary() string {
	if m.summary == nil {
		return BorderStyle.Render("Game over.")
	}
	sum := m.summary

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Game over!") + "\n\n")
	b.WriteString(metricLine("Final net worth", FormatCurrency(sum.NetWorth)))
	b.WriteString(metricLine("Years played", fmt.Sprintf("%d", sum.YearsPlayed)))
	b.WriteString(metricLine("Personality", sum.Personality))
	b.WriteString(metricLine("Literacy score", fmt.Sprintf("%d / 100", sum.LiteracyScore)))
	b.WriteString(metricLine("Tier", fmt.Sprintf("%s (%d points)", sum.Tier.Name, sum.TotalPoints)))

	if sum.PersonalityDesc != "" {
		b.WriteString("\n" + sum.PersonalityDesc + "\n")
	}
	if len(sum.Feedback) > 0 {
		b.WriteString("\n")
		for _, line := range sum.Feedback {
			b.WriteString("• " + line + "\n")
		}
	}
	b.WriteString("\nPress q to quit.")
	return BorderStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	helpText := `FinLit - Financial Life Simulator

KEYBOARD SHORTCUTS:
  i        Invest cash into a fund
  d        Donate to charity
  t        Buy or sell stocks
  n/Enter  Simulate the next year
  ?        Show this help
  ESC      Back to the dashboard
  q/Ctrl+C Quit

Each simulated year your salary contributions are invested, your funds
grow, and life may throw an expense or a windfall at you. Hitting
financial checkpoints earns points; donations earn social impact points.
The game ends at retirement age with a personality, a literacy score,
and a rank.`

	return BorderStyle.Render(helpText)
}
