package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/internal/game"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		m.status = ""
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuotesLoadedMsg:
		return m.applyQuotes(msg.Prices), nil
	}

	return m.updateCurrentScene(msg)
}

// applyQuotes feeds fetched prices into the game state so trades can use
// them. Before setup completes the prices are held for later.
func (m Model) applyQuotes(prices map[string]decimal.Decimal) Model {
	if len(prices) == 0 {
		return m
	}
	if m.state == nil {
		m.pendingPrices = prices
		return m
	}
	next, err := m.machine.Apply(m.state, game.SetStockPrices{Prices: prices})
	if err != nil {
		m.err = err
		return m
	}
	m.state = next
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global shortcuts; typing scenes get first crack at printable keys.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if !m.sceneCapturesText() {
			return m, tea.Quit
		}

	case "?":
		if !m.sceneCapturesText() && m.currentScene != SceneHelp {
			return m, navigateTo(SceneHelp)
		}

	case "esc":
		m.err = nil
		if m.currentScene != SceneSetup && m.currentScene != SceneDashboard {
			return m, navigateTo(SceneDashboard)
		}
		return m, nil
	}

	// An error screen swallows the next key.
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch m.currentScene {
	case SceneSetup:
		return m.updateSetup(msg)
	case SceneDashboard:
		return m.updateDashboard(msg)
	case SceneInvest:
		return m.updateInvest(msg)
	case SceneDonate:
		return m.updateDonate(msg)
	case SceneTrade:
		return m.updateTrade(msg)
	case SceneSummary, SceneHelp:
		return m, nil
	}
	return m, nil
}

// sceneCapturesText reports whether the current scene is reading free text,
// so letter keys must not be treated as shortcuts.
func (m Model) sceneCapturesText() bool {
	switch m.currentScene {
	case SceneSetup, SceneInvest, SceneDonate, SceneTrade:
		return true
	}
	return false
}

func navigateTo(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateSetup drives the profile form. Tab cycles fields, enter submits.
func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focused = (m.focused + 1) % fieldCount
		m.focusSetupField()
		return m, nil
	case "shift+tab", "up":
		m.focused = (m.focused + fieldCount - 1) % fieldCount
		m.focusSetupField()
		return m, nil
	case "enter":
		return m.submitSetup()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) focusSetupField() {
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) submitSetup() (tea.Model, tea.Cmd) {
	age, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldAge].Value()))
	if err != nil {
		m.status = "age must be a whole number"
		return m, nil
	}
	income, err := parseAmount(m.inputs[fieldIncome].Value())
	if err != nil {
		m.status = "income must be a number"
		return m, nil
	}
	money, err := parseAmount(m.inputs[fieldMoney].Value())
	if err != nil {
		m.status = "starting money must be a number"
		return m, nil
	}

	profile := domain.PlayerProfile{
		Name:          strings.TrimSpace(m.inputs[fieldName].Value()),
		Age:           age,
		Income:        income,
		Goals:         domain.ParseGoals(m.inputs[fieldGoals].Value()),
		StartingMoney: money,
	}

	state, err := m.machine.Apply(nil, game.Initialize{Profile: profile})
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.state = state
	m.status = ""
	if len(m.pendingPrices) > 0 {
		m = m.applyQuotes(m.pendingPrices)
		m.pendingPrices = nil
	}
	return m, navigateTo(SceneDashboard)
}

// updateDashboard handles the main game screen shortcuts.
func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == nil {
		return m, navigateTo(SceneSetup)
	}

	switch msg.String() {
	case "i":
		m.amountInput.SetValue("")
		m.amountInput.Focus()
		return m, navigateTo(SceneInvest)
	case "d":
		m.amountInput.SetValue("")
		m.amountInput.Focus()
		return m, navigateTo(SceneDonate)
	case "t":
		m.tickerInput.SetValue("")
		m.sharesInput.SetValue("")
		m.tradeFocus = 0
		m.tickerInput.Focus()
		m.sharesInput.Blur()
		return m, navigateTo(SceneTrade)
	case "n", "enter":
		return m.advanceYear()
	}
	return m, nil
}

// advanceYear runs one simulated year and, if the run reaches the ending
// age, finalizes the game.
func (m Model) advanceYear() (tea.Model, tea.Cmd) {
	next, err := m.machine.Apply(m.state, game.SimulateYear{})
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = next

	if next.IsGameOver {
		summary := m.machine.Summarize(next)
		final, err := m.machine.Apply(next, game.EndGame{Summary: &summary})
		if err != nil {
			m.err = err
			return m, nil
		}
		m.state = final
		m.summary = final.Summary
		return m, navigateTo(SceneSummary)
	}
	return m, nil
}

// updateInvest lets the player pick a fund with arrows and type an amount.
func (m Model) updateInvest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.fundIndex > 0 {
			m.fundIndex--
		}
		return m, nil
	case "down":
		if m.fundIndex < len(m.catalog.Funds)-1 {
			m.fundIndex++
		}
		return m, nil
	case "enter":
		amount, err := parseAmount(m.amountInput.Value())
		if err != nil {
			m.status = "amount must be a number"
			return m, nil
		}
		fund := m.catalog.Funds[m.fundIndex].Kind
		next, err := m.machine.Apply(m.state, game.InvestInFund{Fund: fund, Amount: amount})
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state = next
		return m, navigateTo(SceneDashboard)
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m Model) updateDonate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		amount, err := parseAmount(m.amountInput.Value())
		if err != nil {
			m.status = "amount must be a number"
			return m, nil
		}
		before := m.state.TotalPoints
		next, err := m.machine.Apply(m.state, game.Donate{Amount: amount})
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state = next
		m.status = "donated " + FormatCurrency(amount) +
			", +" + strconv.Itoa(next.TotalPoints-before) + " points"
		return m, navigateTo(SceneDashboard)
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

// updateTrade handles buy/sell of individual stocks. Tab switches between the
// ticker and shares fields; ctrl+s flips the trade side.
func (m Model) updateTrade(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.tradeFocus = 1 - m.tradeFocus
		if m.tradeFocus == 0 {
			m.tickerInput.Focus()
			m.sharesInput.Blur()
		} else {
			m.tickerInput.Blur()
			m.sharesInput.Focus()
		}
		return m, nil
	case "ctrl+s":
		m.tradeBuy = !m.tradeBuy
		return m, nil
	case "enter":
		return m.submitTrade()
	}

	var cmd tea.Cmd
	if m.tradeFocus == 0 {
		m.tickerInput, cmd = m.tickerInput.Update(msg)
	} else {
		m.sharesInput, cmd = m.sharesInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitTrade() (tea.Model, tea.Cmd) {
	ticker := strings.ToUpper(strings.TrimSpace(m.tickerInput.Value()))
	shares, err := parseAmount(m.sharesInput.Value())
	if err != nil {
		m.status = "shares must be a number"
		return m, nil
	}

	var action game.Action
	if m.tradeBuy {
		action = game.BuyStock{Ticker: ticker, Shares: shares}
	} else {
		action = game.SellStock{Ticker: ticker, Shares: shares}
	}
	next, err := m.machine.Apply(m.state, action)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.state = next
	return m, navigateTo(SceneDashboard)
}

// updateCurrentScene forwards non-key messages to focused inputs so cursor
// blink keeps working.
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneSetup:
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		cmds = append(cmds, cmd)
	case SceneInvest, SceneDonate:
		m.amountInput, cmd = m.amountInput.Update(msg)
		cmds = append(cmds, cmd)
	case SceneTrade:
		m.tickerInput, cmd = m.tickerInput.Update(msg)
		cmds = append(cmds, cmd)
		m.sharesInput, cmd = m.sharesInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}
