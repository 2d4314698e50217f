package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/quotes"
)

// Setup form field order.
const (
	fieldName = iota
	fieldAge
	fieldIncome
	fieldMoney
	fieldGoals
	fieldCount
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Engine and data
	catalog  *catalog.Catalog
	machine  *game.Machine
	provider quotes.Provider

	// Game state (nil until setup completes)
	state *domain.GameState

	// Watchlist prices shown on the trade scene. Prices fetched before the
	// game starts are parked until initialize.
	watchlist     []string
	pendingPrices map[string]decimal.Decimal

	// Setup form
	inputs  []textinput.Model
	focused int

	// Invest scene
	fundIndex   int
	amountInput textinput.Model

	// Trade scene
	tickerInput textinput.Model
	sharesInput textinput.Model
	tradeFocus  int
	tradeBuy    bool

	// End-of-game summary
	summary *domain.GameSummary

	// Transient status line and error state
	status string
	err    error
}

// NewModel creates a new application model
func NewModel(cat *catalog.Catalog, machine *game.Machine, provider quotes.Provider) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 40
	}
	inputs[fieldName].Placeholder = "Alex"
	inputs[fieldName].Focus()
	inputs[fieldAge].Placeholder = "25"
	inputs[fieldIncome].Placeholder = "60000"
	inputs[fieldMoney].Placeholder = "5000"
	inputs[fieldGoals].Placeholder = "home, retirement"

	amount := textinput.New()
	amount.Placeholder = "1000"
	amount.CharLimit = 12

	ticker := textinput.New()
	ticker.Placeholder = "AAPL"
	ticker.CharLimit = 10

	shares := textinput.New()
	shares.Placeholder = "10"
	shares.CharLimit = 10

	watchlist := []string{"AAPL", "MSFT", "VTI", "TD.TO"}
	if static, ok := provider.(*quotes.StaticProvider); ok {
		watchlist = static.Tickers()
	}

	return Model{
		currentScene: SceneSetup,
		catalog:      cat,
		machine:      machine,
		provider:     provider,
		watchlist:    watchlist,
		inputs:       inputs,
		amountInput:  amount,
		tickerInput:  ticker,
		sharesInput:  shares,
		tradeBuy:     true,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, fetchQuotesCmd(m.provider, m.watchlist))
}

// fetchQuotesCmd returns a command that loads watchlist prices in the
// background. Tickers the provider cannot price are simply omitted.
func fetchQuotesCmd(provider quotes.Provider, tickers []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		prices := make(map[string]decimal.Decimal, len(tickers))
		for _, ticker := range tickers {
			q, err := provider.FetchQuote(ctx, ticker)
			if err != nil {
				continue
			}
			prices[ticker] = q.Price
		}
		return QuotesLoadedMsg{Prices: prices}
	}
}
