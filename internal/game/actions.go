package game

import (
	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// Action is the closed set of state transitions. Each action is a strongly
// typed payload dispatched by Machine.Apply.
type Action interface {
	isAction()
}

// Initialize resets the state to a fresh game for the given profile, with
// cash set to the starting money.
type Initialize struct {
	Profile domain.PlayerProfile
}

// InvestInFund moves cash into a portfolio fund bucket.
type InvestInFund struct {
	Fund   domain.FundKind
	Amount decimal.Decimal
}

// Donate gives cash to charity. Social points scale with the donation's share
// of income and are added to the points total immediately.
type Donate struct {
	Amount decimal.Decimal
}

// BuyStock purchases shares of a ticker. When PricePerShare is zero the last
// known price from state is used; a trade with no price anywhere is rejected.
type BuyStock struct {
	Ticker        string
	Shares        decimal.Decimal
	PricePerShare decimal.Decimal
}

// SellStock sells shares of a held ticker. Price resolution matches BuyStock.
type SellStock struct {
	Ticker        string
	Shares        decimal.Decimal
	PricePerShare decimal.Decimal
}

// SetStockPrices merges quote prices into state, overwriting existing entries.
type SetStockPrices struct {
	Prices map[string]decimal.Decimal
}

// SimulateYear advances the game by one year.
type SimulateYear struct {
	TriggerEvent string
	ForceNoEvent bool
}

// PreviewYear runs the year simulation but keeps only the drawn event for
// display; balances, age, checkpoints, and points are untouched.
type PreviewYear struct {
	TriggerEvent string
	ForceNoEvent bool
}

// EndGame marks the game over and attaches the final summary.
type EndGame struct {
	Summary *domain.GameSummary
}

func (Initialize) isAction()     {}
func (InvestInFund) isAction()   {}
func (Donate) isAction()         {}
func (BuyStock) isAction()       {}
func (SellStock) isAction()      {}
func (SetStockPrices) isAction() {}
func (SimulateYear) isAction()   {}
func (PreviewYear) isAction()    {}
func (EndGame) isAction()        {}
