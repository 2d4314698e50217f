package game

import (
	"fmt"
	"sort"

	"github.com/eugolor/finlit/internal/calculation"
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// Stock-price walk bounds: each held ticker's stored price moves up by a
// uniform +10% to +30% per simulated year. This return model is deliberately
// decoupled from the portfolio funds' static growth rates.
var (
	stockWalkFloor = decimal.NewFromFloat(0.10)
	stockWalkSpan  = decimal.NewFromFloat(0.20)
)

// Machine is the pure reducer over GameState. Apply never mutates the input
// state: it either returns a fresh state or the typed error describing why
// the action was rejected.
//
// The event draw and the stock-price walk consume independent random sources
// so either stream can be seeded or scripted on its own.
type Machine struct {
	catalog   *catalog.Catalog
	simulator *calculation.YearSimulator
	summaries *calculation.SummaryGenerator
	stockRand calculation.RandomSource
}

// NewMachine creates a reducer over the catalog with separately seedable
// event and stock randomness.
func NewMachine(cat *catalog.Catalog, eventRand, stockRand calculation.RandomSource) *Machine {
	return &Machine{
		catalog:   cat,
		simulator: calculation.NewYearSimulator(cat, eventRand),
		summaries: calculation.NewSummaryGenerator(cat),
		stockRand: stockRand,
	}
}

// NewState returns the zero-value game state ready for an Initialize action.
func NewState() *domain.GameState {
	return &domain.GameState{
		Cash:          decimal.Zero,
		Portfolio:     map[domain.FundKind]decimal.Decimal{},
		StockHoldings: map[string]decimal.Decimal{},
		StockPrices:   map[string]decimal.Decimal{},
	}
}

// Apply dispatches an action against the state. The returned state is always
// a distinct value; on error the input state is returned unchanged.
func (m *Machine) Apply(state *domain.GameState, action Action) (*domain.GameState, error) {
	// A finished game is terminal: only a fresh Initialize is accepted,
	// plus the one EndGame that attaches the summary.
	if state != nil && state.IsGameOver {
		switch a := action.(type) {
		case Initialize:
			return m.initialize(a)
		case EndGame:
			if state.Summary == nil {
				return m.endGame(state, a)
			}
			return state, invalidInputf("game is over, summary already recorded")
		default:
			return state, invalidInputf("game is over, no further actions accepted")
		}
	}

	switch a := action.(type) {
	case Initialize:
		return m.initialize(a)
	case InvestInFund:
		return m.investInFund(state, a)
	case Donate:
		return m.donate(state, a)
	case BuyStock:
		return m.buyStock(state, a)
	case SellStock:
		return m.sellStock(state, a)
	case SetStockPrices:
		return m.setStockPrices(state, a)
	case SimulateYear:
		return m.simulateYear(state, a)
	case PreviewYear:
		return m.previewYear(state, a)
	case EndGame:
		return m.endGame(state, a)
	default:
		return state, invalidInputf("unknown action %T", action)
	}
}

func (m *Machine) initialize(a Initialize) (*domain.GameState, error) {
	if err := a.Profile.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	next := NewState()
	next.Name = a.Profile.Name
	next.Age = a.Profile.Age
	next.Income = a.Profile.Income
	next.Goals = append([]domain.Goal(nil), a.Profile.Goals...)
	next.StartingMoney = a.Profile.StartingMoney
	next.Cash = money.RoundCents(a.Profile.StartingMoney)
	next.Year = m.catalog.Rules.BaseYear
	next.EndingAge = m.catalog.Rules.EndingAge
	next.IsGameStarted = true
	return next, nil
}

func (m *Machine) investInFund(state *domain.GameState, a InvestInFund) (*domain.GameState, error) {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return state, invalidInputf("investment amount must be positive, got %s", a.Amount)
	}
	amount := money.RoundCents(a.Amount)
	if amount.GreaterThan(state.Cash) {
		return state, &InsufficientFundsError{Needed: amount, Available: state.Cash}
	}
	next := state.Clone()
	next.Cash = next.Cash.Sub(amount)
	next.Portfolio[a.Fund] = next.Portfolio[a.Fund].Add(amount)
	return next, nil
}

func (m *Machine) donate(state *domain.GameState, a Donate) (*domain.GameState, error) {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return state, invalidInputf("donation amount must be positive, got %s", a.Amount)
	}
	amount := money.RoundCents(a.Amount)
	if amount.GreaterThan(state.Cash) {
		return state, &InsufficientFundsError{Needed: amount, Available: state.Cash}
	}
	next := state.Clone()
	next.Cash = next.Cash.Sub(amount)
	next.TotalPoints += socialPoints(amount, state.Income)
	return next, nil
}

// socialPoints scales a donation's score with its share of income: donating
// 1% of income is worth 10 points. With no income the donation amount itself
// sets the score, $100 per point.
func socialPoints(amount, income decimal.Decimal) int {
	if income.GreaterThan(decimal.Zero) {
		return int(amount.Div(income).Mul(decimal.NewFromInt(1000)).Round(0).IntPart())
	}
	return int(amount.Div(decimal.NewFromInt(100)).Round(0).IntPart())
}

func (m *Machine) buyStock(state *domain.GameState, a BuyStock) (*domain.GameState, error) {
	price, err := m.resolvePrice(state, a.Ticker, a.Shares, a.PricePerShare)
	if err != nil {
		return state, err
	}
	cost := money.RoundCents(a.Shares.Mul(price))
	if cost.GreaterThan(state.Cash) {
		return state, &InsufficientFundsError{Needed: cost, Available: state.Cash}
	}
	next := state.Clone()
	next.Cash = next.Cash.Sub(cost)
	next.StockHoldings[a.Ticker] = next.StockHoldings[a.Ticker].Add(a.Shares)
	next.StockPrices[a.Ticker] = price
	return next, nil
}

func (m *Machine) sellStock(state *domain.GameState, a SellStock) (*domain.GameState, error) {
	price, err := m.resolvePrice(state, a.Ticker, a.Shares, a.PricePerShare)
	if err != nil {
		return state, err
	}
	held, ok := state.StockHoldings[a.Ticker]
	if !ok || held.LessThan(a.Shares) {
		return state, &InsufficientSharesError{Ticker: a.Ticker, Held: held, Requested: a.Shares}
	}
	next := state.Clone()
	next.Cash = next.Cash.Add(money.RoundCents(a.Shares.Mul(price)))
	remaining := held.Sub(a.Shares)
	if remaining.IsZero() {
		delete(next.StockHoldings, a.Ticker)
	} else {
		next.StockHoldings[a.Ticker] = remaining
	}
	next.StockPrices[a.Ticker] = price
	return next, nil
}

func (m *Machine) resolvePrice(state *domain.GameState, ticker string, shares, price decimal.Decimal) (decimal.Decimal, error) {
	if ticker == "" {
		return decimal.Zero, invalidInputf("ticker is required")
	}
	if shares.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, invalidInputf("share count must be positive, got %s", shares)
	}
	if price.GreaterThan(decimal.Zero) {
		return price, nil
	}
	if known, ok := state.StockPrices[ticker]; ok && known.GreaterThan(decimal.Zero) {
		return known, nil
	}
	return decimal.Zero, &PriceUnavailableError{Ticker: ticker}
}

func (m *Machine) setStockPrices(state *domain.GameState, a SetStockPrices) (*domain.GameState, error) {
	next := state.Clone()
	for ticker, price := range a.Prices {
		next.StockPrices[ticker] = price
	}
	return next, nil
}

func (m *Machine) simulateYear(state *domain.GameState, a SimulateYear) (*domain.GameState, error) {
	if state.Age >= state.EndingAge {
		next := state.Clone()
		next.IsGameOver = true
		return next, nil
	}

	monthly := state.Income.Mul(m.catalog.Rules.ContributionRate).Div(decimal.NewFromInt(12))
	result := m.simulator.Simulate(calculation.YearInput{
		Portfolio:           state.Portfolio,
		Cash:                state.Cash,
		Age:                 state.Age,
		Income:              state.Income,
		Year:                state.Year,
		MonthlyContribution: monthly,
		TriggerEvent:        a.TriggerEvent,
		ForceNoEvent:        a.ForceNoEvent,
	})

	next := state.Clone()
	next.Portfolio = result.Portfolio
	next.Cash = result.Cash
	next.Age = result.Age
	next.Year = result.Year
	next.CurrentEvent = result.Event

	// Checkpoint points land only at first attainment; later qualifying
	// years are no-ops.
	for _, id := range result.EarnedCheckpoints {
		if next.HasCheckpoint(id) {
			continue
		}
		next.CheckpointsEarned = append(next.CheckpointsEarned, id)
		next.TotalPoints += m.catalog.CheckpointPoints(id)
	}

	if result.Event != nil {
		id := result.Event.ID
		if id == "" {
			id = "unknown"
		}
		next.EventsFaced = append(next.EventsFaced, id)
	}

	m.walkStockPrices(next)

	if next.Age >= next.EndingAge {
		next.IsGameOver = true
	}
	return next, nil
}

// walkStockPrices applies the per-ticker annual price walk. Tickers are
// visited in sorted order so a seeded run is reproducible.
func (m *Machine) walkStockPrices(state *domain.GameState) {
	if len(state.StockHoldings) == 0 {
		return
	}
	tickers := make([]string, 0, len(state.StockHoldings))
	for ticker := range state.StockHoldings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		price, ok := state.StockPrices[ticker]
		if !ok || price.LessThanOrEqual(decimal.Zero) {
			continue
		}
		draw := decimal.NewFromFloat(m.stockRand.Float64())
		growth := stockWalkFloor.Add(draw.Mul(stockWalkSpan))
		state.StockPrices[ticker] = money.RoundCents(price.Mul(decimal.NewFromInt(1).Add(growth)))
	}
}

func (m *Machine) previewYear(state *domain.GameState, a PreviewYear) (*domain.GameState, error) {
	result := m.simulator.Simulate(calculation.YearInput{
		Portfolio:           state.Portfolio,
		Cash:                state.Cash,
		Age:                 state.Age,
		Income:              state.Income,
		Year:                state.Year,
		MonthlyContribution: state.Income.Mul(m.catalog.Rules.ContributionRate).Div(decimal.NewFromInt(12)),
		TriggerEvent:        a.TriggerEvent,
		ForceNoEvent:        a.ForceNoEvent,
	})

	next := state.Clone()
	next.CurrentEvent = result.Event
	return next, nil
}

func (m *Machine) endGame(state *domain.GameState, a EndGame) (*domain.GameState, error) {
	next := state.Clone()
	next.IsGameOver = true
	next.Summary = a.Summary
	return next, nil
}

// Summarize builds the end-of-game summary for the current state.
func (m *Machine) Summarize(state *domain.GameState) domain.GameSummary {
	startingAge := state.Age - (state.Year - m.catalog.Rules.BaseYear)
	return m.summaries.Generate(calculation.SummaryInput{
		StartingAge:       startingAge,
		EndingAge:         state.Age,
		StartingIncome:    state.Income,
		FinalPortfolio:    state.Portfolio,
		FinalCash:         state.Cash,
		CheckpointsEarned: state.CheckpointsEarned,
		TotalPoints:       state.TotalPoints,
	})
}

// StateSummary renders a short state description for logs.
func StateSummary(state *domain.GameState) string {
	return fmt.Sprintf("age=%d year=%d cash=%s netWorth=%s points=%d",
		state.Age, state.Year, state.Cash, state.NetWorth(), state.TotalPoints)
}
