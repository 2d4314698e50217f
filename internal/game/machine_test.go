package game

import (
	"testing"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed uniform draws.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0.5
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func newTestMachine(eventVals, stockVals []float64) *Machine {
	return NewMachine(catalog.Load(),
		&scriptedSource{vals: eventVals},
		&scriptedSource{vals: stockVals})
}

func startedState(t *testing.T, m *Machine) *domain.GameState {
	t.Helper()
	state, err := m.Apply(NewState(), Initialize{Profile: domain.PlayerProfile{
		Name:          "Avery",
		Age:           25,
		Income:        decimal.NewFromInt(60000),
		Goals:         []domain.Goal{domain.GoalHome},
		StartingMoney: decimal.NewFromInt(5000),
	}})
	require.NoError(t, err)
	return state
}

func TestInitialize(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	assert.True(t, state.IsGameStarted)
	assert.False(t, state.IsGameOver)
	assert.True(t, state.Cash.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 25, state.Age)
	assert.Equal(t, 2025, state.Year)
	assert.Equal(t, 65, state.EndingAge)
	assert.Empty(t, state.Portfolio)
}

func TestInitializeRejectsInvalidProfile(t *testing.T) {
	m := newTestMachine(nil, nil)

	_, err := m.Apply(NewState(), Initialize{Profile: domain.PlayerProfile{
		Name: "Kid", Age: 12, Income: decimal.NewFromInt(1000),
	}})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestInvestInFund(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	next, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)
	assert.True(t, next.Cash.Equal(decimal.NewFromInt(3000)))
	assert.True(t, next.Portfolio[domain.FundTFSA].Equal(decimal.NewFromInt(2000)))
	// Prior state untouched.
	assert.True(t, state.Cash.Equal(decimal.NewFromInt(5000)))
}

func TestInvestInFundInsufficientFunds(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	next, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(9999)})
	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Same(t, state, next, "failed action returns the input state")
	assert.True(t, state.Cash.Equal(decimal.NewFromInt(5000)))
	assert.Empty(t, state.Portfolio)
}

func TestInvestInFundRejectsNonPositive(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	_, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.Zero})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestDonateAwardsSocialPoints(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	next, err := m.Apply(state, Donate{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, next.Cash.Equal(decimal.NewFromInt(4900)))
	// round(100 / 60000 x 1000) = 2
	assert.Equal(t, 2, next.TotalPoints)
}

func TestDonateWithoutIncome(t *testing.T) {
	m := newTestMachine(nil, nil)
	state, err := m.Apply(NewState(), Initialize{Profile: domain.PlayerProfile{
		Name: "Sam", Age: 30, StartingMoney: decimal.NewFromInt(1000),
	}})
	require.NoError(t, err)

	next, err := m.Apply(state, Donate{Amount: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.Equal(t, 3, next.TotalPoints, "falls back to $100 per point, rounded")
}

func TestDonateInsufficientFunds(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	_, err := m.Apply(state, Donate{Amount: decimal.NewFromInt(6000)})
	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, state.TotalPoints)
}

func TestBuySellStockInverse(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)
	price := decimal.RequireFromString("185.20")

	bought, err := m.Apply(state, BuyStock{Ticker: "AAPL", Shares: decimal.NewFromInt(10), PricePerShare: price})
	require.NoError(t, err)
	assert.True(t, bought.Cash.Equal(decimal.NewFromInt(3148)))
	assert.True(t, bought.StockHoldings["AAPL"].Equal(decimal.NewFromInt(10)))

	sold, err := m.Apply(bought, SellStock{Ticker: "AAPL", Shares: decimal.NewFromInt(10), PricePerShare: price})
	require.NoError(t, err)
	assert.True(t, sold.Cash.Equal(state.Cash), "round trip restores cash")
	assert.NotContains(t, sold.StockHoldings, "AAPL", "fully sold ticker is removed")
}

func TestBuyStockUsesLastKnownPrice(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	state, err := m.Apply(state, SetStockPrices{Prices: map[string]decimal.Decimal{
		"VTI": decimal.NewFromInt(250),
	}})
	require.NoError(t, err)

	next, err := m.Apply(state, BuyStock{Ticker: "VTI", Shares: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.True(t, next.Cash.Equal(decimal.NewFromInt(4500)))
}

func TestBuyStockPriceUnavailable(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	_, err := m.Apply(state, BuyStock{Ticker: "MYSTERY", Shares: decimal.NewFromInt(1)})
	var unavailable *PriceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "MYSTERY", unavailable.Ticker)
}

func TestSellStockInsufficientShares(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	bought, err := m.Apply(state, BuyStock{Ticker: "AAPL", Shares: decimal.NewFromInt(2), PricePerShare: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = m.Apply(bought, SellStock{Ticker: "AAPL", Shares: decimal.NewFromInt(5), PricePerShare: decimal.NewFromInt(100)})
	var insufficient *InsufficientSharesError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, bought.StockHoldings["AAPL"].Equal(decimal.NewFromInt(2)))
}

func TestSimulateYearEndToEnd(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	state, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	next, err := m.Apply(state, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)

	assert.True(t, next.Portfolio[domain.FundTFSA].Equal(decimal.NewFromInt(2140)),
		"tfsa grows 7%%, got %s", next.Portfolio[domain.FundTFSA])
	assert.True(t, next.Cash.Equal(decimal.NewFromInt(12000)),
		"cash gains a year of contributions, got %s", next.Cash)
	assert.Equal(t, 26, next.Age)
	assert.Contains(t, next.CheckpointsEarned, "open_tfsa")
	assert.Greater(t, next.TotalPoints, 0)
}

func TestSimulateYearCheckpointPointsOnce(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	state, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	first, err := m.Apply(state, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)
	second, err := m.Apply(first, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)

	assert.Equal(t, first.TotalPoints, second.TotalPoints,
		"checkpoints still qualifying in later years earn nothing new")
	assert.Equal(t, len(first.CheckpointsEarned), len(second.CheckpointsEarned))
}

func TestSimulateYearStockWalk(t *testing.T) {
	// A 0.5 draw means +20% on the stored price.
	m := newTestMachine(nil, []float64{0.5})
	state := startedState(t, m)

	state, err := m.Apply(state, BuyStock{Ticker: "AAPL", Shares: decimal.NewFromInt(1), PricePerShare: decimal.NewFromInt(100)})
	require.NoError(t, err)

	next, err := m.Apply(state, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)
	assert.True(t, next.StockPrices["AAPL"].Equal(decimal.NewFromInt(120)),
		"got %s", next.StockPrices["AAPL"])
	assert.True(t, next.StockHoldings["AAPL"].Equal(decimal.NewFromInt(1)),
		"share count is untouched by the walk")
}

func TestSimulateYearRecordsEvents(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	next, err := m.Apply(state, SimulateYear{TriggerEvent: "bonus"})
	require.NoError(t, err)
	require.NotNil(t, next.CurrentEvent)
	assert.Equal(t, []string{"bonus"}, next.EventsFaced)
}

func TestSimulateYearGameOverAtEndingAge(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)
	state.Age = 65

	next, err := m.Apply(state, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)
	assert.True(t, next.IsGameOver)
	assert.Equal(t, 65, next.Age, "no further aging once the game is over")
}

func TestPreviewYearDoesNotMutate(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	state, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	preview, err := m.Apply(state, PreviewYear{TriggerEvent: "market_crash"})
	require.NoError(t, err)

	require.NotNil(t, preview.CurrentEvent)
	assert.Equal(t, "market_crash", preview.CurrentEvent.ID)
	assert.True(t, preview.Cash.Equal(state.Cash))
	assert.True(t, preview.Portfolio[domain.FundTFSA].Equal(state.Portfolio[domain.FundTFSA]))
	assert.Equal(t, state.Age, preview.Age)
	assert.Equal(t, state.Year, preview.Year)
	assert.Equal(t, state.TotalPoints, preview.TotalPoints)
	assert.Equal(t, state.CheckpointsEarned, preview.CheckpointsEarned)
	assert.Empty(t, preview.EventsFaced)
}

func TestFinishedGameRejectsFurtherActions(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	summary := m.Summarize(state)
	ended, err := m.Apply(state, EndGame{Summary: &summary})
	require.NoError(t, err)
	require.True(t, ended.IsGameOver)

	tests := []struct {
		name   string
		action Action
	}{
		{"simulate year", SimulateYear{ForceNoEvent: true}},
		{"invest", InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(100)}},
		{"donate", Donate{Amount: decimal.NewFromInt(100)}},
		{"buy stock", BuyStock{Ticker: "AAPL", Shares: decimal.NewFromInt(1), PricePerShare: decimal.NewFromInt(100)}},
		{"second end game", EndGame{Summary: &summary}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := m.Apply(ended, tt.action)
			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Same(t, ended, next, "rejected action must not produce a new state")
		})
	}

	assert.True(t, ended.Cash.Equal(state.Cash))
	assert.Empty(t, ended.StockHoldings)

	// Replaying initialize is the one way out of a finished game.
	fresh, err := m.Apply(ended, Initialize{Profile: ended.Profile()})
	require.NoError(t, err)
	assert.False(t, fresh.IsGameOver)
	assert.Nil(t, fresh.Summary)
}

func TestGameOverStateStillAcceptsFirstEndGame(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)
	state.Age = 65

	over, err := m.Apply(state, SimulateYear{ForceNoEvent: true})
	require.NoError(t, err)
	require.True(t, over.IsGameOver)
	require.Nil(t, over.Summary)

	summary := m.Summarize(over)
	final, err := m.Apply(over, EndGame{Summary: &summary})
	require.NoError(t, err)
	require.NotNil(t, final.Summary)
}

func TestEndGameAttachesSummary(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	summary := m.Summarize(state)
	next, err := m.Apply(state, EndGame{Summary: &summary})
	require.NoError(t, err)
	assert.True(t, next.IsGameOver)
	require.NotNil(t, next.Summary)
	assert.Equal(t, summary.Personality, next.Summary.Personality)
}
