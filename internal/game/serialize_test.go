package game

import (
	"testing"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestMachine(nil, nil)
	state := startedState(t, m)

	state, err := m.Apply(state, InvestInFund{Fund: domain.FundTFSA, Amount: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	state, err = m.Apply(state, BuyStock{Ticker: "AAPL", Shares: decimal.NewFromInt(3), PricePerShare: decimal.NewFromInt(150)})
	require.NoError(t, err)

	data, err := EncodeSnapshot(state)
	require.NoError(t, err)

	restored, err := DecodeSnapshot(data)
	require.NoError(t, err)

	assert.True(t, restored.Cash.Equal(state.Cash))
	assert.True(t, restored.Portfolio[domain.FundTFSA].Equal(decimal.NewFromInt(1500)))
	assert.True(t, restored.StockHoldings["AAPL"].Equal(decimal.NewFromInt(3)))
	assert.True(t, restored.StockPrices["AAPL"].Equal(decimal.NewFromInt(150)))
	assert.Equal(t, state.Age, restored.Age)
	assert.Equal(t, state.Name, restored.Name)
	assert.True(t, restored.IsGameStarted)
}

func TestSnapshotRebuildsEmptyMaps(t *testing.T) {
	data := []byte(`{"version":1,"saved_at":"2025-01-01T00:00:00Z","state":{"name":"Avery","age":25}}`)

	restored, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.NotNil(t, restored.Portfolio)
	assert.NotNil(t, restored.StockHoldings)
	assert.NotNil(t, restored.StockPrices)
}

func TestSnapshotRejectsBadInput(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte(`{"version":99,"state":{}}`))
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte(`{"version":1}`))
	assert.Error(t, err)
}
