package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooProvider fetches live data from Yahoo Finance.
type YahooProvider struct{}

// NewYahooProvider creates the live market data provider.
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{}
}

// FetchQuote returns the current market quote for a ticker.
func (y *YahooProvider) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := quote.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuote, ticker)
	}
	return &Quote{
		Ticker:        ticker,
		Price:         decimal.NewFromFloat(q.RegularMarketPrice),
		Change:        decimal.NewFromFloat(q.RegularMarketChange),
		ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
		Timestamp:     time.Unix(int64(q.RegularMarketTime), 0).UTC(),
	}, nil
}

// FetchMonthlyCloses returns monthly adjusted closes for the trailing window,
// oldest first.
func (y *YahooProvider) FetchMonthlyCloses(ctx context.Context, ticker string, years int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := time.Now()
	start := end.AddDate(-years, 0, 0)
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneMonth,
	}

	iter := chart.Get(params)
	closes := []float64{}
	for iter.Next() {
		closes = append(closes, iter.Bar().AdjClose.InexactFloat64())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch price history for %s: %w", ticker, err)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", ErrNoQuote, ticker)
	}
	return closes, nil
}
