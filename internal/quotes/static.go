package quotes

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// sampleEntry seeds the offline price table: a reference price plus an
// assumed annual growth rate used to synthesize history.
type sampleEntry struct {
	Price        float64
	AnnualGrowth float64
}

// sampleQuotes covers the tickers the game ships with so play works without
// network access.
var sampleQuotes = map[string]sampleEntry{
	"AAPL":    {Price: 185.20, AnnualGrowth: 0.12},
	"MSFT":    {Price: 412.50, AnnualGrowth: 0.13},
	"GOOGL":   {Price: 168.30, AnnualGrowth: 0.11},
	"AMZN":    {Price: 182.75, AnnualGrowth: 0.14},
	"NVDA":    {Price: 125.60, AnnualGrowth: 0.22},
	"VTI":     {Price: 262.40, AnnualGrowth: 0.09},
	"XIU.TO":  {Price: 34.85, AnnualGrowth: 0.07},
	"TD.TO":   {Price: 81.20, AnnualGrowth: 0.06},
	"RY.TO":   {Price: 143.90, AnnualGrowth: 0.07},
	"SHOP.TO": {Price: 105.40, AnnualGrowth: 0.15},
}

// StaticProvider serves the built-in sample table. Quotes report zero change
// since the table has no intraday movement.
type StaticProvider struct {
	now func() time.Time
}

// NewStaticProvider creates the offline provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{now: time.Now}
}

// Tickers lists the symbols available offline.
func (s *StaticProvider) Tickers() []string {
	out := make([]string, 0, len(sampleQuotes))
	for ticker := range sampleQuotes {
		out = append(out, ticker)
	}
	return out
}

func (s *StaticProvider) FetchQuote(_ context.Context, ticker string) (*Quote, error) {
	entry, ok := sampleQuotes[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s not in sample table", ErrNoQuote, ticker)
	}
	return &Quote{
		Ticker:        ticker,
		Price:         decimal.NewFromFloat(entry.Price),
		Change:        decimal.Zero,
		ChangePercent: decimal.Zero,
		Timestamp:     s.now().UTC(),
	}, nil
}

// FetchMonthlyCloses synthesizes a smooth history by discounting the current
// price backwards at the entry's growth rate.
func (s *StaticProvider) FetchMonthlyCloses(_ context.Context, ticker string, years int) ([]float64, error) {
	entry, ok := sampleQuotes[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s not in sample table", ErrNoQuote, ticker)
	}
	months := years * 12
	if months <= 0 {
		months = 12
	}
	monthlyGrowth := math.Pow(1+entry.AnnualGrowth, 1.0/12.0)

	closes := make([]float64, months)
	price := entry.Price
	for i := months - 1; i >= 0; i-- {
		closes[i] = price
		price /= monthlyGrowth
	}
	return closes, nil
}
