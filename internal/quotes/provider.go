// Package quotes supplies stock prices to the game: live quotes from Yahoo
// Finance, a static sample table as fallback, and Monte Carlo price
// projections built from return history. The game core never talks to a
// price source directly; it only sees the price maps produced here.
package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoQuote is returned when a provider has no price for the ticker.
var ErrNoQuote = errors.New("quote unavailable")

// Quote is one ticker's current market snapshot.
type Quote struct {
	Ticker        string          `json:"ticker"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Provider fetches market data. Implementations must return ErrNoQuote (or a
// wrapping error) rather than a zero-price quote when a ticker is unknown.
type Provider interface {
	// FetchQuote returns the current quote for a ticker.
	FetchQuote(ctx context.Context, ticker string) (*Quote, error)
	// FetchMonthlyCloses returns up to the given number of years of monthly
	// closing prices, oldest first.
	FetchMonthlyCloses(ctx context.Context, ticker string, years int) ([]float64, error)
}

// Fallback chains two providers: every call tries the primary first and
// degrades to the secondary on failure.
type Fallback struct {
	Primary   Provider
	Secondary Provider
}

// NewFallback wraps a primary provider with a backup source.
func NewFallback(primary, secondary Provider) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	q, err := f.Primary.FetchQuote(ctx, ticker)
	if err == nil {
		return q, nil
	}
	return f.Secondary.FetchQuote(ctx, ticker)
}

func (f *Fallback) FetchMonthlyCloses(ctx context.Context, ticker string, years int) ([]float64, error) {
	closes, err := f.Primary.FetchMonthlyCloses(ctx, ticker, years)
	if err == nil {
		return closes, nil
	}
	return f.Secondary.FetchMonthlyCloses(ctx, ticker, years)
}
