// Package game implements the state machine that drives a play-through: a
// pure reducer over GameState plus the action types it accepts. Every action
// either fully commits to a fresh state copy or rejects with a typed error,
// leaving the prior state untouched.
package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientFundsError is returned when an attempted spend exceeds cash.
type InsufficientFundsError struct {
	Needed    decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need $%s, have $%s", e.Needed, e.Available)
}

// InsufficientSharesError is returned when a sell exceeds the held position.
type InsufficientSharesError struct {
	Ticker    string
	Held      decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s: hold %s, want to sell %s", e.Ticker, e.Held, e.Requested)
}

// InvalidInputError is returned for malformed action payloads: non-positive
// amounts or shares, invalid profiles, actions against a finished game.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// PriceUnavailableError is returned when a trade needs a price no collaborator
// has supplied for the ticker.
type PriceUnavailableError struct {
	Ticker string
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("no known price for %s", e.Ticker)
}

func invalidInputf(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
