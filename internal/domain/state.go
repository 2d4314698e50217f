package domain

import "github.com/shopspring/decimal"

// GameState is the central mutable aggregate. It is owned exclusively by the
// game state machine: every transition produces a fresh copy, so presentation
// code can hold a reference to a past state safely.
type GameState struct {
	// Player profile (frozen at initialize)
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Income        decimal.Decimal `json:"income"`
	Goals         []Goal          `json:"goals"`
	StartingMoney decimal.Decimal `json:"starting_money"`

	// Simulation state
	Year          int                          `json:"year"`
	Cash          decimal.Decimal              `json:"cash"`
	Portfolio     map[FundKind]decimal.Decimal `json:"portfolio"`
	StockHoldings map[string]decimal.Decimal   `json:"stock_holdings"` // ticker -> shares
	StockPrices   map[string]decimal.Decimal   `json:"stock_prices"`   // ticker -> last known price

	// Scoring
	TotalPoints       int      `json:"total_points"`
	CheckpointsEarned []string `json:"checkpoints_earned"`

	// Events
	EventsFaced  []string      `json:"events_faced"`
	CurrentEvent *AppliedEvent `json:"current_event,omitempty"`

	// Game flow
	IsGameStarted bool `json:"is_game_started"`
	IsGameOver    bool `json:"is_game_over"`
	EndingAge     int  `json:"ending_age"`

	// Set exactly once at game end
	Summary *GameSummary `json:"summary,omitempty"`
}

// Clone returns a deep copy of the state. Transitions mutate the clone and
// leave the receiver untouched.
func (s *GameState) Clone() *GameState {
	next := *s

	next.Goals = append([]Goal(nil), s.Goals...)
	next.CheckpointsEarned = append([]string(nil), s.CheckpointsEarned...)
	next.EventsFaced = append([]string(nil), s.EventsFaced...)

	next.Portfolio = make(map[FundKind]decimal.Decimal, len(s.Portfolio))
	for k, v := range s.Portfolio {
		next.Portfolio[k] = v
	}
	next.StockHoldings = make(map[string]decimal.Decimal, len(s.StockHoldings))
	for k, v := range s.StockHoldings {
		next.StockHoldings[k] = v
	}
	next.StockPrices = make(map[string]decimal.Decimal, len(s.StockPrices))
	for k, v := range s.StockPrices {
		next.StockPrices[k] = v
	}

	if s.CurrentEvent != nil {
		ev := *s.CurrentEvent
		next.CurrentEvent = &ev
	}
	if s.Summary != nil {
		sum := *s.Summary
		next.Summary = &sum
	}
	return &next
}

// PortfolioTotal returns the sum of all fund balances.
func (s *GameState) PortfolioTotal() decimal.Decimal {
	total := decimal.Zero
	for _, bal := range s.Portfolio {
		total = total.Add(bal)
	}
	return total
}

// StockValue returns the market value of individual stock holdings at last
// known prices. Tickers without a known price contribute nothing.
func (s *GameState) StockValue() decimal.Decimal {
	total := decimal.Zero
	for ticker, shares := range s.StockHoldings {
		if price, ok := s.StockPrices[ticker]; ok && price.GreaterThan(decimal.Zero) {
			total = total.Add(shares.Mul(price))
		}
	}
	return total
}

// NetWorth is cash + portfolio fund balances + held-stock market value.
func (s *GameState) NetWorth() decimal.Decimal {
	return s.Cash.Add(s.PortfolioTotal()).Add(s.StockValue())
}

// HasCheckpoint reports whether the checkpoint id has already been earned.
func (s *GameState) HasCheckpoint(id string) bool {
	for _, earned := range s.CheckpointsEarned {
		if earned == id {
			return true
		}
	}
	return false
}

// Profile reconstructs the player profile embedded in the state.
func (s *GameState) Profile() PlayerProfile {
	return PlayerProfile{
		Name:          s.Name,
		Age:           s.Age,
		Income:        s.Income,
		Goals:         append([]Goal(nil), s.Goals...),
		StartingMoney: s.StartingMoney,
	}
}
