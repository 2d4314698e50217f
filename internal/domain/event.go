package domain

import "github.com/shopspring/decimal"

// LifeEvent is a static catalog entry for a financial shock or windfall that
// can land during a simulated year. Cost is positive for expenses and negative
// for windfalls; MarketEffect (when non-zero) is a fractional return
// adjustment applied to growth funds.
type LifeEvent struct {
	ID           string          `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	Description  string          `json:"description" yaml:"description"`
	Cost         decimal.Decimal `json:"cost" yaml:"cost"`
	Category     string          `json:"category" yaml:"category"`
	MarketEffect decimal.Decimal `json:"market_effect,omitempty" yaml:"market_effect,omitempty"`
}

// HasMarketEffect reports whether the event perturbs growth-fund returns.
func (e *LifeEvent) HasMarketEffect() bool {
	return !e.MarketEffect.IsZero()
}

// AppliedEvent wraps a life event with the amounts actually charged or
// credited during a simulated year.
type AppliedEvent struct {
	LifeEvent
	ActualCost decimal.Decimal `json:"actual_cost,omitempty"`
	ActualGain decimal.Decimal `json:"actual_gain,omitempty"`
}

// Checkpoint is a one-time-awardable achievement tied to a state condition.
type Checkpoint struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Points int    `json:"points" yaml:"points"`
}

// Tier is a named rank in the cumulative points ladder. Tiers are stored in
// ascending MinPoints order.
type Tier struct {
	Name      string `json:"name" yaml:"name"`
	MinPoints int    `json:"min_points" yaml:"min_points"`
}
