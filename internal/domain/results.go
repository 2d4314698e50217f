package domain

import "github.com/shopspring/decimal"

// TaxResult is the outcome of a progressive tax computation.
type TaxResult struct {
	GrossIncome   decimal.Decimal `json:"gross_income"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // percentage, 2dp
	TakeHome      decimal.Decimal `json:"take_home"`
}

// AllocationPlan is the advisor's recommended portfolio split. Percentages sum
// to exactly 100.
type AllocationPlan struct {
	Allocation               map[FundKind]int `json:"allocation"`
	MonthlyInvestRecommended decimal.Decimal  `json:"monthly_invest_recommended"`
	TaxInfo                  TaxResult        `json:"tax_info"`
}

// DonationCredit is the federal + provincial charitable credit breakdown.
type DonationCredit struct {
	Donation         decimal.Decimal `json:"donation"`
	FederalCredit    decimal.Decimal `json:"federal_credit"`
	ProvincialCredit decimal.Decimal `json:"provincial_credit"`
	TotalCredit      decimal.Decimal `json:"total_credit"`
}

// YearResult is one simulated year's outcome: the post-growth, post-event
// portfolio and cash, the applied event (if any), and the checkpoint ids whose
// conditions hold after the year. Checkpoint evaluation is idempotent; the
// caller deduplicates against its already-earned set.
type YearResult struct {
	Portfolio         map[FundKind]decimal.Decimal `json:"portfolio"`
	Cash              decimal.Decimal              `json:"cash"`
	Age               int                          `json:"age"`
	Year              int                          `json:"year"`
	NetWorth          decimal.Decimal              `json:"net_worth"`
	Event             *AppliedEvent                `json:"event,omitempty"`
	EarnedCheckpoints []string                     `json:"earned_checkpoints"`
	InflationRate     decimal.Decimal              `json:"inflation_rate"`

	// Shortfall is the portion of an event cost that could not be covered by
	// cash plus portfolio. State clamps at zero regardless; this field exists
	// so callers can surface the partial application.
	Shortfall decimal.Decimal `json:"shortfall,omitempty"`
}

// GameSummary is the end-of-game narrative and metrics.
type GameSummary struct {
	NetWorth        decimal.Decimal `json:"net_worth"`
	Personality     string          `json:"personality"`
	PersonalityDesc string          `json:"personality_desc,omitempty"`
	LiteracyScore   int             `json:"literacy_score"`
	Tier            Tier            `json:"tier"`
	TotalPoints     int             `json:"total_points"`
	YearsPlayed     int             `json:"years_played"`
	Feedback        []string        `json:"feedback,omitempty"`
}
