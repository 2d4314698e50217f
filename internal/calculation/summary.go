package calculation

import (
	"fmt"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// SummaryInput is the end-of-game state the summary is derived from.
type SummaryInput struct {
	StartingAge       int
	EndingAge         int
	StartingIncome    decimal.Decimal
	FinalPortfolio    map[domain.FundKind]decimal.Decimal
	FinalCash         decimal.Decimal
	CheckpointsEarned []string
	TotalPoints       int
}

// SummaryGenerator produces the end-of-game narrative: net worth, an investor
// personality, a literacy score, the tier reached, and feedback lines. Pure
// and deterministic.
type SummaryGenerator struct {
	tiers []domain.Tier
}

// NewSummaryGenerator creates a generator over the catalog's tier ladder.
func NewSummaryGenerator(cat *catalog.Catalog) *SummaryGenerator {
	return &SummaryGenerator{tiers: cat.Tiers}
}

// Generate builds the final game summary.
func (sg *SummaryGenerator) Generate(in SummaryInput) domain.GameSummary {
	netWorth := in.FinalCash
	for _, bal := range in.FinalPortfolio {
		netWorth = netWorth.Add(bal)
	}
	years := in.EndingAge - in.StartingAge

	personality, desc := sg.personality(in, netWorth)

	literacy := len(uniqueStrings(in.CheckpointsEarned)) * 10
	if literacy > 100 {
		literacy = 100
	}

	return domain.GameSummary{
		NetWorth:        money.RoundCents(netWorth),
		Personality:     personality,
		PersonalityDesc: desc,
		LiteracyScore:   literacy,
		Tier:            TierFor(sg.tiers, in.TotalPoints),
		TotalPoints:     in.TotalPoints,
		YearsPlayed:     years,
		Feedback:        sg.feedback(in, netWorth, years),
	}
}

// personality classifies the player by the combined cash + GIC share of final
// net worth.
func (sg *SummaryGenerator) personality(in SummaryInput, netWorth decimal.Decimal) (string, string) {
	denom := money.Max(netWorth, decimal.NewFromInt(1))
	safe := in.FinalCash.Add(in.FinalPortfolio[domain.FundGIC])
	share := money.Percent2(safe.Div(denom))

	if share.GreaterThan(decimal.NewFromInt(40)) {
		return "Ultra Conservative",
			"You played it safe. Secure, but inflation may have quietly eroded your wealth."
	}
	return "Balanced Strategist",
		"You diversified well: steady, resilient, and smart. Most advisors would approve."
}

func (sg *SummaryGenerator) feedback(in SummaryInput, netWorth decimal.Decimal, years int) []string {
	earned := make(map[string]bool, len(in.CheckpointsEarned))
	for _, id := range in.CheckpointsEarned {
		earned[id] = true
	}

	lines := make([]string, 0, 4)
	nw := money.RoundDollars(netWorth)
	switch {
	case netWorth.GreaterThan(decimal.NewFromInt(100_000)):
		lines = append(lines, fmt.Sprintf("You built a net worth of $%s over %d years. Impressive.", nw, years))
	case netWorth.GreaterThan(decimal.NewFromInt(50_000)):
		lines = append(lines, fmt.Sprintf("Net worth of $%s shows solid progress.", nw))
	default:
		lines = append(lines, fmt.Sprintf("Final net worth: $%s. Small consistent investments compound, so keep going.", nw))
	}

	if earned["diversified"] {
		lines = append(lines, "You diversified, which is one of the smartest investing moves.")
	} else {
		lines = append(lines, "Next time, spread money across different asset types to reduce risk.")
	}
	if earned["survived_crash"] {
		lines = append(lines, "You kept cool during a market crash. That's where most people lose big.")
	}

	if in.StartingIncome.GreaterThan(decimal.Zero) {
		monthlyIncome := in.StartingIncome.Div(decimal.NewFromInt(12))
		months := in.FinalCash.Div(monthlyIncome)
		if months.GreaterThanOrEqual(decimal.NewFromInt(3)) {
			lines = append(lines, fmt.Sprintf("%s months of cash reserves is a solid emergency fund.", months.Round(1)))
		} else {
			lines = append(lines, "Cash reserves are thin. Aim for 3-6 months of expenses in accessible savings.")
		}
	}
	return lines
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
