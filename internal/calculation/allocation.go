package calculation

import (
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// mixEntry is one weighted slot of a base allocation mix. Mixes are kept as
// ordered slices so the rounding residual always lands on the same fund.
type mixEntry struct {
	Kind   domain.FundKind
	Weight int
}

// AllocationAdvisor recommends an age- and goal-based portfolio split plus a
// monthly contribution amount. Deterministic; no error cases.
type AllocationAdvisor struct {
	taxes               *TaxCalculator
	highIncomeThreshold decimal.Decimal
	contributionRate    decimal.Decimal
}

// NewAllocationAdvisor creates an advisor backed by the catalog's tax schedule
// and rules.
func NewAllocationAdvisor(cat *catalog.Catalog) *AllocationAdvisor {
	return &AllocationAdvisor{
		taxes:               NewTaxCalculator(cat),
		highIncomeThreshold: cat.Rules.HighIncomeThreshold,
		contributionRate:    cat.Rules.ContributionRate,
	}
}

// Recommend builds the allocation plan for a player's age, income, and goals.
// Percentages always sum to exactly 100.
func (aa *AllocationAdvisor) Recommend(age int, income decimal.Decimal, goals []domain.Goal) domain.AllocationPlan {
	mix := baseMix(age, hasGoal(goals, domain.GoalHome))
	mix = aa.applyHighIncomeShift(mix, income)
	allocation := normalize(mix)

	taxInfo := aa.taxes.Calculate(income)
	monthly := money.RoundCents(taxInfo.TakeHome.Mul(aa.contributionRate).Div(decimal.NewFromInt(12)))

	return domain.AllocationPlan{
		Allocation:               allocation,
		MonthlyInvestRecommended: monthly,
		TaxInfo:                  taxInfo,
	}
}

// baseMix picks the starting weights by age bracket, shifting weight toward
// the FHSA when buying a home is a stated goal.
func baseMix(age int, wantsHome bool) []mixEntry {
	switch {
	case age < 18:
		return []mixEntry{{domain.FundTFSA, 60}, {domain.FundGIC, 40}}
	case age < 30:
		if wantsHome {
			return []mixEntry{{domain.FundTFSA, 35}, {domain.FundFHSA, 65}}
		}
		return []mixEntry{{domain.FundTFSA, 60}, {domain.FundRRSP, 40}}
	case age < 45:
		if wantsHome {
			return []mixEntry{{domain.FundTFSA, 40}, {domain.FundRRSP, 30}, {domain.FundFHSA, 30}}
		}
		return []mixEntry{{domain.FundTFSA, 50}, {domain.FundRRSP, 50}}
	case age < 60:
		return []mixEntry{{domain.FundTFSA, 40}, {domain.FundRRSP, 40}, {domain.FundGIC, 20}}
	default:
		return []mixEntry{{domain.FundTFSA, 35}, {domain.FundRRSP, 25}, {domain.FundGIC, 40}}
	}
}

// applyHighIncomeShift moves 10 points from TFSA to RRSP above the threshold.
// The RRSP is capped at 50 and the TFSA floored at 15.
func (aa *AllocationAdvisor) applyHighIncomeShift(mix []mixEntry, income decimal.Decimal) []mixEntry {
	if income.LessThanOrEqual(aa.highIncomeThreshold) {
		return mix
	}
	rrspIdx := -1
	for i, m := range mix {
		if m.Kind == domain.FundRRSP {
			rrspIdx = i
		}
	}
	if rrspIdx < 0 {
		return mix
	}
	out := make([]mixEntry, len(mix))
	copy(out, mix)
	out[rrspIdx].Weight = minInt(out[rrspIdx].Weight+10, 50)
	for i := range out {
		if out[i].Kind == domain.FundTFSA {
			out[i].Weight = maxInt(out[i].Weight-10, 15)
		}
	}
	return out
}

// normalize scales the weights to proportional integer percentages summing to
// exactly 100, assigning the rounding residual to the first fund of the mix.
func normalize(mix []mixEntry) map[domain.FundKind]int {
	total := 0
	for _, m := range mix {
		total += m.Weight
	}
	allocation := make(map[domain.FundKind]int, len(mix))
	sum := 0
	for _, m := range mix {
		pct := int(decimal.NewFromInt(int64(m.Weight)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(0).IntPart())
		allocation[m.Kind] = pct
		sum += pct
	}
	allocation[mix[0].Kind] += 100 - sum
	return allocation
}

func hasGoal(goals []domain.Goal, g domain.Goal) bool {
	for _, goal := range goals {
		if goal == g {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
