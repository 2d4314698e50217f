package calculation

import (
	"errors"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveIncome is returned by the health scorer when annual income is
// zero or negative.
var ErrNonPositiveIncome = errors.New("annual income must be positive")

// TierFor returns the highest tier whose threshold the points reach. Tiers
// are stored in ascending order, so the last qualifying entry wins.
func TierFor(tiers []domain.Tier, totalPoints int) domain.Tier {
	tier := tiers[0]
	for _, t := range tiers {
		if totalPoints >= t.MinPoints {
			tier = t
		}
	}
	return tier
}

// HerfindahlDiversification converts portfolio weights into a 0-1
// diversification score: the complement of the Herfindahl index, rescaled so
// equal weights approach 1. A single holding (or no holdings) scores 0.
func HerfindahlDiversification(weights []float64) float64 {
	sum := 0.0
	n := 0
	for _, w := range weights {
		sum += w
		n++
	}
	if n == 0 || sum <= 0 {
		return 0
	}
	h := 0.0
	for _, w := range weights {
		p := w / sum
		h += p * p
	}
	if n == 1 {
		return 0
	}
	maxRaw := 1.0 - 1.0/float64(n)
	return clamp01((1.0 - h) / maxRaw)
}

// HealthInput is the behavioral profile scored by the financial health model.
// Diversification may be supplied directly or derived from PortfolioWeights.
type HealthInput struct {
	AnnualIncome            float64
	AnnualSavedOrInvested   float64
	EmergencyFundCash       float64
	EssentialMonthlyExpense float64
	TaxAdvantagedShare      float64 // fraction of investments in TFSA/RRSP/FHSA

	DiversificationScore *float64 // 0-1 override
	PortfolioWeights     []float64

	AnnualCharity float64
}

// HealthWeights are the subscore weights on the 100-point scale. The defaults
// sum to 0.80, leaving headroom for the charity bonus.
type HealthWeights struct {
	SavingsRate     float64
	EmergencyFund   float64
	TaxEfficiency   float64
	Diversification float64
}

// HealthTargets are the levels at which each subscore saturates at 1.
type HealthTargets struct {
	SavingsRate     float64 // fraction of income
	EmergencyMonths float64
	CharityRate     float64 // fraction of income for max bonus
}

// HealthResult is the composite score with its breakdown.
type HealthResult struct {
	Score           float64            `json:"score"`
	Subscores       map[string]float64 `json:"subscores"`
	Metrics         map[string]float64 `json:"metrics"`
	Recommendations []string           `json:"recommendations"`
}

// HealthScorer computes a 0-100 financial health score from savings rate,
// emergency coverage, tax-advantaged share, and diversification, with a small
// charity bonus on top.
type HealthScorer struct {
	Weights         HealthWeights
	Targets         HealthTargets
	CharityBonusMax float64
}

// DefaultHealthWeights returns the standard subscore weighting.
func DefaultHealthWeights() HealthWeights {
	return HealthWeights{
		SavingsRate:     0.30,
		EmergencyFund:   0.25,
		TaxEfficiency:   0.15,
		Diversification: 0.10,
	}
}

// DefaultHealthTargets returns the standard saturation targets.
func DefaultHealthTargets() HealthTargets {
	return HealthTargets{
		SavingsRate:     0.20,
		EmergencyMonths: 6.0,
		CharityRate:     0.05,
	}
}

// NewHealthScorer creates a scorer with the default weights and targets.
func NewHealthScorer() *HealthScorer {
	return &HealthScorer{
		Weights:         DefaultHealthWeights(),
		Targets:         DefaultHealthTargets(),
		CharityBonusMax: 5.0,
	}
}

// Score computes the composite health score. Each recommendation threshold is
// checked independently, so several can fire at once.
func (hs *HealthScorer) Score(in HealthInput) (HealthResult, error) {
	if in.AnnualIncome <= 0 {
		return HealthResult{}, ErrNonPositiveIncome
	}

	savingsRate := max0(in.AnnualSavedOrInvested) / in.AnnualIncome
	essential := in.EssentialMonthlyExpense
	if essential < 0.01 {
		essential = 0.01
	}
	emergencyMonths := max0(in.EmergencyFundCash) / essential
	taxShare := clamp01(in.TaxAdvantagedShare)

	divScore := 0.0
	switch {
	case in.DiversificationScore != nil:
		divScore = clamp01(*in.DiversificationScore)
	case len(in.PortfolioWeights) > 0:
		divScore = HerfindahlDiversification(in.PortfolioWeights)
	}

	subscores := map[string]float64{
		"savings_rate":    linearTarget(savingsRate, hs.Targets.SavingsRate),
		"emergency_fund":  linearTarget(emergencyMonths, hs.Targets.EmergencyMonths),
		"tax_efficiency":  taxShare,
		"diversification": divScore,
	}

	base := 100.0 * (hs.Weights.SavingsRate*subscores["savings_rate"] +
		hs.Weights.EmergencyFund*subscores["emergency_fund"] +
		hs.Weights.TaxEfficiency*subscores["tax_efficiency"] +
		hs.Weights.Diversification*subscores["diversification"])

	charityRate := max0(in.AnnualCharity) / in.AnnualIncome
	bonus := hs.CharityBonusMax * linearTarget(charityRate, hs.Targets.CharityRate)

	return HealthResult{
		Score:     clamp(base+bonus, 0, 100),
		Subscores: subscores,
		Metrics: map[string]float64{
			"savings_rate":     savingsRate,
			"emergency_months": emergencyMonths,
			"charity_rate":     charityRate,
		},
		Recommendations: hs.recommendations(savingsRate, emergencyMonths, taxShare, divScore),
	}, nil
}

func (hs *HealthScorer) recommendations(savingsRate, emergencyMonths, taxShare, divScore float64) []string {
	recs := make([]string, 0, 4)
	switch {
	case savingsRate < 0.10:
		recs = append(recs, "Consider increasing your savings/investing rate toward 10-20% of income; even small automatic transfers help.")
	case savingsRate < hs.Targets.SavingsRate:
		recs = append(recs, "You're saving and investing, but pushing toward roughly 20% can significantly improve long-term outcomes.")
	}
	switch {
	case emergencyMonths < 1.0:
		recs = append(recs, "Build a starter emergency fund; aim for 1 month of essential expenses first.")
	case emergencyMonths < 3.0:
		recs = append(recs, "Emergency fund is below 3 months; consider building it up for better stability.")
	case emergencyMonths < hs.Targets.EmergencyMonths:
		recs = append(recs, "Emergency fund is solid; consider aiming for around 6 months if your income is volatile.")
	}
	if taxShare < 0.5 {
		recs = append(recs, "If available, consider increasing contributions to tax-advantaged accounts like a TFSA or RRSP for better tax efficiency.")
	}
	if divScore < 0.4 {
		recs = append(recs, "Your portfolio looks concentrated; broad index funds or ETFs can improve diversification and reduce single-stock risk.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your basics look strong. Review once per quarter and adjust goals as your situation changes.")
	}
	return recs
}

// BuildHealthInput converts live game state into a scorer profile: annual
// savings from the monthly contribution, emergency cash, a tax-advantaged
// share from TFSA/RRSP/FHSA balances, and essential expenses estimated as 60%
// of monthly take-home.
func BuildHealthInput(cat *catalog.Catalog, portfolio map[domain.FundKind]decimal.Decimal, cash, income, monthlyContribution decimal.Decimal, annualCharity decimal.Decimal) HealthInput {
	taxInfo := NewTaxCalculator(cat).Calculate(income)
	monthlyNet, _ := taxInfo.TakeHome.Div(decimal.NewFromInt(12)).Float64()

	taxAdvantaged := decimal.Zero
	total := decimal.Zero
	weights := make([]float64, 0, len(portfolio))
	for kind, bal := range portfolio {
		total = total.Add(bal)
		if kind == domain.FundTFSA || kind == domain.FundRRSP || kind == domain.FundFHSA {
			taxAdvantaged = taxAdvantaged.Add(bal)
		}
		if bal.GreaterThan(decimal.Zero) {
			w, _ := bal.Float64()
			weights = append(weights, w)
		}
	}
	taxShare := 0.0
	if total.GreaterThan(decimal.Zero) {
		taxShare, _ = taxAdvantaged.Div(total).Float64()
	}

	incomeF, _ := income.Float64()
	cashF, _ := cash.Float64()
	savedF, _ := monthlyContribution.Mul(decimal.NewFromInt(12)).Float64()
	charityF, _ := annualCharity.Float64()

	return HealthInput{
		AnnualIncome:            incomeF,
		AnnualSavedOrInvested:   savedF,
		EmergencyFundCash:       cashF,
		EssentialMonthlyExpense: monthlyNet * 0.60,
		TaxAdvantagedShare:      taxShare,
		PortfolioWeights:        weights,
		AnnualCharity:           charityF,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x float64) float64 { return clamp(x, 0, 1) }

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func linearTarget(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clamp01(value / target)
}
