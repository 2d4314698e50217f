package calculation

import (
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// DONATION CREDIT ASSUMPTIONS:
//
// 1. Rates follow the standard two-tier Canadian structure: a low rate on the
//    first $200 and a higher rate on the remainder.
// 2. The federal remainder rate bumps to the top-bracket rate when taxable
//    income exceeds the top-rate threshold. The Ontario remainder rate is
//    flat regardless of income.
// 3. Negative donation amounts are clamped to zero rather than rejected.

// DonationCreditCalculator computes the federal + Ontario charitable tax
// credit for a donation. Pure; safe for concurrent use.
type DonationCreditCalculator struct {
	Rates catalog.DonationRates
}

// NewDonationCreditCalculator creates a calculator from catalog rates.
func NewDonationCreditCalculator(cat *catalog.Catalog) *DonationCreditCalculator {
	return &DonationCreditCalculator{Rates: cat.DonationRates}
}

// Calculate returns the credit breakdown for a donation at a taxable income.
// A zero donation yields zero credits.
func (dc *DonationCreditCalculator) Calculate(donation, taxableIncome decimal.Decimal) domain.DonationCredit {
	amt := money.ClampNonNegative(donation)

	fedRemainder := dc.Rates.FederalRemainder
	if taxableIncome.GreaterThan(dc.Rates.TopRateThreshold) {
		fedRemainder = dc.Rates.FederalTopRate
	}

	var fed, prov decimal.Decimal
	firstTier := dc.Rates.FirstTierAmount
	if amt.LessThanOrEqual(firstTier) {
		fed = amt.Mul(dc.Rates.FederalFirstTier)
		prov = amt.Mul(dc.Rates.ProvFirstTier)
	} else {
		over := amt.Sub(firstTier)
		fed = firstTier.Mul(dc.Rates.FederalFirstTier).Add(over.Mul(fedRemainder))
		prov = firstTier.Mul(dc.Rates.ProvFirstTier).Add(over.Mul(dc.Rates.ProvRemainder))
	}

	fed = money.RoundCents(fed)
	prov = money.RoundCents(prov)

	return domain.DonationCredit{
		Donation:         money.RoundCents(amt),
		FederalCredit:    fed,
		ProvincialCredit: prov,
		TotalCredit:      fed.Add(prov),
	}
}
