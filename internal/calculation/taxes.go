package calculation

import (
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are combined federal + Ontario marginal rates for a single
//    filing year; no inflation indexing is applied across simulated years.
// 2. The basic personal amount is a flat credit (amount x credit rate)
//    subtracted from accumulated tax and floored at zero.
// 3. Effective rate is reported as a percentage rounded to 2 decimals.

// TaxCalculator computes progressive income tax from the catalog's bracket
// schedule. Pure; safe for concurrent use.
type TaxCalculator struct {
	Brackets            []catalog.TaxBracket
	BasicPersonalAmount decimal.Decimal
	BPACreditRate       decimal.Decimal
}

// NewTaxCalculator creates a tax calculator from catalog reference data.
func NewTaxCalculator(cat *catalog.Catalog) *TaxCalculator {
	return &TaxCalculator{
		Brackets:            cat.TaxBrackets,
		BasicPersonalAmount: cat.Rules.BasicPersonalAmount,
		BPACreditRate:       cat.Rules.BPACreditRate,
	}
}

// Calculate runs the marginal-bracket accumulation for a gross annual income.
// Zero income yields zero tax; there are no error cases.
func (tc *TaxCalculator) Calculate(income decimal.Decimal) domain.TaxResult {
	tax := decimal.Zero
	prev := decimal.Zero

	for _, bracket := range tc.Brackets {
		if income.LessThanOrEqual(prev) {
			break
		}
		taxable := decimal.Min(income, bracket.Ceiling).Sub(prev)
		tax = tax.Add(taxable.Mul(bracket.Rate))
		prev = bracket.Ceiling
	}

	// Basic personal amount credit, floored at zero.
	tax = tax.Sub(tc.BasicPersonalAmount.Mul(tc.BPACreditRate))
	tax = money.RoundCents(money.ClampNonNegative(tax))

	effectiveRate := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		effectiveRate = money.Percent2(tax.Div(income))
	}

	return domain.TaxResult{
		GrossIncome:   money.RoundCents(income),
		TotalTax:      tax,
		EffectiveRate: effectiveRate,
		TakeHome:      money.RoundCents(income).Sub(tax),
	}
}
