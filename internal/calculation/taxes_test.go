package calculation

import (
	"testing"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxCalculatorKnownIncomes(t *testing.T) {
	tc := NewTaxCalculator(catalog.Load())

	tests := []struct {
		name        string
		income      decimal.Decimal
		expectedTax decimal.Decimal
		description string
	}{
		{
			name:        "Zero income",
			income:      decimal.Zero,
			expectedTax: decimal.Zero,
			description: "No income means no tax",
		},
		{
			name:        "Below credit threshold",
			income:      decimal.NewFromInt(20000),
			expectedTax: decimal.Zero,
			description: "Basic personal amount credit wipes out the tax",
		},
		{
			name:        "First bracket only",
			income:      decimal.NewFromInt(40000),
			expectedTax: decimal.RequireFromString("3478.26"),
			description: "40000 x 0.19 minus the BPA credit",
		},
		{
			name:        "Middle income across three brackets",
			income:      decimal.NewFromInt(60000),
			expectedTax: decimal.RequireFromString("7621.58"),
			description: "Marginal accumulation through the first three brackets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tc.Calculate(tt.income)
			assert.True(t, result.TotalTax.Equal(tt.expectedTax),
				"%s: got %s", tt.description, result.TotalTax)
			assert.True(t, result.TakeHome.Equal(result.GrossIncome.Sub(result.TotalTax)),
				"take-home must equal gross minus tax")
		})
	}
}

func TestTaxCalculatorEffectiveRate(t *testing.T) {
	tc := NewTaxCalculator(catalog.Load())

	result := tc.Calculate(decimal.NewFromInt(60000))
	assert.True(t, result.EffectiveRate.Equal(decimal.RequireFromString("12.7")),
		"effective rate should be 12.70%%, got %s", result.EffectiveRate)

	zero := tc.Calculate(decimal.Zero)
	assert.True(t, zero.EffectiveRate.IsZero())
}

func TestTaxCalculatorMonotonic(t *testing.T) {
	tc := NewTaxCalculator(catalog.Load())

	prev := decimal.Zero
	for income := int64(0); income <= 300000; income += 10000 {
		result := tc.Calculate(decimal.NewFromInt(income))
		assert.True(t, result.TotalTax.GreaterThanOrEqual(prev),
			"tax at %d should not be lower than at %d", income, income-10000)
		assert.True(t, result.TotalTax.GreaterThanOrEqual(decimal.Zero))
		prev = result.TotalTax
	}
}
