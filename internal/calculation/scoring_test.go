package calculation

import (
	"testing"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tiers := catalog.Load().Tiers

	tests := []struct {
		name     string
		points   int
		expected string
	}{
		{"Starting out", 0, "Surviving"},
		{"Just under a threshold", 199, "Surviving"},
		{"Exactly at a threshold", 200, "Budget Builder"},
		{"Mid ladder", 550, "Saver"},
		{"Top of the ladder", 5000, "Financial Architect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tiers, tt.points).Name)
		})
	}
}

func TestHerfindahlDiversification(t *testing.T) {
	tests := []struct {
		name     string
		weights  []float64
		expected float64
	}{
		{"Perfectly even", []float64{100, 100, 100, 100}, 1.0},
		{"Single holding", []float64{400}, 0.0},
		{"Empty", nil, 0.0},
		{"Zero sum", []float64{0, 0}, 0.0},
		{"Two even holdings", []float64{50, 50}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HerfindahlDiversification(tt.weights), 1e-9)
		})
	}

	t.Run("Concentration lowers the score", func(t *testing.T) {
		even := HerfindahlDiversification([]float64{100, 100, 100})
		skewed := HerfindahlDiversification([]float64{280, 10, 10})
		assert.Greater(t, even, skewed)
	})
}

func TestHealthScorerRejectsNonPositiveIncome(t *testing.T) {
	hs := NewHealthScorer()

	_, err := hs.Score(HealthInput{AnnualIncome: 0})
	require.ErrorIs(t, err, ErrNonPositiveIncome)

	_, err = hs.Score(HealthInput{AnnualIncome: -5000})
	require.ErrorIs(t, err, ErrNonPositiveIncome)
}

func TestHealthScorerSubscores(t *testing.T) {
	hs := NewHealthScorer()

	result, err := hs.Score(HealthInput{
		AnnualIncome:            85000,
		AnnualSavedOrInvested:   17000, // exactly at the 20% target
		EmergencyFundCash:       19200, // 6 months at 3200/month
		EssentialMonthlyExpense: 3200,
		TaxAdvantagedShare:      0.7,
		PortfolioWeights:        []float64{25, 25, 25, 25},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Subscores["savings_rate"], 1e-9)
	assert.InDelta(t, 1.0, result.Subscores["emergency_fund"], 1e-9)
	assert.InDelta(t, 0.7, result.Subscores["tax_efficiency"], 1e-9)
	assert.InDelta(t, 1.0, result.Subscores["diversification"], 1e-9)
	// 30 + 25 + 0.7x15 + 10 = 75.5, no charity bonus.
	assert.InDelta(t, 75.5, result.Score, 1e-9)
}

func TestHealthScorerCharityBonus(t *testing.T) {
	hs := NewHealthScorer()

	base := HealthInput{
		AnnualIncome:            80000,
		AnnualSavedOrInvested:   16000,
		EmergencyFundCash:       10000,
		EssentialMonthlyExpense: 3000,
	}
	without, err := hs.Score(base)
	require.NoError(t, err)

	base.AnnualCharity = 4000 // 5% of income saturates the bonus
	with, err := hs.Score(base)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, with.Score-without.Score, 1e-9)
}

func TestHealthScorerRecommendationsIndependent(t *testing.T) {
	hs := NewHealthScorer()

	// Everything weak at once: all four advisories fire together.
	result, err := hs.Score(HealthInput{
		AnnualIncome:            60000,
		AnnualSavedOrInvested:   1000,
		EmergencyFundCash:       500,
		EssentialMonthlyExpense: 2500,
		TaxAdvantagedShare:      0.1,
		PortfolioWeights:        []float64{100},
	})
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 4)

	// Nothing weak: the single all-clear line.
	strong, err := hs.Score(HealthInput{
		AnnualIncome:            60000,
		AnnualSavedOrInvested:   15000,
		EmergencyFundCash:       20000,
		EssentialMonthlyExpense: 2500,
		TaxAdvantagedShare:      0.8,
		PortfolioWeights:        []float64{25, 25, 25, 25},
	})
	require.NoError(t, err)
	assert.Len(t, strong.Recommendations, 1)
}

func TestHealthScorerDirectDiversificationOverride(t *testing.T) {
	hs := NewHealthScorer()
	override := 0.9

	result, err := hs.Score(HealthInput{
		AnnualIncome:         60000,
		DiversificationScore: &override,
		PortfolioWeights:     []float64{100}, // ignored when the override is set
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, result.Subscores["diversification"], 1e-9)
}
