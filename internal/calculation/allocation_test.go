package calculation

import (
	"testing"

	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationByAgeBracket(t *testing.T) {
	advisor := NewAllocationAdvisor(catalog.Load())
	income := decimal.NewFromInt(60000)

	tests := []struct {
		name     string
		age      int
		goals    []domain.Goal
		expected map[domain.FundKind]int
	}{
		{
			name:     "Minor",
			age:      16,
			expected: map[domain.FundKind]int{domain.FundTFSA: 60, domain.FundGIC: 40},
		},
		{
			name:     "Young adult",
			age:      25,
			expected: map[domain.FundKind]int{domain.FundTFSA: 60, domain.FundRRSP: 40},
		},
		{
			name:     "Young adult saving for a home",
			age:      25,
			goals:    []domain.Goal{domain.GoalHome},
			expected: map[domain.FundKind]int{domain.FundTFSA: 35, domain.FundFHSA: 65},
		},
		{
			name:     "Mid-career",
			age:      35,
			expected: map[domain.FundKind]int{domain.FundTFSA: 50, domain.FundRRSP: 50},
		},
		{
			name:  "Mid-career saving for a home",
			age:   35,
			goals: []domain.Goal{domain.GoalHome},
			expected: map[domain.FundKind]int{
				domain.FundTFSA: 40, domain.FundRRSP: 30, domain.FundFHSA: 30,
			},
		},
		{
			name: "Pre-retirement",
			age:  50,
			expected: map[domain.FundKind]int{
				domain.FundTFSA: 40, domain.FundRRSP: 40, domain.FundGIC: 20,
			},
		},
		{
			name: "Retirement age",
			age:  62,
			expected: map[domain.FundKind]int{
				domain.FundTFSA: 35, domain.FundRRSP: 25, domain.FundGIC: 40,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := advisor.Recommend(tt.age, income, tt.goals)
			assert.Equal(t, tt.expected, plan.Allocation)
		})
	}
}

func TestAllocationHighIncomeShift(t *testing.T) {
	advisor := NewAllocationAdvisor(catalog.Load())

	plan := advisor.Recommend(25, decimal.NewFromInt(120000), nil)
	assert.Equal(t, 50, plan.Allocation[domain.FundRRSP], "10 points shift into the RRSP")
	assert.Equal(t, 50, plan.Allocation[domain.FundTFSA])

	// RRSP caps at 50, TFSA still gives up its 10, and the 90-point mix is
	// renormalized to 100.
	plan = advisor.Recommend(35, decimal.NewFromInt(120000), nil)
	assert.Equal(t, 56, plan.Allocation[domain.FundRRSP])
	assert.Equal(t, 44, plan.Allocation[domain.FundTFSA])

	// No RRSP in the mix, no shift.
	plan = advisor.Recommend(25, decimal.NewFromInt(120000), []domain.Goal{domain.GoalHome})
	assert.Equal(t, 35, plan.Allocation[domain.FundTFSA])
	assert.Equal(t, 65, plan.Allocation[domain.FundFHSA])
}

func TestAllocationAlwaysSums100(t *testing.T) {
	advisor := NewAllocationAdvisor(catalog.Load())

	for age := 16; age <= 70; age += 3 {
		for _, income := range []int64{0, 45000, 100000, 100001, 250000} {
			for _, goals := range [][]domain.Goal{nil, {domain.GoalHome}, {domain.GoalHome, domain.GoalRetirement}} {
				plan := advisor.Recommend(age, decimal.NewFromInt(income), goals)
				sum := 0
				for _, pct := range plan.Allocation {
					sum += pct
				}
				require.Equal(t, 100, sum, "age=%d income=%d goals=%v", age, income, goals)
			}
		}
	}
}

func TestAllocationMonthlyRecommendation(t *testing.T) {
	advisor := NewAllocationAdvisor(catalog.Load())

	plan := advisor.Recommend(25, decimal.NewFromInt(60000), nil)
	// Take-home 52378.42, 15% of it spread over 12 months.
	assert.True(t, plan.MonthlyInvestRecommended.Equal(decimal.RequireFromString("654.73")),
		"got %s", plan.MonthlyInvestRecommended)
	assert.True(t, plan.TaxInfo.TakeHome.Equal(decimal.RequireFromString("52378.42")))
}
