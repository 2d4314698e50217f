package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()

	assert.Len(t, c.Funds, 8, "Should ship the full fund lineup")
	assert.Len(t, c.LifeEvents, 12, "Should ship the full event deck")
	assert.Len(t, c.Checkpoints, 8)
	assert.Len(t, c.Tiers, 6)
	assert.NoError(t, c.Validate())
}

func TestFundLookup(t *testing.T) {
	c := Load()

	tfsa, ok := c.Fund(domain.FundTFSA)
	require.True(t, ok)
	assert.True(t, tfsa.AnnualReturn.Equal(decimal.NewFromFloat(0.07)))

	_, ok = c.Fund(domain.FundKind("crypto"))
	assert.False(t, ok)
	assert.True(t, c.AnnualReturn(domain.FundKind("crypto")).Equal(decimal.NewFromFloat(0.05)),
		"Unknown buckets should grow at the default return")
}

func TestEventLookup(t *testing.T) {
	c := Load()

	crash, ok := c.Event("market_crash")
	require.True(t, ok)
	assert.True(t, crash.HasMarketEffect())
	assert.True(t, crash.MarketEffect.IsNegative())
	assert.True(t, crash.Cost.IsZero())

	_, ok = c.Event("alien_invasion")
	assert.False(t, ok)
}

func TestCheckpointPoints(t *testing.T) {
	c := Load()

	assert.Equal(t, 250, c.CheckpointPoints("survived_crash"))
	assert.Equal(t, 0, c.CheckpointPoints("nope"))
}

func TestTiersAscending(t *testing.T) {
	c := Load()

	for i := 1; i < len(c.Tiers); i++ {
		assert.Greater(t, c.Tiers[i].MinPoints, c.Tiers[i-1].MinPoints)
	}
}

func TestLoadFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	override := `
tiers:
  - name: Rookie
    min_points: 0
  - name: Pro
    min_points: 1000
rules:
  base_year: 2030
  ending_age: 70
  inflation_rate: 0.03
  event_probability: 0.5
  contribution_rate: 0.15
  basic_personal_amount: 30000
  bpa_credit_rate: 0.14
  high_income_threshold: 100000
  default_fund_return: 0.05
  emergency_fund_months: 3
  net_worth_checkpoint_10k: 10000
  net_worth_checkpoint_50k: 50000
  diversified_fund_count: 3
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2030, c.Rules.BaseYear)
	assert.Equal(t, 70, c.Rules.EndingAge)
	require.Len(t, c.Tiers, 2)
	assert.Equal(t, "Pro", c.Tiers[1].Name)
	// Untouched sections keep their defaults.
	assert.Len(t, c.LifeEvents, 12)
	assert.Len(t, c.TaxBrackets, 9)
}

func TestLoadFileRejectsBadTiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	bad := `
tiers:
  - name: Backwards
    min_points: 500
  - name: Earlier
    min_points: 100
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err, "Should reject a tier ladder that does not start at 0")
}

func TestValidateRejectsDuplicateEvents(t *testing.T) {
	c := defaults()
	c.LifeEvents = append(c.LifeEvents, c.LifeEvents[0])

	err := c.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate life event")
}
