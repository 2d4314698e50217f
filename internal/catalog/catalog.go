// Package catalog holds the game's static reference tables: the fund lineup,
// combined federal+Ontario tax brackets, donation credit rates, the life-event
// deck, checkpoints, and the points-tier ladder. Tables are built once at
// process start (optionally overridden from a YAML file) and are read-only
// afterwards, so they are safe to share without synchronization.
package catalog

import (
	"fmt"
	"os"

	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// noCeiling marks the open-ended top bracket.
var noCeiling = decimal.NewFromInt(1_000_000_000_000)

// TaxBracket is one (ceiling, rate) step of the progressive schedule. Brackets
// are ordered by ascending ceiling; the final bracket is unbounded.
type TaxBracket struct {
	Ceiling decimal.Decimal `yaml:"ceiling"`
	Rate    decimal.Decimal `yaml:"rate"`
}

// DonationRates is the two-tier charitable credit rate structure.
type DonationRates struct {
	FirstTierAmount   decimal.Decimal `yaml:"first_tier_amount"`
	FederalFirstTier  decimal.Decimal `yaml:"federal_first_tier"`
	FederalRemainder  decimal.Decimal `yaml:"federal_remainder"`
	FederalTopRate    decimal.Decimal `yaml:"federal_top_rate"`
	TopRateThreshold  decimal.Decimal `yaml:"top_rate_threshold"`
	ProvFirstTier     decimal.Decimal `yaml:"provincial_first_tier"`
	ProvRemainder     decimal.Decimal `yaml:"provincial_remainder"`
}

// Rules bundles the simulation constants that are reference data rather than
// algorithm structure.
type Rules struct {
	BaseYear              int             `yaml:"base_year"`
	EndingAge             int             `yaml:"ending_age"`
	InflationRate         decimal.Decimal `yaml:"inflation_rate"`
	EventProbability      decimal.Decimal `yaml:"event_probability"`
	ContributionRate      decimal.Decimal `yaml:"contribution_rate"` // share of income auto-invested yearly
	BasicPersonalAmount   decimal.Decimal `yaml:"basic_personal_amount"`
	BPACreditRate         decimal.Decimal `yaml:"bpa_credit_rate"`
	HighIncomeThreshold   decimal.Decimal `yaml:"high_income_threshold"` // allocation RRSP shift
	DefaultFundReturn     decimal.Decimal `yaml:"default_fund_return"`   // funds missing from the lineup
	EmergencyFundMonths   int             `yaml:"emergency_fund_months"`
	NetWorthCheckpoint10K decimal.Decimal `yaml:"net_worth_checkpoint_10k"`
	NetWorthCheckpoint50K decimal.Decimal `yaml:"net_worth_checkpoint_50k"`
	DiversifiedFundCount  int             `yaml:"diversified_fund_count"`
}

// WithdrawOrder is the fixed fund priority used to cover a life-event cost
// once cash is exhausted. Each fund drains to zero before the next is touched.
var WithdrawOrder = []domain.FundKind{
	domain.FundGIC,
	domain.FundTFSA,
	domain.FundETF,
	domain.FundMutualFund,
	domain.FundStock,
	domain.FundRRSP,
	domain.FundFHSA,
}

// Catalog is the full set of reference tables.
type Catalog struct {
	Funds         []domain.FundInfo   `yaml:"funds"`
	TaxBrackets   []TaxBracket        `yaml:"tax_brackets"`
	DonationRates DonationRates       `yaml:"donation_rates"`
	LifeEvents    []domain.LifeEvent  `yaml:"life_events"`
	Checkpoints   []domain.Checkpoint `yaml:"checkpoints"`
	Tiers         []domain.Tier       `yaml:"tiers"`
	Rules         Rules               `yaml:"rules"`

	fundsByKind   map[domain.FundKind]domain.FundInfo
	eventsByID    map[string]domain.LifeEvent
	pointsByCheck map[string]int
}

// Load returns the built-in default catalog.
func Load() *Catalog {
	c := defaults()
	c.index()
	return c
}

// LoadFile loads the default catalog and replaces any section present in the
// YAML file, then validates the result. Sections absent from the file keep
// their defaults.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c := defaults()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	c.index()
	return c, nil
}

func (c *Catalog) index() {
	c.fundsByKind = make(map[domain.FundKind]domain.FundInfo, len(c.Funds))
	for _, f := range c.Funds {
		c.fundsByKind[f.Kind] = f
	}
	c.eventsByID = make(map[string]domain.LifeEvent, len(c.LifeEvents))
	for _, e := range c.LifeEvents {
		c.eventsByID[e.ID] = e
	}
	c.pointsByCheck = make(map[string]int, len(c.Checkpoints))
	for _, cp := range c.Checkpoints {
		c.pointsByCheck[cp.ID] = cp.Points
	}
}

// Fund looks up a fund's static metadata.
func (c *Catalog) Fund(kind domain.FundKind) (domain.FundInfo, bool) {
	f, ok := c.fundsByKind[kind]
	return f, ok
}

// AnnualReturn returns the fund's static growth rate, falling back to the
// default return for balances held in an unknown bucket.
func (c *Catalog) AnnualReturn(kind domain.FundKind) decimal.Decimal {
	if f, ok := c.fundsByKind[kind]; ok {
		return f.AnnualReturn
	}
	return c.Rules.DefaultFundReturn
}

// Event looks up a life event by id.
func (c *Catalog) Event(id string) (domain.LifeEvent, bool) {
	e, ok := c.eventsByID[id]
	return e, ok
}

// CheckpointPoints returns the points awarded for a checkpoint id, zero for
// unknown ids.
func (c *Catalog) CheckpointPoints(id string) int {
	return c.pointsByCheck[id]
}

// Validate checks internal consistency of the loaded tables.
func (c *Catalog) Validate() error {
	if len(c.Funds) == 0 {
		return fmt.Errorf("at least one fund is required")
	}
	seen := make(map[domain.FundKind]bool)
	for _, f := range c.Funds {
		if f.Kind == "" {
			return fmt.Errorf("fund kind is required")
		}
		if seen[f.Kind] {
			return fmt.Errorf("duplicate fund %q", f.Kind)
		}
		seen[f.Kind] = true
		if f.AnnualReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return fmt.Errorf("fund %q annual return cannot be -100%% or lower", f.Kind)
		}
	}

	if len(c.TaxBrackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}
	prev := decimal.Zero
	for i := range c.TaxBrackets {
		b := &c.TaxBrackets[i]
		if b.Ceiling.IsZero() {
			// An explicit zero ceiling marks the open-ended top bracket.
			b.Ceiling = noCeiling
		}
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("tax bracket %d rate must be between 0 and 1", i)
		}
		if b.Ceiling.LessThanOrEqual(prev) {
			return fmt.Errorf("tax bracket %d ceiling must exceed the previous ceiling", i)
		}
		prev = b.Ceiling
	}

	eventIDs := make(map[string]bool)
	for _, e := range c.LifeEvents {
		if e.ID == "" {
			return fmt.Errorf("life event id is required")
		}
		if eventIDs[e.ID] {
			return fmt.Errorf("duplicate life event %q", e.ID)
		}
		eventIDs[e.ID] = true
	}

	cpIDs := make(map[string]bool)
	for _, cp := range c.Checkpoints {
		if cp.ID == "" {
			return fmt.Errorf("checkpoint id is required")
		}
		if cpIDs[cp.ID] {
			return fmt.Errorf("duplicate checkpoint %q", cp.ID)
		}
		cpIDs[cp.ID] = true
		if cp.Points < 0 {
			return fmt.Errorf("checkpoint %q points cannot be negative", cp.ID)
		}
	}

	if len(c.Tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	if c.Tiers[0].MinPoints != 0 {
		return fmt.Errorf("the first tier must start at 0 points")
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].MinPoints <= c.Tiers[i-1].MinPoints {
			return fmt.Errorf("tier %q threshold must exceed the previous tier", c.Tiers[i].Name)
		}
	}

	if c.Rules.EventProbability.LessThan(decimal.Zero) || c.Rules.EventProbability.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("event probability must be between 0 and 1")
	}
	if c.Rules.EndingAge <= 0 {
		return fmt.Errorf("ending age must be positive")
	}
	return nil
}
