package domain

import "github.com/shopspring/decimal"

// FundKind identifies an investment vehicle in the static fund catalog.
type FundKind string

const (
	FundTFSA       FundKind = "tfsa"
	FundRRSP       FundKind = "rrsp"
	FundFHSA       FundKind = "fhsa"
	FundGIC        FundKind = "gic"
	FundRESP       FundKind = "resp"
	FundETF        FundKind = "etf"
	FundMutualFund FundKind = "mutual_fund"
	FundStock      FundKind = "stock"
)

// FundInfo is the static reference entry for a fund: a fixed annual return
// plus display metadata. Catalog data, never mutated after load.
type FundInfo struct {
	Kind              FundKind        `json:"kind" yaml:"kind"`
	Name              string          `json:"name" yaml:"name"`
	FullName          string          `json:"full_name" yaml:"full_name"`
	AnnualReturn      decimal.Decimal `json:"annual_return" yaml:"annual_return"`
	Description       string          `json:"description" yaml:"description"`
	Risk              string          `json:"risk" yaml:"risk"`
	BestForAges       string          `json:"best_for_ages" yaml:"best_for_ages"`
	ContributionLimit decimal.Decimal `json:"contribution_limit" yaml:"contribution_limit"` // zero when uncapped
}

// GrowthFunds are the market-exposed portfolio buckets that life-event market
// effects apply to. The "stock" bucket here is the pooled portfolio fund, not
// individual ticker holdings.
var GrowthFunds = []FundKind{FundStock, FundETF, FundMutualFund}

// IsGrowthFund reports whether market effects apply to the given fund.
func IsGrowthFund(kind FundKind) bool {
	for _, g := range GrowthFunds {
		if g == kind {
			return true
		}
	}
	return false
}
