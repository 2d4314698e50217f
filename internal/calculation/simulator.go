package calculation

import (
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/pkg/money"
	"github.com/shopspring/decimal"
)

// YEAR SIMULATION ASSUMPTIONS:
//
// 1. Contributions land in cash as a straight monthly x 12 addition; there is
//    no intra-year compounding.
// 2. Fund growth uses each fund's static annual return, rounded to whole
//    dollars per fund.
// 3. A market-effect event adjusts only the growth buckets (stock, etf,
//    mutual_fund), after growth is applied.
// 4. Event costs drain cash first, then funds in the fixed withdrawal order,
//    each fund down to zero before the next. Balances never go negative; an
//    uncoverable remainder is reported as Shortfall.
// 5. The event draw is a single Bernoulli trial at the catalog probability
//    followed by a uniform pick over the deck.

// YearInput is one year's starting state plus simulation controls.
type YearInput struct {
	Portfolio           map[domain.FundKind]decimal.Decimal
	Cash                decimal.Decimal
	Age                 int
	Income              decimal.Decimal
	Year                int
	MonthlyContribution decimal.Decimal

	// TriggerEvent forces a specific event by id; unknown ids mean no event.
	TriggerEvent string
	// ForceNoEvent suppresses the random draw (preview support).
	ForceNoEvent bool
}

// YearSimulator advances game state by one simulated year. The random source
// is injected so tests and previews can run deterministically.
type YearSimulator struct {
	catalog *catalog.Catalog
	random  RandomSource
}

// NewYearSimulator creates a simulator over the catalog's fund returns and
// life-event deck.
func NewYearSimulator(cat *catalog.Catalog, random RandomSource) *YearSimulator {
	return &YearSimulator{catalog: cat, random: random}
}

// Simulate runs one year: event draw, contributions, growth, market effect,
// event cost settlement, and checkpoint evaluation. The input maps are not
// mutated.
func (ys *YearSimulator) Simulate(in YearInput) domain.YearResult {
	event := ys.drawEvent(in.TriggerEvent, in.ForceNoEvent)

	cash := in.Cash.Add(in.MonthlyContribution.Mul(decimal.NewFromInt(12)))

	portfolio := make(map[domain.FundKind]decimal.Decimal, len(in.Portfolio))
	for kind, bal := range in.Portfolio {
		grown := bal.Mul(decimal.NewFromInt(1).Add(ys.catalog.AnnualReturn(kind)))
		portfolio[kind] = money.RoundDollars(grown)
	}

	var applied *domain.AppliedEvent
	shortfall := decimal.Zero
	if event != nil {
		applied = &domain.AppliedEvent{LifeEvent: *event}
		if event.HasMarketEffect() {
			ys.applyMarketEffect(portfolio, event.MarketEffect)
		}
		switch {
		case event.Cost.GreaterThan(decimal.Zero):
			cash, shortfall = ys.settleCost(portfolio, cash, event.Cost)
			applied.ActualCost = event.Cost
		case event.Cost.LessThan(decimal.Zero):
			gain := event.Cost.Neg()
			cash = cash.Add(gain)
			applied.ActualGain = gain
		}
	}

	cash = money.RoundDollars(cash)
	netWorth := cash
	for _, bal := range portfolio {
		netWorth = netWorth.Add(bal)
	}

	return domain.YearResult{
		Portfolio:         portfolio,
		Cash:              cash,
		Age:               in.Age + 1,
		Year:              in.Year + 1,
		NetWorth:          netWorth,
		Event:             applied,
		EarnedCheckpoints: ys.evaluateCheckpoints(portfolio, cash, netWorth, in.MonthlyContribution, applied),
		InflationRate:     ys.catalog.Rules.InflationRate,
		Shortfall:         shortfall,
	}
}

// drawEvent resolves which life event (if any) lands this year. A trigger id
// takes precedence; otherwise a single Bernoulli trial decides whether an
// event occurs, then the deck is sampled uniformly.
func (ys *YearSimulator) drawEvent(trigger string, forceNoEvent bool) *domain.LifeEvent {
	if trigger != "" {
		if ev, ok := ys.catalog.Event(trigger); ok {
			return &ev
		}
		return nil
	}
	if forceNoEvent || len(ys.catalog.LifeEvents) == 0 {
		return nil
	}
	prob, _ := ys.catalog.Rules.EventProbability.Float64()
	if ys.random.Float64() >= prob {
		return nil
	}
	idx := int(ys.random.Float64() * float64(len(ys.catalog.LifeEvents)))
	if idx >= len(ys.catalog.LifeEvents) {
		idx = len(ys.catalog.LifeEvents) - 1
	}
	ev := ys.catalog.LifeEvents[idx]
	return &ev
}

func (ys *YearSimulator) applyMarketEffect(portfolio map[domain.FundKind]decimal.Decimal, effect decimal.Decimal) {
	factor := decimal.NewFromInt(1).Add(effect)
	for _, kind := range domain.GrowthFunds {
		if bal, ok := portfolio[kind]; ok {
			portfolio[kind] = money.RoundDollars(bal.Mul(factor))
		}
	}
}

// settleCost covers an event cost from cash, then from funds in withdrawal
// order. Returns the remaining cash and any uncovered shortfall.
func (ys *YearSimulator) settleCost(portfolio map[domain.FundKind]decimal.Decimal, cash, cost decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	remaining := cost
	if cash.GreaterThanOrEqual(remaining) {
		return cash.Sub(remaining), decimal.Zero
	}
	remaining = remaining.Sub(cash)
	cash = decimal.Zero

	for _, kind := range catalog.WithdrawOrder {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		bal, ok := portfolio[kind]
		if !ok || bal.LessThanOrEqual(decimal.Zero) {
			continue
		}
		withdraw := decimal.Min(bal, remaining)
		portfolio[kind] = bal.Sub(withdraw)
		remaining = remaining.Sub(withdraw)
	}
	return cash, money.ClampNonNegative(remaining)
}

// evaluateCheckpoints returns every checkpoint id whose condition holds after
// the year. Evaluation is idempotent; the caller deduplicates against the
// already-earned set.
func (ys *YearSimulator) evaluateCheckpoints(portfolio map[domain.FundKind]decimal.Decimal, cash, netWorth, monthly decimal.Decimal, event *domain.AppliedEvent) []string {
	positive := func(kind domain.FundKind) bool {
		return portfolio[kind].GreaterThan(decimal.Zero)
	}

	earned := make([]string, 0, 4)
	if positive(domain.FundTFSA) {
		earned = append(earned, "open_tfsa")
	}
	if positive(domain.FundRRSP) {
		earned = append(earned, "open_rrsp")
	}
	if positive(domain.FundFHSA) {
		earned = append(earned, "open_fhsa")
	}
	months := decimal.NewFromInt(int64(ys.catalog.Rules.EmergencyFundMonths))
	if cash.GreaterThanOrEqual(monthly.Mul(months)) {
		earned = append(earned, "emergency_fund")
	}
	if event != nil && event.MarketEffect.LessThan(decimal.Zero) {
		earned = append(earned, "survived_crash")
	}
	if netWorth.GreaterThanOrEqual(ys.catalog.Rules.NetWorthCheckpoint10K) {
		earned = append(earned, "net_worth_10k")
	}
	if netWorth.GreaterThanOrEqual(ys.catalog.Rules.NetWorthCheckpoint50K) {
		earned = append(earned, "net_worth_50k")
	}
	active := 0
	for _, bal := range portfolio {
		if bal.GreaterThan(decimal.Zero) {
			active++
		}
	}
	if active >= ys.catalog.Rules.DiversifiedFundCount {
		earned = append(earned, "diversified")
	}
	return earned
}
