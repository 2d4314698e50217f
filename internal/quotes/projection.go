package quotes

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
)

// Percentiles are per-year price multipliers at the p10/p50/p90 bands.
// future price = current price x multiplier.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Projection is a ticker's simulated forward price distribution, expressed as
// multipliers so it stays valid as the spot price moves.
type Projection struct {
	Ticker                string              `json:"ticker"`
	StartingPrice         float64             `json:"starting_price"`
	EstimatedYearlyGrowth float64             `json:"estimated_yearly_growth"`
	RiskAnnualVolatility  float64             `json:"risk_annual_volatility"`
	MultipliersByYear     map[int]Percentiles `json:"multipliers_by_year"`
}

// Multiplier returns the requested percentile band for a year, falling back
// to the median when the band is unknown.
func (p *Projection) Multiplier(year int, percentile string) (float64, bool) {
	bands, ok := p.MultipliersByYear[year]
	if !ok {
		return 0, false
	}
	switch percentile {
	case "p10":
		return bands.P10, true
	case "p90":
		return bands.P90, true
	default:
		return bands.P50, true
	}
}

// Projector builds Monte Carlo projections from monthly return history.
type Projector struct {
	provider Provider
	seed     int64

	// HistoryYears is the trailing window fetched per ticker.
	HistoryYears int
	// Horizon is how many years of multipliers to simulate.
	Horizon int
	// Paths is the Monte Carlo sample count.
	Paths int
}

// NewProjector creates a projector with the standard sampling parameters.
func NewProjector(provider Provider, seed int64) *Projector {
	return &Projector{
		provider:     provider,
		seed:         seed,
		HistoryYears: 10,
		Horizon:      40,
		Paths:        2000,
	}
}

// Project fetches history for the ticker and simulates its forward multiplier
// distribution. The simulation is seeded per ticker, so repeated calls give
// identical projections.
func (p *Projector) Project(ctx context.Context, ticker string) (*Projection, error) {
	closes, err := p.provider.FetchMonthlyCloses(ctx, ticker, p.HistoryYears)
	if err != nil {
		return nil, err
	}
	if len(closes) < 13 {
		return nil, fmt.Errorf("%w: need at least a year of history for %s", ErrNoQuote, ticker)
	}

	logReturns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		logReturns = append(logReturns, math.Log(closes[i]/closes[i-1]))
	}

	mean, err := stats.Mean(logReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean return for %s: %w", ticker, err)
	}
	stdev, err := stats.StandardDeviationSample(logReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to compute return volatility for %s: %w", ticker, err)
	}

	rng := rand.New(rand.NewSource(p.seed ^ seedFor(ticker)))
	multipliers := p.simulate(rng, mean, stdev)

	return &Projection{
		Ticker:                ticker,
		StartingPrice:         closes[len(closes)-1],
		EstimatedYearlyGrowth: math.Expm1(12 * mean),
		RiskAnnualVolatility:  stdev * math.Sqrt(12),
		MultipliersByYear:     multipliers,
	}, nil
}

// simulate runs the Monte Carlo paths: each month draws a Gaussian log return
// and the accumulated sum is snapshotted at every year boundary.
func (p *Projector) simulate(rng *rand.Rand, mean, stdev float64) map[int]Percentiles {
	byYear := make(map[int][]float64, p.Horizon)
	for path := 0; path < p.Paths; path++ {
		cumulative := 0.0
		for year := 1; year <= p.Horizon; year++ {
			for month := 0; month < 12; month++ {
				cumulative += mean + stdev*rng.NormFloat64()
			}
			byYear[year] = append(byYear[year], math.Exp(cumulative))
		}
	}

	out := make(map[int]Percentiles, p.Horizon)
	for year, samples := range byYear {
		sort.Float64s(samples)
		p10, _ := stats.Percentile(samples, 10)
		p50, _ := stats.Percentile(samples, 50)
		p90, _ := stats.Percentile(samples, 90)
		out[year] = Percentiles{P10: p10, P50: p50, P90: p90}
	}
	return out
}

// seedFor derives a stable per-ticker seed component.
func seedFor(ticker string) int64 {
	var h int64
	for _, r := range ticker {
		h = h*31 + int64(r)
	}
	return h
}
