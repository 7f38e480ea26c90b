package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmarada/AI-portfolio/internal/models"
)

const (
	defaultFinancialsMinLatency = 200 * time.Millisecond
	defaultFinancialsMaxLatency = 500 * time.Millisecond

	addedAssetRationale = "Manually added in sandbox mode."
)

// sectors a generated asset can belong to
var sectors = []string{
	"Technology",
	"Healthcare",
	"Financials",
	"Consumer Discretionary",
	"Energy",
	"Industrials",
	"Utilities",
	"Real Estate",
}

// FinancialsGenerator fabricates fundamental metrics for a single ticker the
// user adds in the sandbox. Real fundamentals would come from a data vendor;
// these are plausible random draws so blended portfolio metrics stay sensible.
type FinancialsGenerator struct {
	sim        *Simulator
	rand       *randSource
	minLatency time.Duration
	maxLatency time.Duration
}

// FinancialsOption configures a FinancialsGenerator
type FinancialsOption func(*FinancialsGenerator)

// WithFinancialsLatency overrides the simulated delay window. Zero durations
// disable the delay entirely (used by tests).
func WithFinancialsLatency(min, max time.Duration) FinancialsOption {
	return func(g *FinancialsGenerator) {
		g.minLatency = min
		g.maxLatency = max
	}
}

// WithFinancialsSeed makes the generator's randomness reproducible
func WithFinancialsSeed(seed int64) FinancialsOption {
	return func(g *FinancialsGenerator) {
		g.rand = newRandSource(seed)
	}
}

// NewFinancialsGenerator creates a FinancialsGenerator. Market snapshots come
// from the given quote simulator so generated assets share the price cache.
func NewFinancialsGenerator(sim *Simulator, opts ...FinancialsOption) *FinancialsGenerator {
	g := &FinancialsGenerator{
		sim:        sim,
		rand:       newRandSource(time.Now().UnixNano() + 1),
		minLatency: defaultFinancialsMinLatency,
		maxLatency: defaultFinancialsMaxLatency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Financials produces synthetic fundamentals for one ticker, including a
// current market snapshot. All numeric outputs are rounded to 2 decimals.
func (g *FinancialsGenerator) Financials(ctx context.Context, ticker string) (*models.Asset, error) {
	if err := g.rand.sleepJitter(ctx, g.minLatency, g.maxLatency); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	quote, err := g.sim.Quote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market data for %s: %w", symbol, err)
	}

	return &models.Asset{
		Ticker:         symbol,
		Name:           symbol + " Holdings",
		Sector:         sectors[g.rand.intn(len(sectors))],
		Beta:           round2(g.rand.uniform(0.5, 2.0)),
		ExpectedReturn: round2(g.rand.uniform(5, 15)),
		Volatility:     round2(g.rand.uniform(10, 30)),
		Rationale:      addedAssetRationale,
		MarketData:     quote,
	}, nil
}
