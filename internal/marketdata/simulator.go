package marketdata

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mmarada/AI-portfolio/internal/cache"
	"github.com/mmarada/AI-portfolio/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	minSeedPrice = 20.0
	maxSeedPrice = 520.0
	maxFluct     = 0.025 // +/- 2.5% per fetch

	defaultQuoteMinLatency = 300 * time.Millisecond
	defaultQuoteMaxLatency = 700 * time.Millisecond
)

// Simulator produces synthetic quotes for ticker symbols. It stands in for a
// remote market-data provider: each fetch carries an artificial delay so UI
// loading states can be exercised realistically.
//
// Prices are seeded randomly on first sight of a ticker and fluctuate a few
// percent per fetch from the last value in the explicitly owned price cache.
// Overlapping in-flight fetches interleave cache reads and writes
// last-write-wins; simulated prices are illustrative, not authoritative.
type Simulator struct {
	prices     *cache.PriceCache
	rand       *randSource
	minLatency time.Duration
	maxLatency time.Duration
}

// SimulatorOption configures a Simulator
type SimulatorOption func(*Simulator)

// WithLatency overrides the simulated fetch delay window. Zero durations
// disable the delay entirely (used by tests).
func WithLatency(min, max time.Duration) SimulatorOption {
	return func(s *Simulator) {
		s.minLatency = min
		s.maxLatency = max
	}
}

// WithSeed makes the simulator's randomness reproducible
func WithSeed(seed int64) SimulatorOption {
	return func(s *Simulator) {
		s.rand = newRandSource(seed)
	}
}

// NewSimulator creates a Simulator over the given price cache
func NewSimulator(prices *cache.PriceCache, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		prices:     prices,
		rand:       newRandSource(time.Now().UnixNano()),
		minLatency: defaultQuoteMinLatency,
		maxLatency: defaultQuoteMaxLatency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quotes fetches simulated market data for each ticker. Tickers are fetched
// concurrently, mimicking independent requests to a remote source; each fetch
// reads the previous price from the cache and writes the new price back
// before returning.
func (s *Simulator) Quotes(ctx context.Context, tickers []string) (map[string]models.MarketData, error) {
	results := make(map[string]models.MarketData, len(tickers))
	var resultsMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tickers {
		ticker := strings.ToUpper(t)
		g.Go(func() error {
			quote, err := s.fetchQuote(ctx, ticker)
			if err != nil {
				return err
			}
			resultsMu.Lock()
			results[ticker] = quote
			resultsMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Quote fetches simulated market data for a single ticker
func (s *Simulator) Quote(ctx context.Context, ticker string) (*models.MarketData, error) {
	quote, err := s.fetchQuote(ctx, strings.ToUpper(ticker))
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *Simulator) fetchQuote(ctx context.Context, ticker string) (models.MarketData, error) {
	if err := s.rand.sleepJitter(ctx, s.minLatency, s.maxLatency); err != nil {
		return models.MarketData{}, err
	}

	previous, ok := s.prices.Get(ticker)
	if !ok {
		previous = round2(s.rand.uniform(minSeedPrice, maxSeedPrice))
	}

	current := round2(previous * (1 + s.rand.uniform(-maxFluct, maxFluct)))
	change := round2(current - previous)
	changePct := round2(change / previous * 100)

	s.prices.Set(ticker, current)

	return models.MarketData{
		CurrentPrice:       current,
		PriceChange:        change,
		PriceChangePercent: changePct,
	}, nil
}
