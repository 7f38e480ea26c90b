package marketdata

import (
	"context"
	"time"

	"github.com/mmarada/AI-portfolio/internal/models"
)

const (
	historyDays         = 180
	historyStartValue   = 100000.0
	defaultHistoryDelay = 800 * time.Millisecond
	historyDelaySpread  = 100 * time.Millisecond
)

// walkParams tune one biased random-walk series. Each day the value is
// multiplied by 1 + (U - bias) * scale for U uniform in [0,1); a lower bias
// means a higher expected drift.
type walkParams struct {
	bias  float64
	scale float64
}

var (
	portfolioWalk    = walkParams{bias: 0.48, scale: 0.015}
	benchmarkWalk    = walkParams{bias: 0.49, scale: 0.014}
	aiSuggestionWalk = walkParams{bias: 0.47, scale: 0.016}
)

// PerformanceSimulator fabricates a trailing window of daily portfolio,
// benchmark and AI-suggestion values for the history chart.
type PerformanceSimulator struct {
	rand       *randSource
	minLatency time.Duration
	maxLatency time.Duration
	now        func() time.Time
}

// PerformanceOption configures a PerformanceSimulator
type PerformanceOption func(*PerformanceSimulator)

// WithPerformanceLatency overrides the simulated delay window. Zero durations
// disable the delay entirely (used by tests).
func WithPerformanceLatency(min, max time.Duration) PerformanceOption {
	return func(p *PerformanceSimulator) {
		p.minLatency = min
		p.maxLatency = max
	}
}

// WithPerformanceSeed makes the simulator's randomness reproducible
func WithPerformanceSeed(seed int64) PerformanceOption {
	return func(p *PerformanceSimulator) {
		p.rand = newRandSource(seed)
	}
}

// WithPerformanceClock overrides the time source (used by tests)
func WithPerformanceClock(now func() time.Time) PerformanceOption {
	return func(p *PerformanceSimulator) {
		p.now = now
	}
}

// NewPerformanceSimulator creates a PerformanceSimulator
func NewPerformanceSimulator(opts ...PerformanceOption) *PerformanceSimulator {
	p := &PerformanceSimulator{
		rand:       newRandSource(time.Now().UnixNano() + 2),
		minLatency: defaultHistoryDelay - historyDelaySpread,
		maxLatency: defaultHistoryDelay + historyDelaySpread,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// History returns 181 daily data points in ascending date order: today and
// the preceding 180 days. Three independent walks start at 100,000, with the
// portfolio and AI-suggestion series drifting slightly above the benchmark.
// Each day's values are rounded to 2 decimals and the walk continues from the
// rounded value, so rounding compounds into subsequent days.
func (p *PerformanceSimulator) History(ctx context.Context) ([]models.PerformancePoint, error) {
	if err := p.rand.sleepJitter(ctx, p.minLatency, p.maxLatency); err != nil {
		return nil, err
	}

	start := p.now().AddDate(0, 0, -historyDays)
	portfolio := historyStartValue
	benchmark := historyStartValue
	aiSuggestion := historyStartValue

	points := make([]models.PerformancePoint, 0, historyDays+1)
	for day := 0; day <= historyDays; day++ {
		portfolio = round2(p.step(portfolio, portfolioWalk))
		benchmark = round2(p.step(benchmark, benchmarkWalk))
		aiSuggestion = round2(p.step(aiSuggestion, aiSuggestionWalk))

		points = append(points, models.PerformancePoint{
			Date:              start.AddDate(0, 0, day).Format("2006-01-02"),
			PortfolioValue:    portfolio,
			BenchmarkValue:    benchmark,
			AISuggestionValue: aiSuggestion,
		})
	}

	return points, nil
}

func (p *PerformanceSimulator) step(value float64, w walkParams) float64 {
	return value * (1 + (p.rand.uniform(0, 1)-w.bias)*w.scale)
}
