package models

// RiskTolerance represents the investor's appetite for risk
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "Conservative"
	RiskToleranceBalanced     RiskTolerance = "Balanced"
	RiskToleranceAggressive   RiskTolerance = "Aggressive"
)

// MarketData is a point-in-time market snapshot for a ticker
type MarketData struct {
	CurrentPrice       float64 `json:"current_price"`
	PriceChange        float64 `json:"price_change"`
	PriceChangePercent float64 `json:"price_change_percent"`
}

// Asset represents one holding or suggested position within a portfolio.
// Ticker symbols are unique within a portfolio and normalized to uppercase.
// Allocations are percentages; the set of allocations in a portfolio is
// expected to sum to ~100, with drift up to rounding tolerated.
type Asset struct {
	Ticker         string      `json:"ticker"`
	Name           string      `json:"name"`
	Sector         string      `json:"sector"`
	Allocation     float64     `json:"allocation"`
	Beta           float64     `json:"beta"`
	ExpectedReturn float64     `json:"expected_return"` // annualized, percent
	Volatility     float64     `json:"volatility"`      // annualized, percent
	Rationale      string      `json:"rationale"`
	MarketData     *MarketData `json:"market_data,omitempty"`
	UserAdded      bool        `json:"user_added,omitempty"`
	PurchasePrice  *float64    `json:"purchase_price,omitempty"`
}

// PortfolioMetrics holds aggregate risk/return figures derived from an asset
// list. Each metric is an allocation-weighted average (weight = allocation/100);
// the risk score is a 1-10 scalar derived from weighted beta.
type PortfolioMetrics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	WeightedBeta   float64 `json:"weighted_beta"`
	RiskScore      float64 `json:"risk_score"`
}

// Benchmark is a named reference point for comparing portfolio metrics
type Benchmark struct {
	Name           string  `json:"name"`
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
}

// Strategy describes the reasoning behind a portfolio plus its derived metrics
type Strategy struct {
	Summary    string           `json:"summary"`
	Measures   string           `json:"measures"`
	Outlook    string           `json:"outlook"`
	Metrics    PortfolioMetrics `json:"metrics"`
	Benchmarks []Benchmark      `json:"benchmarks,omitempty"`
}

// PortfolioDetails is a complete portfolio: title, holdings and strategy.
// Instances are created fresh on every suggestion or account-link event and
// live only for the session; there is no durable storage.
type PortfolioDetails struct {
	Title    string   `json:"title"`
	Assets   []Asset  `json:"assets"`
	Strategy Strategy `json:"strategy"`
}

// PerformancePoint is one day of simulated portfolio history
type PerformancePoint struct {
	Date              string  `json:"date"`
	PortfolioValue    float64 `json:"portfolio_value"`
	BenchmarkValue    float64 `json:"benchmark_value"`
	AISuggestionValue float64 `json:"ai_suggestion_value"`
}
