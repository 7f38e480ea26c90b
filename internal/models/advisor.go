package models

// OptimizationGoal selects the objective for allocation optimization
type OptimizationGoal string

const (
	OptimizeMinRisk   OptimizationGoal = "min_risk"
	OptimizeMaxReturn OptimizationGoal = "max_return"
)

// PortfolioSuggestion is the advisor's answer to a suggestion request:
// a primary portfolio plus exactly two alternatives.
type PortfolioSuggestion struct {
	Primary      PortfolioDetails   `json:"primary"`
	Alternatives []PortfolioDetails `json:"alternatives"`
}

// DiversificationIdea is one recommended addition to improve diversification
type DiversificationIdea struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Rationale string `json:"rationale"`
}

// ValueAtRisk is the advisor's VaR estimate for a portfolio
type ValueAtRisk struct {
	Confidence  float64 `json:"confidence"`   // e.g. 95
	HorizonDays int     `json:"horizon_days"` // e.g. 1
	Percent     float64 `json:"percent"`      // potential loss, percent of value
	Narrative   string  `json:"narrative"`
}

// StressScenario is a named hypothetical market event and its estimated impact
type StressScenario struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ImpactPercent float64 `json:"impact_percent"` // signed, negative for losses
}

// AdvancedAnalytics bundles the advisor's risk analytics for a portfolio
type AdvancedAnalytics struct {
	ValueAtRisk       ValueAtRisk      `json:"value_at_risk"`
	StressScenarios   []StressScenario `json:"stress_scenarios"`
	CorrelationMatrix [][]float64      `json:"correlation_matrix"` // row/column order matches Tickers
	Tickers           []string         `json:"tickers"`
}

// TaxLossCandidate is a holding with an unrealized loss worth harvesting
type TaxLossCandidate struct {
	Ticker            string  `json:"ticker"`
	UnrealizedLossPct float64 `json:"unrealized_loss_pct"`
	Replacement       string  `json:"replacement"`
	Rationale         string  `json:"rationale"`
}

// OptimizedAllocation is one re-weighted position from an optimization run
type OptimizedAllocation struct {
	Ticker     string  `json:"ticker"`
	Allocation float64 `json:"allocation"`
}
