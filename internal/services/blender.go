package services

import (
	"math"

	"github.com/mmarada/AI-portfolio/internal/models"
)

// SandboxTitleSuffix marks a portfolio title as carrying sandbox edits
const SandboxTitleSuffix = " (Sandbox)"

// BlendPortfolio merges a base portfolio with the user's sandbox additions.
// The base allocations shrink proportionally to make room for the user assets,
// which are appended in insertion order, and the aggregate metrics are
// recomputed over the combined list. With no user assets the base is returned
// unchanged (a deep copy). Pure function: same inputs, identical outputs.
//
// Callers must keep the combined user allocation below 100 before calling;
// inputs whose allocations do not sum near 100 are not rejected here and
// simply produce skewed metrics.
func BlendPortfolio(base models.PortfolioDetails, userAssets []models.Asset) models.PortfolioDetails {
	out := base
	out.Assets = make([]models.Asset, 0, len(base.Assets)+len(userAssets))
	out.Assets = append(out.Assets, base.Assets...)
	out.Strategy.Benchmarks = append([]models.Benchmark(nil), base.Strategy.Benchmarks...)

	if len(userAssets) == 0 {
		return out
	}

	totalUser := 0.0
	for _, a := range userAssets {
		totalUser += a.Allocation
	}
	scale := math.Max(0, (100-totalUser)/100)

	for i := range out.Assets {
		out.Assets[i].Allocation *= scale
	}
	out.Assets = append(out.Assets, userAssets...)

	out.Title = base.Title + SandboxTitleSuffix
	out.Strategy.Metrics = ComputeMetrics(out.Assets)

	return out
}

// ComputeMetrics derives aggregate portfolio metrics as allocation-weighted
// averages over the asset list (weight = allocation/100).
func ComputeMetrics(assets []models.Asset) models.PortfolioMetrics {
	var expectedReturn, volatility, weightedBeta float64
	for _, a := range assets {
		weight := a.Allocation / 100
		expectedReturn += a.ExpectedReturn * weight
		volatility += a.Volatility * weight
		weightedBeta += a.Beta * weight
	}

	return models.PortfolioMetrics{
		ExpectedReturn: expectedReturn,
		Volatility:     volatility,
		WeightedBeta:   weightedBeta,
		RiskScore:      riskScore(weightedBeta),
	}
}

// riskScore maps weighted beta onto a 1-10 scale. The clamp holds for any
// beta magnitude, including negative values.
func riskScore(weightedBeta float64) float64 {
	return math.Min(10, math.Max(1, weightedBeta*5+2.5))
}
