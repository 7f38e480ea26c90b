package services

import (
	"math"
	"reflect"
	"testing"

	"github.com/mmarada/AI-portfolio/internal/models"
)

const tolerance = 1e-9

func basePortfolio() models.PortfolioDetails {
	assets := []models.Asset{
		{Ticker: "AAA", Name: "Asset A", Sector: "Technology", Allocation: 60, Beta: 1.0, ExpectedReturn: 10, Volatility: 15},
		{Ticker: "BBB", Name: "Asset B", Sector: "Utilities", Allocation: 40, Beta: 0.5, ExpectedReturn: 6, Volatility: 8},
	}
	return models.PortfolioDetails{
		Title:  "Growth Mix",
		Assets: assets,
		Strategy: models.Strategy{
			Summary:  "A growth-oriented mix.",
			Measures: "Tilted toward large-cap tech.",
			Outlook:  "Constructive over the horizon.",
			Metrics:  ComputeMetrics(assets),
			Benchmarks: []models.Benchmark{
				{Name: "S&P 500", ExpectedReturn: 9, Volatility: 16},
			},
		},
	}
}

// TestBlendIdentity verifies blending with no user assets returns the base
// unchanged in every field.
func TestBlendIdentity(t *testing.T) {
	base := basePortfolio()

	blended := BlendPortfolio(base, nil)

	if !reflect.DeepEqual(base, blended) {
		t.Errorf("Expected identity blend, got %+v", blended)
	}

	// Mutating the result must not touch the base
	blended.Assets[0].Allocation = 1
	if base.Assets[0].Allocation != 60 {
		t.Error("Blend result shares asset storage with the base")
	}
}

// TestBlendScenario reproduces the reference scenario:
// A(60) B(40) + user C(20) -> scale 0.8, A=48 B=32 C=20, weighted beta 1.04,
// risk score 7.7.
func TestBlendScenario(t *testing.T) {
	base := basePortfolio()
	user := []models.Asset{
		{Ticker: "CCC", Allocation: 20, Beta: 2.0, ExpectedReturn: 20, Volatility: 30, UserAdded: true},
	}

	blended := BlendPortfolio(base, user)

	if len(blended.Assets) != 3 {
		t.Fatalf("Expected 3 assets, got %d", len(blended.Assets))
	}

	wantAllocs := []float64{48, 32, 20}
	for i, want := range wantAllocs {
		if got := blended.Assets[i].Allocation; math.Abs(got-want) > tolerance {
			t.Errorf("Asset %d allocation = %v, want %v", i, got, want)
		}
	}

	total := 0.0
	for _, a := range blended.Assets {
		total += a.Allocation
	}
	if math.Abs(total-100) > tolerance {
		t.Errorf("Combined allocation = %v, want 100", total)
	}

	if got := blended.Strategy.Metrics.WeightedBeta; math.Abs(got-1.04) > tolerance {
		t.Errorf("WeightedBeta = %v, want 1.04", got)
	}
	if got := blended.Strategy.Metrics.RiskScore; math.Abs(got-7.7) > tolerance {
		t.Errorf("RiskScore = %v, want 7.7", got)
	}

	if blended.Title != "Growth Mix"+SandboxTitleSuffix {
		t.Errorf("Title = %q, want sandbox suffix", blended.Title)
	}

	// Strategy text and benchmarks pass through untouched
	if blended.Strategy.Summary != base.Strategy.Summary {
		t.Errorf("Summary changed: %q", blended.Strategy.Summary)
	}
	if !reflect.DeepEqual(blended.Strategy.Benchmarks, base.Strategy.Benchmarks) {
		t.Errorf("Benchmarks changed: %+v", blended.Strategy.Benchmarks)
	}
}

// TestBlendOrderPreserved verifies base assets come first and user assets
// follow in insertion order.
func TestBlendOrderPreserved(t *testing.T) {
	base := basePortfolio()
	user := []models.Asset{
		{Ticker: "CCC", Allocation: 10, UserAdded: true},
		{Ticker: "DDD", Allocation: 5, UserAdded: true},
	}

	blended := BlendPortfolio(base, user)

	want := []string{"AAA", "BBB", "CCC", "DDD"}
	for i, ticker := range want {
		if blended.Assets[i].Ticker != ticker {
			t.Errorf("Asset %d = %s, want %s", i, blended.Assets[i].Ticker, ticker)
		}
	}
}

// TestBlendPure verifies the blend is a pure function: repeated calls with
// the same inputs give identical outputs.
func TestBlendPure(t *testing.T) {
	base := basePortfolio()
	user := []models.Asset{{Ticker: "CCC", Allocation: 25, Beta: 1.5, ExpectedReturn: 12, Volatility: 20}}

	first := BlendPortfolio(base, user)
	second := BlendPortfolio(base, user)

	if !reflect.DeepEqual(first, second) {
		t.Error("Blending the same inputs twice produced different outputs")
	}
}

// TestBlendSumPreservation checks the combined allocation sum equals the
// scaled base sum plus the user sum even when the base does not sum to 100.
func TestBlendSumPreservation(t *testing.T) {
	cases := []struct {
		name      string
		baseSum   float64
		baseSplit []float64
		userAlloc float64
	}{
		{"exact base", 100, []float64{70, 30}, 15},
		{"drifted base", 98, []float64{58, 40}, 30},
		{"tiny user", 100, []float64{50, 50}, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var assets []models.Asset
			for i, alloc := range tc.baseSplit {
				assets = append(assets, models.Asset{Ticker: string(rune('A' + i)), Allocation: alloc})
			}
			base := models.PortfolioDetails{Title: "T", Assets: assets}
			user := []models.Asset{{Ticker: "ZZZ", Allocation: tc.userAlloc}}

			blended := BlendPortfolio(base, user)

			scale := (100 - tc.userAlloc) / 100
			want := tc.baseSum*scale + tc.userAlloc
			got := 0.0
			for _, a := range blended.Assets {
				got += a.Allocation
			}
			if math.Abs(got-want) > tolerance {
				t.Errorf("Combined sum = %v, want %v", got, want)
			}
		})
	}
}

// TestRiskScoreClamped checks the 1-10 clamp for extreme betas
func TestRiskScoreClamped(t *testing.T) {
	cases := []struct {
		name string
		beta float64
		want float64
	}{
		{"negative beta", -3.0, 1},
		{"zero beta", 0, 2.5},
		{"unit beta", 1.0, 7.5},
		{"high beta", 4.0, 10},
		{"extreme beta", 50, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assets := []models.Asset{{Ticker: "X", Allocation: 100, Beta: tc.beta}}
			got := ComputeMetrics(assets).RiskScore
			if math.Abs(got-tc.want) > tolerance {
				t.Errorf("RiskScore(beta=%v) = %v, want %v", tc.beta, got, tc.want)
			}
			if got < 1 || got > 10 {
				t.Errorf("RiskScore %v outside [1, 10]", got)
			}
		})
	}
}

// TestComputeMetricsWeighted verifies the weighted averages over a mixed list
func TestComputeMetricsWeighted(t *testing.T) {
	assets := []models.Asset{
		{Ticker: "A", Allocation: 50, Beta: 1.2, ExpectedReturn: 8, Volatility: 14},
		{Ticker: "B", Allocation: 50, Beta: 0.8, ExpectedReturn: 4, Volatility: 6},
	}

	metrics := ComputeMetrics(assets)

	if math.Abs(metrics.WeightedBeta-1.0) > tolerance {
		t.Errorf("WeightedBeta = %v, want 1.0", metrics.WeightedBeta)
	}
	if math.Abs(metrics.ExpectedReturn-6.0) > tolerance {
		t.Errorf("ExpectedReturn = %v, want 6.0", metrics.ExpectedReturn)
	}
	if math.Abs(metrics.Volatility-10.0) > tolerance {
		t.Errorf("Volatility = %v, want 10.0", metrics.Volatility)
	}
}
