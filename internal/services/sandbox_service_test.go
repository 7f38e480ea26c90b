package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mmarada/AI-portfolio/internal/cache"
	"github.com/mmarada/AI-portfolio/internal/marketdata"
	"github.com/mmarada/AI-portfolio/internal/models"
)

func newTestSandbox() *SandboxService {
	sim := marketdata.NewSimulator(cache.NewPriceCache(),
		marketdata.WithLatency(0, 0),
		marketdata.WithSeed(42))
	financials := marketdata.NewFinancialsGenerator(sim,
		marketdata.WithFinancialsLatency(0, 0),
		marketdata.WithFinancialsSeed(42))
	return NewSandboxService(financials)
}

func TestAddAssetValidation(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	cases := []struct {
		name    string
		req     models.AddAssetRequest
		wantErr error
	}{
		{"empty ticker", models.AddAssetRequest{Ticker: "  ", Allocation: 10}, ErrEmptyTicker},
		{"zero allocation", models.AddAssetRequest{Ticker: "NEW", Allocation: 0}, ErrInvalidAllocation},
		{"negative allocation", models.AddAssetRequest{Ticker: "NEW", Allocation: -5}, ErrInvalidAllocation},
		{"full allocation", models.AddAssetRequest{Ticker: "NEW", Allocation: 100}, ErrInvalidAllocation},
		{"duplicate of base", models.AddAssetRequest{Ticker: "aaa", Allocation: 10}, ErrDuplicateTicker},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddAsset(context.Background(), id, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("AddAsset(%+v) error = %v, want %v", tc.req, err, tc.wantErr)
			}
		})
	}
}

func TestAddAssetUnknownSession(t *testing.T) {
	svc := newTestSandbox()

	_, err := svc.AddAsset(context.Background(), "nope", models.AddAssetRequest{Ticker: "NEW", Allocation: 10})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

// TestAddAssetAllocationBoundary checks the >=100 rejection rule: a combined
// user allocation of 99 is accepted, 100 is not.
func TestAddAssetAllocationBoundary(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	if _, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "CCC", Allocation: 50}); err != nil {
		t.Fatalf("First add failed: %v", err)
	}

	// 50 + 49 = 99: still below the limit
	if _, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "DDD", Allocation: 49}); err != nil {
		t.Fatalf("Add reaching 99 should succeed, got %v", err)
	}

	// 99 + 1 = 100: rejected
	_, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "EEE", Allocation: 1})
	if !errors.Is(err, ErrAllocationExhausted) {
		t.Errorf("Add reaching 100 should be rejected, got %v", err)
	}
}

func TestAddAssetBlendsPortfolio(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	blended, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "ccc", Allocation: 20})
	if err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}

	if len(blended.Assets) != 3 {
		t.Fatalf("Expected 3 assets, got %d", len(blended.Assets))
	}

	added := blended.Assets[2]
	if added.Ticker != "CCC" {
		t.Errorf("Ticker = %q, want CCC (uppercased)", added.Ticker)
	}
	if !added.UserAdded {
		t.Error("Added asset not flagged user-added")
	}
	if added.MarketData == nil {
		t.Fatal("Added asset missing market data")
	}
	if added.PurchasePrice == nil || *added.PurchasePrice != added.MarketData.CurrentPrice {
		t.Error("Purchase price should equal the price at add time")
	}

	// Base rescaled by 0.8
	if got := blended.Assets[0].Allocation; math.Abs(got-48) > 1e-9 {
		t.Errorf("Base asset allocation = %v, want 48", got)
	}

	total := 0.0
	for _, a := range blended.Assets {
		total += a.Allocation
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("Combined allocation = %v, want 100", total)
	}
}

func TestRemoveAsset(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	if _, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "CCC", Allocation: 20}); err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}

	blended, err := svc.RemoveAsset(id, "ccc")
	if err != nil {
		t.Fatalf("RemoveAsset failed: %v", err)
	}
	if len(blended.Assets) != 2 {
		t.Errorf("Expected 2 assets after removal, got %d", len(blended.Assets))
	}
	if blended.Assets[0].Allocation != 60 {
		t.Errorf("Base allocation = %v, want 60 restored", blended.Assets[0].Allocation)
	}

	// Base assets cannot be removed
	if _, err := svc.RemoveAsset(id, "AAA"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Removing a base asset should fail with ErrAssetNotFound, got %v", err)
	}
}

// TestApplyOptimizedCollapsesOverlay verifies an optimization result becomes
// the new base with the user distinction discarded.
func TestApplyOptimizedCollapsesOverlay(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	if _, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "CCC", Allocation: 20}); err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}

	optimized := []models.Asset{
		{Ticker: "AAA", Allocation: 30, Beta: 1.0, ExpectedReturn: 10, Volatility: 15},
		{Ticker: "BBB", Allocation: 50, Beta: 0.5, ExpectedReturn: 6, Volatility: 8},
		{Ticker: "CCC", Allocation: 20, Beta: 1.5, ExpectedReturn: 12, Volatility: 18, UserAdded: true},
	}

	result, err := svc.ApplyOptimized(id, optimized)
	if err != nil {
		t.Fatalf("ApplyOptimized failed: %v", err)
	}

	for _, a := range result.Assets {
		if a.UserAdded {
			t.Errorf("Asset %s still flagged user-added after optimization", a.Ticker)
		}
	}
	if result.Title != basePortfolio().Title {
		t.Errorf("Title = %q, want base title without sandbox suffix", result.Title)
	}

	// A follow-up add sees an empty user overlay
	blended, err := svc.AddAsset(context.Background(), id, models.AddAssetRequest{Ticker: "DDD", Allocation: 99})
	if err != nil {
		t.Fatalf("Add after optimization failed: %v", err)
	}
	if got := len(blended.Assets); got != 4 {
		t.Errorf("Expected 4 assets after post-optimization add, got %d", got)
	}
}

func TestDeleteSessionStopsRefresher(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	stopped := false
	if err := svc.SetRefreshStop(id, func() { stopped = true }); err != nil {
		t.Fatalf("SetRefreshStop failed: %v", err)
	}

	if err := svc.DeleteSession(id); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if !stopped {
		t.Error("Deleting the session did not cancel its refresher")
	}

	if _, err := svc.Portfolio(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

// TestSetRefreshStopReplacesPrevious verifies replacing the refresher cancels
// the old one.
func TestSetRefreshStopReplacesPrevious(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	firstStopped := false
	if err := svc.SetRefreshStop(id, func() { firstStopped = true }); err != nil {
		t.Fatalf("SetRefreshStop failed: %v", err)
	}
	if err := svc.SetRefreshStop(id, func() {}); err != nil {
		t.Fatalf("SetRefreshStop failed: %v", err)
	}
	if !firstStopped {
		t.Error("Replacing the refresher did not cancel the previous one")
	}
}

func TestUpdateMarketData(t *testing.T) {
	svc := newTestSandbox()
	id, _ := svc.CreateSession(basePortfolio())

	quotes := map[string]models.MarketData{
		"AAA": {CurrentPrice: 101.5, PriceChange: 1.5, PriceChangePercent: 1.5},
	}
	if err := svc.UpdateMarketData(id, quotes); err != nil {
		t.Fatalf("UpdateMarketData failed: %v", err)
	}

	portfolio, err := svc.Portfolio(id)
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}
	if portfolio.Assets[0].MarketData == nil || portfolio.Assets[0].MarketData.CurrentPrice != 101.5 {
		t.Errorf("Quote not applied to AAA: %+v", portfolio.Assets[0].MarketData)
	}
	if portfolio.Assets[1].MarketData != nil {
		t.Error("Quote applied to a ticker that was not refreshed")
	}
}
