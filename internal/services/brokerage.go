package services

import "github.com/mmarada/AI-portfolio/internal/models"

// LinkedAccountPortfolio returns the simulated brokerage account used by the
// "link account" flow. It is a fixture: holdings, purchase prices and
// strategy text are canned, with metrics derived from the allocations so the
// dashboard renders consistently.
func LinkedAccountPortfolio() models.PortfolioDetails {
	price := func(v float64) *float64 { return &v }

	assets := []models.Asset{
		{
			Ticker:         "VTI",
			Name:           "Vanguard Total Stock Market ETF",
			Sector:         "Diversified",
			Allocation:     35,
			Beta:           1.0,
			ExpectedReturn: 8.5,
			Volatility:     15.2,
			Rationale:      "Core broad-market exposure held in the linked account.",
			PurchasePrice:  price(238.4),
		},
		{
			Ticker:         "AAPL",
			Name:           "Apple Inc.",
			Sector:         "Technology",
			Allocation:     20,
			Beta:           1.25,
			ExpectedReturn: 11.0,
			Volatility:     24.5,
			Rationale:      "Long-held single-stock position.",
			PurchasePrice:  price(192.3),
		},
		{
			Ticker:         "JNJ",
			Name:           "Johnson & Johnson",
			Sector:         "Healthcare",
			Allocation:     15,
			Beta:           0.55,
			ExpectedReturn: 6.2,
			Volatility:     11.8,
			Rationale:      "Defensive dividend holding.",
			PurchasePrice:  price(161.7),
		},
		{
			Ticker:         "BND",
			Name:           "Vanguard Total Bond Market ETF",
			Sector:         "Fixed Income",
			Allocation:     20,
			Beta:           0.1,
			ExpectedReturn: 4.1,
			Volatility:     5.4,
			Rationale:      "Bond ballast transferred from the prior advisor.",
			PurchasePrice:  price(72.9),
		},
		{
			Ticker:         "XOM",
			Name:           "Exxon Mobil Corporation",
			Sector:         "Energy",
			Allocation:     10,
			Beta:           0.95,
			ExpectedReturn: 7.4,
			Volatility:     21.3,
			Rationale:      "Legacy energy position with accumulated gains.",
			PurchasePrice:  price(104.2),
		},
	}

	return models.PortfolioDetails{
		Title:  "Linked Brokerage Account",
		Assets: assets,
		Strategy: models.Strategy{
			Summary:  "Holdings imported from the linked brokerage account.",
			Measures: "Mix of broad-market ETFs, single stocks and a bond sleeve as currently held.",
			Outlook:  "Review concentration in single names; the bond sleeve dampens drawdowns.",
			Metrics:  ComputeMetrics(assets),
			Benchmarks: []models.Benchmark{
				{Name: "S&P 500", ExpectedReturn: 9.0, Volatility: 16.0},
				{Name: "60/40 Blend", ExpectedReturn: 6.8, Volatility: 10.5},
			},
		},
	}
}
